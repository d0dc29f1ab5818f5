package api

import (
	"errors"
	"net/http"
	"time"

	"retailpricing/internal/domain"
	"retailpricing/internal/service"

	"github.com/gin-gonic/gin"
)

type storedPriceResponse struct {
	Sku           string `json:"sku"`
	Name          string `json:"name"`
	Cost          string `json:"cost"`
	Role          string `json:"role"`
	FinalPrice    string `json:"finalPrice"`
	AppliedMargin string `json:"appliedMargin"`
	RuleVersion   string `json:"ruleVersion"`
	RunID         string `json:"runID"`
	PricedAt      string `json:"pricedAt"`
}

func (m ApiHandler) getPrice(c *gin.Context) {
	price, err := m.RepricingService.GetCurrentPrice(c.Request.Context(), c.Param("sku"))
	if errors.Is(err, service.ErrPriceNotFound) {
		returnErrorJsonCode(err, c, http.StatusNotFound)
		return
	} else if errors.Is(err, service.ErrPersistenceUnavailable) {
		returnErrorJsonCode(err, c, http.StatusServiceUnavailable)
		return
	} else if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, newStoredPriceResponse(*price))
}

func (m ApiHandler) listPrices(c *gin.Context) {
	prices, err := m.RepricingService.ListCurrentPrices(c.Request.Context())
	if errors.Is(err, service.ErrPersistenceUnavailable) {
		returnErrorJsonCode(err, c, http.StatusServiceUnavailable)
		return
	} else if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]storedPriceResponse, 0, len(prices))
	for _, price := range prices {
		out = append(out, newStoredPriceResponse(price))
	}
	c.JSON(200, out)
}

func newStoredPriceResponse(price domain.StoredPrice) storedPriceResponse {
	return storedPriceResponse{
		Sku:           price.SKU,
		Name:          price.Name,
		Cost:          price.Cost.String(),
		Role:          string(price.Role),
		FinalPrice:    price.FinalPrice.StringFixed(2),
		AppliedMargin: price.AppliedMargin.StringFixed(4),
		RuleVersion:   price.RuleVersion,
		RunID:         price.RunID.String(),
		PricedAt:      price.PricedAt.UTC().Format(time.RFC3339),
	}
}
