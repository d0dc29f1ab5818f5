package api

import (
	"errors"
	"fmt"
	"net/http"

	"retailpricing/internal/domain"
	"retailpricing/internal/service"

	"github.com/gin-gonic/gin"
)

type repriceProduct struct {
	Sku  string `json:"sku"`
	Name string `json:"name"`
	// kept as text so one malformed cost rejects a row, not the request
	Cost string `json:"cost"`
	Role string `json:"role"`
}

type repriceRequest struct {
	Products []repriceProduct `json:"products"`
	Persist  bool             `json:"persist"`
}

type pricedProductResponse struct {
	Sku  string `json:"sku"`
	Name string `json:"name"`
	Cost string `json:"cost"`
	Role string `json:"role"`

	FinalPrice       string `json:"finalPrice"`
	AppliedMargin    string `json:"appliedMargin"`
	RuleVersion      string `json:"ruleVersion"`
	SafetyNetApplied bool   `json:"safetyNetApplied"`
}

type rejectedProductResponse struct {
	Sku    string `json:"sku"`
	Cost   string `json:"cost"`
	Role   string `json:"role"`
	Reason string `json:"reason"`
}

type repricingSummaryResponse struct {
	Count        int     `json:"count"`
	MeanMargin   float64 `json:"meanMargin"`
	MedianMargin float64 `json:"medianMargin"`
	MinMargin    float64 `json:"minMargin"`
	MaxMargin    float64 `json:"maxMargin"`
}

type repriceResponse struct {
	RunID    string                    `json:"runID"`
	Priced   []pricedProductResponse   `json:"priced"`
	Rejected []rejectedProductResponse `json:"rejected"`
	Summary  repricingSummaryResponse  `json:"summary"`
}

func (m ApiHandler) reprice(c *gin.Context) {
	var requestBody repriceRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}

	rows := make([]domain.CatalogRow, 0, len(requestBody.Products))
	for _, p := range requestBody.Products {
		rows = append(rows, domain.CatalogRow{
			SKU:  p.Sku,
			Name: p.Name,
			Cost: p.Cost,
			Role: p.Role,
		})
	}

	run, err := m.RepricingService.RepriceCatalog(c.Request.Context(), service.RepriceCatalogInput{
		Rows:    rows,
		Persist: requestBody.Persist,
	})
	if errors.Is(err, service.ErrEmptyBatch) {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	} else if errors.Is(err, service.ErrPersistenceUnavailable) {
		returnErrorJsonCode(err, c, http.StatusServiceUnavailable)
		return
	} else if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, newRepriceResponse(run))
}

func newRepriceResponse(run *domain.RepricingRun) repriceResponse {
	out := repriceResponse{
		RunID:    run.RunID.String(),
		Priced:   []pricedProductResponse{},
		Rejected: []rejectedProductResponse{},
		Summary: repricingSummaryResponse{
			Count:        run.Summary.Count,
			MeanMargin:   run.Summary.MeanMargin,
			MedianMargin: run.Summary.MedianMargin,
			MinMargin:    run.Summary.MinMargin,
			MaxMargin:    run.Summary.MaxMargin,
		},
	}
	for _, p := range run.Priced {
		out.Priced = append(out.Priced, pricedProductResponse{
			Sku:              p.SKU,
			Name:             p.Name,
			Cost:             p.Cost.String(),
			Role:             string(p.Role),
			FinalPrice:       p.FinalPrice.StringFixed(2),
			AppliedMargin:    p.AppliedMargin.StringFixed(4),
			RuleVersion:      p.RuleVersion,
			SafetyNetApplied: p.SafetyNetApplied,
		})
	}
	for _, r := range run.Rejected {
		out.Rejected = append(out.Rejected, rejectedProductResponse{
			Sku:    r.SKU,
			Cost:   r.Cost,
			Role:   r.Role,
			Reason: r.Reason,
		})
	}
	return out
}
