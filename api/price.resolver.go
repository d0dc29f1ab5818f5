package api

import (
	"errors"
	"fmt"
	"net/http"

	"retailpricing/internal/calculator"
	"retailpricing/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type priceRequest struct {
	Cost    *decimal.Decimal `json:"cost"`
	Role    string           `json:"role"`
	Explain bool             `json:"explain"`
}

type priceResponse struct {
	FinalPrice    string `json:"finalPrice"`
	AppliedMargin string `json:"appliedMargin"`
	RuleVersion   string `json:"ruleVersion"`

	TargetMargin     *string `json:"targetMargin,omitempty"`
	RawPrice         *string `json:"rawPrice,omitempty"`
	SafetyNetApplied *bool   `json:"safetyNetApplied,omitempty"`
}

func newPriceResponse(result domain.PricingResult) priceResponse {
	return priceResponse{
		FinalPrice:    result.FinalPrice.StringFixed(2),
		AppliedMargin: result.AppliedMargin.StringFixed(4),
		RuleVersion:   result.RuleVersion,
	}
}

func (m ApiHandler) price(c *gin.Context) {
	var requestBody priceRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if requestBody.Cost == nil {
		returnErrorJsonCode(fmt.Errorf("%w: cost is required", calculator.ErrInvalidCost), c, http.StatusBadRequest)
		return
	}

	role, err := domain.ParseStrategicRole(requestBody.Role)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("%w: %q", calculator.ErrUnknownRole, requestBody.Role), c, http.StatusBadRequest)
		return
	}

	breakdown, err := m.RepricingService.PriceProduct(c.Request.Context(), *requestBody.Cost, role)
	if errors.Is(err, calculator.ErrInvalidCost) || errors.Is(err, calculator.ErrUnknownRole) {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	} else if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := newPriceResponse(breakdown.Result)
	if requestBody.Explain {
		targetMargin := breakdown.TargetMargin.StringFixed(4)
		rawPrice := breakdown.RawPrice.String()
		out.TargetMargin = &targetMargin
		out.RawPrice = &rawPrice
		out.SafetyNetApplied = &breakdown.SafetyNetApplied
	}

	c.JSON(200, out)
}
