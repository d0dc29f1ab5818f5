package api

import (
	"retailpricing/internal/calculator"
	"retailpricing/internal/domain"

	"github.com/gin-gonic/gin"
)

type costBandResponse struct {
	// nil for the open-ended top band
	UpperBound *string `json:"upperBound"`
	BaseMargin string  `json:"baseMargin"`
}

type rulesResponse struct {
	Version         string             `json:"version"`
	Bands           []costBandResponse `json:"bands"`
	RoleAdjustments map[string]string  `json:"roleAdjustments"`
	MinMargin       string             `json:"minMargin"`
	MaxMargin       string             `json:"maxMargin"`
}

func newRulesResponse(rules calculator.PricingRules) rulesResponse {
	out := rulesResponse{
		Version:         rules.Version,
		Bands:           []costBandResponse{},
		RoleAdjustments: map[string]string{},
		MinMargin:       rules.MinMargin.StringFixed(2),
		MaxMargin:       rules.MaxMargin.StringFixed(2),
	}
	for _, band := range rules.Bands {
		b := costBandResponse{BaseMargin: band.BaseMargin.StringFixed(2)}
		if band.UpperBound != nil {
			bound := band.UpperBound.StringFixed(2)
			b.UpperBound = &bound
		}
		out.Bands = append(out.Bands, b)
	}
	for _, role := range domain.StrategicRoles() {
		adjustment, _ := rules.Adjustments.For(role)
		out.RoleAdjustments[string(role)] = adjustment.StringFixed(2)
	}
	return out
}

func (m ApiHandler) rules(c *gin.Context) {
	c.JSON(200, newRulesResponse(m.RepricingService.Rules()))
}
