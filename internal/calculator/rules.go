package calculator

import (
	"fmt"

	"retailpricing/internal/domain"
	"retailpricing/internal/util"

	"github.com/shopspring/decimal"
)

// CostBand maps every cost below UpperBound (exclusive) to BaseMargin. A nil
// UpperBound marks the open-ended top band.
type CostBand struct {
	UpperBound *decimal.Decimal
	BaseMargin decimal.Decimal
}

type RoleAdjustments struct {
	Anchor      decimal.Decimal
	Convenience decimal.Decimal
	Impulse     decimal.Decimal
	Premium     decimal.Decimal
}

func (a RoleAdjustments) For(role domain.StrategicRole) (decimal.Decimal, bool) {
	switch role {
	case domain.StrategicRoleAnchor:
		return a.Anchor, true
	case domain.StrategicRoleConvenience:
		return a.Convenience, true
	case domain.StrategicRoleImpulse:
		return a.Impulse, true
	case domain.StrategicRolePremium:
		return a.Premium, true
	}
	return decimal.Zero, false
}

// PricingRules is a complete, versioned rule set. Bands are evaluated in
// order and must be sorted by ascending upper bound.
type PricingRules struct {
	Version     string
	Bands       []CostBand
	Adjustments RoleAdjustments
	MinMargin   decimal.Decimal
	MaxMargin   decimal.Decimal
}

const RuleVersion = "v1.1"

var DefaultPricingRules = PricingRules{
	Version: RuleVersion,
	Bands: []CostBand{
		{UpperBound: util.DecimalPointer(decimal.NewFromInt(3)), BaseMargin: decimal.RequireFromString("0.30")},
		{UpperBound: util.DecimalPointer(decimal.NewFromInt(15)), BaseMargin: decimal.RequireFromString("0.20")},
		{UpperBound: util.DecimalPointer(decimal.NewFromInt(60)), BaseMargin: decimal.RequireFromString("0.15")},
		{UpperBound: nil, BaseMargin: decimal.RequireFromString("0.10")},
	},
	Adjustments: RoleAdjustments{
		Anchor:      decimal.RequireFromString("-0.05"),
		Convenience: decimal.Zero,
		Impulse:     decimal.RequireFromString("0.10"),
		Premium:     decimal.RequireFromString("0.03"),
	},
	MinMargin: decimal.RequireFromString("0.08"),
	MaxMargin: decimal.RequireFromString("0.40"),
}

func (r PricingRules) Validate() error {
	if r.Version == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidRules)
	}
	if len(r.Bands) == 0 {
		return fmt.Errorf("%w: no cost bands", ErrInvalidRules)
	}
	for i, band := range r.Bands {
		last := i == len(r.Bands)-1
		if band.UpperBound == nil && !last {
			return fmt.Errorf("%w: band %d is unbounded but is not the last band", ErrInvalidRules, i)
		}
		if band.UpperBound != nil && last {
			return fmt.Errorf("%w: last band must be unbounded, got upper bound %s", ErrInvalidRules, band.UpperBound.String())
		}
		if i > 0 && band.UpperBound != nil && !band.UpperBound.GreaterThan(*r.Bands[i-1].UpperBound) {
			return fmt.Errorf("%w: band upper bounds must be strictly ascending (band %d)", ErrInvalidRules, i)
		}
	}
	if r.MinMargin.IsNegative() {
		return fmt.Errorf("%w: min margin %s is negative", ErrInvalidRules, r.MinMargin.String())
	}
	if r.MinMargin.GreaterThan(r.MaxMargin) {
		return fmt.Errorf("%w: min margin %s is above max margin %s", ErrInvalidRules, r.MinMargin.String(), r.MaxMargin.String())
	}
	return nil
}
