package calculator

import (
	"errors"
	"fmt"

	"retailpricing/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCost  = errors.New("invalid cost")
	ErrUnknownRole  = errors.New("unknown strategic role")
	ErrInvalidRules = errors.New("invalid pricing rules")
)

// InvalidCostError is returned before any computation when cost is not a
// positive amount below MaxCost with at most CostPlaces decimal places.
type InvalidCostError struct {
	Cost   decimal.Decimal
	Reason string
}

func (e *InvalidCostError) Error() string {
	return fmt.Sprintf("invalid cost %s: %s", describeCost(e.Cost), e.Reason)
}

// describeCost avoids rendering huge exponents digit by digit.
func describeCost(cost decimal.Decimal) string {
	if !costIsSmall(cost) {
		return "(out of range)"
	}
	return cost.String()
}

func (e *InvalidCostError) Is(target error) bool {
	return target == ErrInvalidCost
}

// PricingInvariantViolation means the rounding pipeline produced a price at
// or below cost. It is raised with panic; callers are not expected to recover.
type PricingInvariantViolation struct {
	Cost       decimal.Decimal
	FinalPrice decimal.Decimal
}

func (v PricingInvariantViolation) Error() string {
	return fmt.Sprintf("pricing invariant violated: final price %s is not above cost %s", v.FinalPrice.StringFixed(2), v.Cost.String())
}

var (
	one          = decimal.NewFromInt(1)
	ten          = decimal.NewFromInt(10)
	hundred      = decimal.NewFromInt(100)
	endingCutoff = decimal.RequireFromString("0.49")
	lowEnding    = decimal.RequireFromString("0.59")
	highEnding   = decimal.RequireFromString("0.99")
	safetyMarkup = decimal.RequireFromString("0.05")
)

const (
	pricePlaces  = 2
	marginPlaces = 4

	// CostPlaces matches the scale of product_price.cost.
	CostPlaces = 4
	// bounds checked before any rescaling happens
	maxCostExponent        = 20
	maxCostCoefficientBits = 128
)

// MaxCost is the exclusive upper bound on cost, matching numeric(12,4).
var MaxCost = decimal.NewFromInt(100_000_000)

// PricingBreakdown exposes the intermediate values behind a PricingResult.
type PricingBreakdown struct {
	TargetMargin     decimal.Decimal
	RawPrice         decimal.Decimal
	SafetyNetApplied bool
	Result           domain.PricingResult
}

func CalculatePrice(cost decimal.Decimal, role domain.StrategicRole) (domain.PricingResult, error) {
	return DefaultPricingRules.CalculatePrice(cost, role)
}

func CalculatePriceDetailed(cost decimal.Decimal, role domain.StrategicRole) (*PricingBreakdown, error) {
	return DefaultPricingRules.CalculatePriceDetailed(cost, role)
}

func ResolveMargin(cost decimal.Decimal, role domain.StrategicRole) (decimal.Decimal, error) {
	return DefaultPricingRules.ResolveMargin(cost, role)
}

func (r PricingRules) CalculatePrice(cost decimal.Decimal, role domain.StrategicRole) (domain.PricingResult, error) {
	breakdown, err := r.CalculatePriceDetailed(cost, role)
	if err != nil {
		return domain.PricingResult{}, err
	}
	return breakdown.Result, nil
}

func (r PricingRules) CalculatePriceDetailed(cost decimal.Decimal, role domain.StrategicRole) (*PricingBreakdown, error) {
	if err := ValidateCost(cost); err != nil {
		return nil, err
	}

	margin, err := r.ResolveMargin(cost, role)
	if err != nil {
		return nil, err
	}

	rawPrice := cost.Mul(one.Add(margin))
	finalPrice, safetyNetApplied := psychologicalRound(rawPrice, cost)
	actualMargin := finalPrice.Sub(cost).Div(cost).Round(marginPlaces)

	checkPriceInvariant(finalPrice, cost)

	return &PricingBreakdown{
		TargetMargin:     margin,
		RawPrice:         rawPrice,
		SafetyNetApplied: safetyNetApplied,
		Result: domain.PricingResult{
			FinalPrice:    finalPrice,
			AppliedMargin: actualMargin,
			RuleVersion:   r.Version,
		},
	}, nil
}

// ValidateCost checks cost before any arithmetic touches it. The exponent
// and coefficient size are checked first since rescaling a value like 1e-2000000
// costs time proportional to the exponent.
func ValidateCost(cost decimal.Decimal) error {
	if !cost.IsPositive() {
		return &InvalidCostError{Cost: cost, Reason: "cost must be greater than zero"}
	}
	tooPrecise := &InvalidCostError{Cost: cost, Reason: fmt.Sprintf("cost must have at most %d decimal places", CostPlaces)}
	if cost.Exponent() < -maxCostExponent {
		return tooPrecise
	}
	if !costIsSmall(cost) || !cost.LessThan(MaxCost) {
		return &InvalidCostError{Cost: cost, Reason: fmt.Sprintf("cost must be below %s", MaxCost)}
	}
	if !cost.Equal(cost.Truncate(CostPlaces)) {
		return tooPrecise
	}
	return nil
}

func costIsSmall(cost decimal.Decimal) bool {
	exp := cost.Exponent()
	if exp > maxCostExponent || exp < -maxCostExponent {
		return false
	}
	return cost.Coefficient().BitLen() <= maxCostCoefficientBits
}

// ResolveMargin combines the cost band base margin with the role adjustment
// and clamps the sum to [MinMargin, MaxMargin].
func (r PricingRules) ResolveMargin(cost decimal.Decimal, role domain.StrategicRole) (decimal.Decimal, error) {
	adjustment, ok := r.Adjustments.For(role)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	margin := r.baseMargin(cost).Add(adjustment)
	if margin.LessThan(r.MinMargin) {
		return r.MinMargin, nil
	}
	if margin.GreaterThan(r.MaxMargin) {
		return r.MaxMargin, nil
	}
	return margin, nil
}

// first band whose upper bound is strictly above cost wins
func (r PricingRules) baseMargin(cost decimal.Decimal) decimal.Decimal {
	for _, band := range r.Bands {
		if band.UpperBound == nil || cost.LessThan(*band.UpperBound) {
			return band.BaseMargin
		}
	}
	// Validate guarantees an unbounded final band
	return r.Bands[len(r.Bands)-1].BaseMargin
}

// PsychologicalRound snaps rawPrice to an attractive ending. Results at or
// above 1 always end in .59 or .99, sub-unit results land on a tenth. The
// returned price is always strictly above cost.
func PsychologicalRound(rawPrice, cost decimal.Decimal) decimal.Decimal {
	price, _ := psychologicalRound(rawPrice, cost)
	return price
}

func psychologicalRound(rawPrice, cost decimal.Decimal) (decimal.Decimal, bool) {
	var rounded decimal.Decimal
	if rawPrice.LessThan(one) {
		rounded = rawPrice.Mul(ten).Ceil().Div(ten)
	} else {
		integerPart := rawPrice.Floor()
		fraction := rawPrice.Sub(integerPart)
		if fraction.LessThanOrEqual(endingCutoff) {
			rounded = integerPart.Add(lowEnding)
		} else {
			rounded = integerPart.Add(highEnding)
		}
	}

	if rounded.LessThanOrEqual(cost) {
		return cost.Mul(hundred).Ceil().Div(hundred).Add(safetyMarkup).Round(pricePlaces), true
	}
	return rounded.Round(pricePlaces), false
}

func checkPriceInvariant(finalPrice, cost decimal.Decimal) {
	if !finalPrice.GreaterThan(cost) {
		panic(PricingInvariantViolation{Cost: cost, FinalPrice: finalPrice})
	}
}
