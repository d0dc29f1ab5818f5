package calculator

import (
	"errors"
	"strings"
	"testing"

	"retailpricing/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var decimalComparer = cmp.Comparer(func(d1, d2 decimal.Decimal) bool {
	return d1.Equal(d2)
})

func TestCalculatePrice(t *testing.T) {
	tests := []struct {
		name          string
		cost          string
		role          domain.StrategicRole
		finalPrice    string
		appliedMargin string
	}{
		{"low band ends in .99", "2", domain.StrategicRoleConvenience, "2.99", "0.4950"},
		{"second band ends in .59", "10", domain.StrategicRoleConvenience, "12.59", "0.2590"},
		{"fraction of exactly .50 rounds to .99", "30", domain.StrategicRoleConvenience, "34.99", "0.1663"},
		{"top band", "100", domain.StrategicRoleConvenience, "110.59", "0.1059"},
		{"anchor clamped to min margin", "100", domain.StrategicRoleAnchor, "108.59", "0.0859"},
		{"impulse at max margin", "2", domain.StrategicRoleImpulse, "2.99", "0.4950"},
		{"premium", "40", domain.StrategicRolePremium, "47.59", "0.1898"},
		{"sub-unit rounds up to tenth", "0.65", domain.StrategicRoleConvenience, "0.90", "0.3846"},
		{"sub-unit half tenth rounds up", "0.5", domain.StrategicRoleConvenience, "0.70", "0.4000"},
		{"sub-unit exact tenth is kept", "0.5", domain.StrategicRoleImpulse, "0.70", "0.4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePrice(d(tt.cost), tt.role)
			require.NoError(t, err)

			require.Equal(
				t,
				"",
				cmp.Diff(
					domain.PricingResult{
						FinalPrice:    d(tt.finalPrice),
						AppliedMargin: d(tt.appliedMargin),
						RuleVersion:   "v1.1",
					},
					got,
					decimalComparer,
				),
			)
		})
	}
}

func TestCalculatePrice_bandBoundaries(t *testing.T) {
	// boundary costs belong to the upper band
	tests := []struct {
		cost       string
		wantMargin string
		finalPrice string
	}{
		{"2.99", "0.30", "3.99"},
		{"3", "0.20", "3.99"},
		{"14.99", "0.20", "17.99"},
		{"15", "0.15", "17.59"},
		{"59.99", "0.15", "68.99"},
		{"60", "0.10", "66.59"},
	}

	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			breakdown, err := CalculatePriceDetailed(d(tt.cost), domain.StrategicRoleConvenience)
			require.NoError(t, err)

			require.True(t, breakdown.TargetMargin.Equal(d(tt.wantMargin)), "margin %s", breakdown.TargetMargin)
			require.Equal(t, tt.finalPrice, breakdown.Result.FinalPrice.StringFixed(2))
			require.False(t, breakdown.SafetyNetApplied)
		})
	}
}

func TestCalculatePrice_invalidCost(t *testing.T) {
	tests := []struct {
		name   string
		cost   string
		reason string
	}{
		{"zero", "0", "greater than zero"},
		{"negative cent", "-0.01", "greater than zero"},
		{"negative", "-100", "greater than zero"},
		{"at max cost", "100000000", "below"},
		{"above max cost", "123456789.5", "below"},
		{"huge exponent", "1e2000000", "below"},
		{"huge coefficient", "1" + strings.Repeat("0", 60) + "e-10", "below"},
		{"tiny exponent", "1e-2000000", "decimal places"},
		{"fifth decimal place", "0.00001", "decimal places"},
		{"sub-cent remainder", "12.34567", "decimal places"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePrice(d(tt.cost), domain.StrategicRoleConvenience)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidCost))
			require.ErrorContains(t, err, tt.reason)
			require.Less(t, len(err.Error()), 200)

			var costErr *InvalidCostError
			require.True(t, errors.As(err, &costErr))
			require.True(t, costErr.Cost.Equal(d(tt.cost)))
			require.Equal(t, domain.PricingResult{}, got)
		})
	}
}

func TestCalculatePrice_costBounds(t *testing.T) {
	tests := []struct {
		name       string
		cost       string
		finalPrice string
	}{
		{"smallest cost", "0.0001", "0.10"},
		{"largest cost", "99999999.9999", "109999999.99"},
		{"trailing zeros past scale", "10.000000", "12.59"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePrice(d(tt.cost), domain.StrategicRoleConvenience)
			require.NoError(t, err)
			require.Equal(t, tt.finalPrice, got.FinalPrice.StringFixed(2))
		})
	}
}

func TestCalculatePrice_unknownRole(t *testing.T) {
	_, err := CalculatePrice(d("10"), domain.StrategicRole("clearance"))
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestResolveMargin(t *testing.T) {
	tests := []struct {
		name string
		cost string
		role domain.StrategicRole
		want string
	}{
		{"floor clamp", "60", domain.StrategicRoleAnchor, "0.08"},
		{"floor clamp far above band", "1000", domain.StrategicRoleAnchor, "0.08"},
		{"cap reached exactly", "2.50", domain.StrategicRoleImpulse, "0.40"},
		{"anchor low band", "1", domain.StrategicRoleAnchor, "0.25"},
		{"premium mid band", "20", domain.StrategicRolePremium, "0.18"},
		{"impulse top band", "75", domain.StrategicRoleImpulse, "0.20"},
		{"convenience unchanged", "14", domain.StrategicRoleConvenience, "0.20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveMargin(d(tt.cost), tt.role)
			require.NoError(t, err)
			require.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestPsychologicalRound(t *testing.T) {
	tests := []struct {
		name     string
		rawPrice string
		cost     string
		want     string
	}{
		{"sub-unit ceil", "0.85", "0.5", "0.90"},
		{"sub-unit tiny", "0.01", "0.005", "0.10"},
		{"whole number", "12.00", "10", "12.59"},
		{"fraction at cutoff", "5.49", "4", "5.59"},
		{"fraction just over cutoff", "5.491", "4", "5.99"},
		{"fraction near next unit", "5.995", "4", "5.99"},
		{"exactly one", "1", "0.5", "1.59"},
		{"safety net over .99 ending", "2.995", "2.995", "3.05"},
		{"safety net sub-unit", "0.9", "0.9", "0.95"},
		{"safety net fractional cents", "7.991", "7.991", "8.05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PsychologicalRound(d(tt.rawPrice), d(tt.cost))
			require.Equal(t, tt.want, got.StringFixed(2))
			require.True(t, got.GreaterThan(d(tt.cost)))
		})
	}
}

func TestCalculatePrice_safetyNet(t *testing.T) {
	// zero margin puts raw price on cost, so .99 endings can fall back below it
	rules := PricingRules{
		Version:     "test",
		Bands:       []CostBand{{BaseMargin: decimal.Zero}},
		Adjustments: RoleAdjustments{},
		MinMargin:   decimal.Zero,
		MaxMargin:   d("0.40"),
	}
	require.NoError(t, rules.Validate())

	breakdown, err := rules.CalculatePriceDetailed(d("2.995"), domain.StrategicRoleConvenience)
	require.NoError(t, err)

	require.True(t, breakdown.SafetyNetApplied)
	require.Equal(t, "3.05", breakdown.Result.FinalPrice.StringFixed(2))
	require.Equal(t, "0.0184", breakdown.Result.AppliedMargin.StringFixed(4))
	require.Equal(t, "test", breakdown.Result.RuleVersion)
}

func TestCheckPriceInvariant(t *testing.T) {
	require.NotPanics(t, func() { checkPriceInvariant(d("1.59"), d("1.00")) })

	require.PanicsWithValue(t, PricingInvariantViolation{Cost: d("2"), FinalPrice: d("2")}, func() {
		checkPriceInvariant(d("2"), d("2"))
	})
	require.Panics(t, func() { checkPriceInvariant(d("1.99"), d("2")) })
}

// sweeps cost from 0.01 to 250 across every role
func TestCalculatePrice_properties(t *testing.T) {
	minMargin := d("0.075")
	step := d("0.07")
	limit := d("250")

	for cost := d("0.01"); cost.LessThan(limit); cost = cost.Add(step) {
		var previous *decimal.Decimal
		for _, role := range []domain.StrategicRole{
			domain.StrategicRoleAnchor,
			domain.StrategicRoleConvenience,
			domain.StrategicRoleImpulse,
		} {
			got, err := CalculatePrice(cost, role)
			require.NoError(t, err)

			require.True(t, got.FinalPrice.GreaterThan(cost), "cost=%s role=%s price=%s", cost, role, got.FinalPrice)
			require.True(t, got.AppliedMargin.GreaterThanOrEqual(minMargin), "cost=%s role=%s margin=%s", cost, role, got.AppliedMargin)
			require.True(t, got.FinalPrice.Equal(got.FinalPrice.Round(2)))

			if cost.GreaterThanOrEqual(decimal.NewFromInt(1)) {
				cents := got.FinalPrice.Sub(got.FinalPrice.Floor()).StringFixed(2)
				require.Contains(t, []string{"0.59", "0.99"}, cents, "cost=%s role=%s", cost, role)
			} else if got.FinalPrice.LessThan(decimal.NewFromInt(1)) {
				require.True(t, got.FinalPrice.Equal(got.FinalPrice.Round(1)), "cost=%s price=%s", cost, got.FinalPrice)
			}

			again, err := CalculatePrice(cost, role)
			require.NoError(t, err)
			require.Equal(t, got.FinalPrice.String(), again.FinalPrice.String())
			require.Equal(t, got.AppliedMargin.String(), again.AppliedMargin.String())

			if previous != nil {
				require.True(t, got.FinalPrice.GreaterThanOrEqual(*previous), "role ordering broken at cost=%s", cost)
			}
			previous = &got.FinalPrice
		}

		premium, err := CalculatePrice(cost, domain.StrategicRolePremium)
		require.NoError(t, err)
		require.True(t, premium.FinalPrice.GreaterThan(cost))
	}
}
