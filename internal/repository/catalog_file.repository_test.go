package repository

import (
	"bytes"
	"strings"
	"testing"

	"retailpricing/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCatalogFileRepository_ReadRows(t *testing.T) {
	t.Run("reads rows in file order", func(t *testing.T) {
		in := "sku,name,cost,role\n" +
			"MILK-1L,Whole milk,1.10,anchor\n" +
			"GUM-5,Mint gum,0.65,impulse\n" +
			"BAD-1,Broken,abc,convenience\n"

		rows, err := NewCatalogFileRepository().ReadRows(strings.NewReader(in))
		require.NoError(t, err)

		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.CatalogRow{
					{SKU: "MILK-1L", Name: "Whole milk", Cost: "1.10", Role: "anchor"},
					{SKU: "GUM-5", Name: "Mint gum", Cost: "0.65", Role: "impulse"},
					{SKU: "BAD-1", Name: "Broken", Cost: "abc", Role: "convenience"},
				},
				rows,
			),
		)
	})

	t.Run("column order does not matter", func(t *testing.T) {
		in := "role,cost,sku\npremium,40,WINE-750\n"

		rows, err := NewCatalogFileRepository().ReadRows(strings.NewReader(in))
		require.NoError(t, err)
		require.Equal(t, []domain.CatalogRow{{SKU: "WINE-750", Cost: "40", Role: "premium"}}, rows)
	})
}

func TestCatalogFileRepository_WritePriced(t *testing.T) {
	priced := []domain.PricedProduct{
		{
			CatalogProduct: domain.CatalogProduct{
				SKU:  "GUM-5",
				Name: "Mint gum",
				Cost: decimal.RequireFromString("0.65"),
				Role: domain.StrategicRoleConvenience,
			},
			PricingResult: domain.PricingResult{
				FinalPrice:    decimal.RequireFromString("0.9"),
				AppliedMargin: decimal.RequireFromString("0.3846"),
				RuleVersion:   "v1.1",
			},
		},
	}

	var buf bytes.Buffer
	err := NewCatalogFileRepository().WritePriced(&buf, priced)
	require.NoError(t, err)

	require.Equal(
		t,
		"sku,name,cost,role,final_price,applied_margin,rule_version\n"+
			"GUM-5,Mint gum,0.65,convenience,0.90,0.3846,v1.1\n",
		buf.String(),
	)
}
