package repository

import (
	"fmt"
	"io"

	"retailpricing/internal/domain"

	"github.com/gocarina/gocsv"
)

type catalogCsvRow struct {
	Sku  string `csv:"sku"`
	Name string `csv:"name"`
	Cost string `csv:"cost"`
	Role string `csv:"role"`
}

type pricedCsvRow struct {
	Sku           string `csv:"sku"`
	Name          string `csv:"name"`
	Cost          string `csv:"cost"`
	Role          string `csv:"role"`
	FinalPrice    string `csv:"final_price"`
	AppliedMargin string `csv:"applied_margin"`
	RuleVersion   string `csv:"rule_version"`
}

// CatalogFileRepository reads catalog exports and writes priced catalogs
// as csv. Values are passed through as text; validation happens when the
// rows are priced.
type CatalogFileRepository interface {
	ReadRows(r io.Reader) ([]domain.CatalogRow, error)
	WritePriced(w io.Writer, priced []domain.PricedProduct) error
}

type catalogFileRepositoryHandler struct{}

func NewCatalogFileRepository() CatalogFileRepository {
	return catalogFileRepositoryHandler{}
}

func (h catalogFileRepositoryHandler) ReadRows(r io.Reader) ([]domain.CatalogRow, error) {
	rows := []catalogCsvRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse catalog csv: %w", err)
	}

	out := make([]domain.CatalogRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CatalogRow{
			SKU:  row.Sku,
			Name: row.Name,
			Cost: row.Cost,
			Role: row.Role,
		})
	}
	return out, nil
}

func (h catalogFileRepositoryHandler) WritePriced(w io.Writer, priced []domain.PricedProduct) error {
	rows := make([]pricedCsvRow, 0, len(priced))
	for _, p := range priced {
		rows = append(rows, pricedCsvRow{
			Sku:           p.SKU,
			Name:          p.Name,
			Cost:          p.Cost.String(),
			Role:          string(p.Role),
			FinalPrice:    p.FinalPrice.StringFixed(2),
			AppliedMargin: p.AppliedMargin.StringFixed(4),
			RuleVersion:   p.RuleVersion,
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write priced catalog csv: %w", err)
	}
	return nil
}
