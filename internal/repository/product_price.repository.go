package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"retailpricing/internal/db/models/postgres/public/model"
	"retailpricing/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

var ErrProductPriceNotFound = errors.New("product price not found")

// ProductPriceRepository stores the current price of each sku. Writes are
// upserts keyed on sku, so only the latest repricing is kept.
type ProductPriceRepository interface {
	UpsertMany(tx *sql.Tx, prices []model.ProductPrice) error
	GetBySku(tx *sql.Tx, sku string) (*model.ProductPrice, error)
	List(tx *sql.Tx) ([]model.ProductPrice, error)
}

type productPriceRepositoryHandler struct {
	Db *sql.DB
}

func NewProductPriceRepository(db *sql.DB) ProductPriceRepository {
	return productPriceRepositoryHandler{Db: db}
}

func (h productPriceRepositoryHandler) UpsertMany(tx *sql.Tx, prices []model.ProductPrice) error {
	if len(prices) == 0 {
		return nil
	}
	t := table.ProductPrice

	rows := make([]model.ProductPrice, len(prices))
	copy(rows, prices)
	now := time.Now().UTC()
	for i := range rows {
		if rows[i].PricedAt.IsZero() {
			rows[i].PricedAt = now
		}
	}

	query := t.INSERT(t.MutableColumns).
		MODELS(rows).
		ON_CONFLICT(t.Sku).
		DO_UPDATE(postgres.SET(
			t.Name.SET(t.EXCLUDED.Name),
			t.Cost.SET(t.EXCLUDED.Cost),
			t.StrategicRole.SET(t.EXCLUDED.StrategicRole),
			t.FinalPrice.SET(t.EXCLUDED.FinalPrice),
			t.AppliedMargin.SET(t.EXCLUDED.AppliedMargin),
			t.RuleVersion.SET(t.EXCLUDED.RuleVersion),
			t.RepricingRunID.SET(t.EXCLUDED.RepricingRunID),
			t.PricedAt.SET(t.EXCLUDED.PricedAt),
		))

	var db qrm.Executable = h.Db
	if tx != nil {
		db = tx
	}

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to upsert %d product prices: %w", len(prices), err)
	}

	return nil
}

func (h productPriceRepositoryHandler) GetBySku(tx *sql.Tx, sku string) (*model.ProductPrice, error) {
	query := table.ProductPrice.
		SELECT(table.ProductPrice.AllColumns).
		WHERE(table.ProductPrice.Sku.EQ(postgres.String(sku)))

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	result := model.ProductPrice{}
	err := query.Query(db, &result)
	if err != nil && errors.Is(err, qrm.ErrNoRows) {
		return nil, ErrProductPriceNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get product price for %s: %w", sku, err)
	}

	return &result, nil
}

func (h productPriceRepositoryHandler) List(tx *sql.Tx) ([]model.ProductPrice, error) {
	query := table.ProductPrice.
		SELECT(table.ProductPrice.AllColumns).
		ORDER_BY(table.ProductPrice.Sku.ASC())

	var db qrm.Queryable = h.Db
	if tx != nil {
		db = tx
	}

	result := []model.ProductPrice{}
	err := query.Query(db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list product prices: %w", err)
	}

	return result, nil
}
