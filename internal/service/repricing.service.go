package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"retailpricing/internal/calculator"
	"retailpricing/internal/db/models/postgres/public/model"
	"retailpricing/internal/domain"
	"retailpricing/internal/logger"
	"retailpricing/internal/metrics"
	"retailpricing/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPriceNotFound          = errors.New("price not found")
	ErrPersistenceUnavailable = errors.New("price persistence is not configured")
	ErrEmptyBatch             = errors.New("no products to reprice")
)

type RepriceCatalogInput struct {
	Rows    []domain.CatalogRow
	Persist bool
}

type RepricingService interface {
	PriceProduct(ctx context.Context, cost decimal.Decimal, role domain.StrategicRole) (*calculator.PricingBreakdown, error)
	RepriceCatalog(ctx context.Context, in RepriceCatalogInput) (*domain.RepricingRun, error)
	GetCurrentPrice(ctx context.Context, sku string) (*domain.StoredPrice, error)
	ListCurrentPrices(ctx context.Context) ([]domain.StoredPrice, error)
	Rules() calculator.PricingRules
}

type repricingServiceHandler struct {
	PricingRules           calculator.PricingRules
	ProductPriceRepository repository.ProductPriceRepository
	Metrics                *metrics.PricingMetrics
}

// NewRepricingService builds the service around a rule set. The repository
// and metrics may be nil; without a repository nothing can be persisted.
func NewRepricingService(
	rules calculator.PricingRules,
	productPriceRepository repository.ProductPriceRepository,
	pricingMetrics *metrics.PricingMetrics,
) (RepricingService, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return repricingServiceHandler{
		PricingRules:           rules,
		ProductPriceRepository: productPriceRepository,
		Metrics:                pricingMetrics,
	}, nil
}

func (h repricingServiceHandler) Rules() calculator.PricingRules {
	return h.PricingRules
}

func (h repricingServiceHandler) PriceProduct(ctx context.Context, cost decimal.Decimal, role domain.StrategicRole) (*calculator.PricingBreakdown, error) {
	breakdown, err := h.PricingRules.CalculatePriceDetailed(cost, role)
	if err != nil {
		h.Metrics.ObserveRejected(string(role))
		return nil, err
	}
	h.Metrics.ObservePriced(role, breakdown.Result, breakdown.SafetyNetApplied)

	if breakdown.SafetyNetApplied {
		logger.FromContext(ctx).Warnf("safety net applied for cost %s role %s: %s", cost, role, breakdown.Result.FinalPrice.StringFixed(2))
	}

	return breakdown, nil
}

func (h repricingServiceHandler) RepriceCatalog(ctx context.Context, in RepriceCatalogInput) (*domain.RepricingRun, error) {
	log := logger.FromContext(ctx)
	if len(in.Rows) == 0 {
		return nil, ErrEmptyBatch
	}
	if in.Persist && h.ProductPriceRepository == nil {
		return nil, ErrPersistenceUnavailable
	}

	run := domain.RepricingRun{
		RunID:    uuid.New(),
		PricedAt: time.Now().UTC(),
		Priced:   []domain.PricedProduct{},
		Rejected: []domain.RejectedProduct{},
	}

	seen := map[string]bool{}
	for _, row := range in.Rows {
		product, err := parseCatalogRow(row)
		if err == nil && seen[product.SKU] {
			err = fmt.Errorf("duplicate sku %s", product.SKU)
		}
		if err != nil {
			h.Metrics.ObserveRejected(row.Role)
			run.Rejected = append(run.Rejected, rejectRow(row, err))
			continue
		}

		breakdown, err := h.PriceProduct(ctx, product.Cost, product.Role)
		if err != nil {
			run.Rejected = append(run.Rejected, rejectRow(row, err))
			continue
		}
		seen[product.SKU] = true

		run.Priced = append(run.Priced, domain.PricedProduct{
			CatalogProduct:   *product,
			PricingResult:    breakdown.Result,
			SafetyNetApplied: breakdown.SafetyNetApplied,
		})
	}

	summary, err := calculator.CalculateMarginSummary(run.Priced)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize repricing run: %w", err)
	}
	run.Summary = *summary

	if in.Persist && len(run.Priced) > 0 {
		err = h.ProductPriceRepository.UpsertMany(nil, productPriceModels(run))
		if err != nil {
			return nil, fmt.Errorf("failed to persist repricing run %s: %w", run.RunID, err)
		}
	}

	log.Infof(
		"repricing run %s: %d priced, %d rejected, median margin %.4f, persisted=%v",
		run.RunID,
		len(run.Priced),
		len(run.Rejected),
		run.Summary.MedianMargin,
		in.Persist,
	)

	return &run, nil
}

func (h repricingServiceHandler) GetCurrentPrice(ctx context.Context, sku string) (*domain.StoredPrice, error) {
	if h.ProductPriceRepository == nil {
		return nil, ErrPersistenceUnavailable
	}

	m, err := h.ProductPriceRepository.GetBySku(nil, strings.TrimSpace(sku))
	if errors.Is(err, repository.ErrProductPriceNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPriceNotFound, sku)
	} else if err != nil {
		return nil, err
	}

	return storedPriceFromModel(*m)
}

func (h repricingServiceHandler) ListCurrentPrices(ctx context.Context) ([]domain.StoredPrice, error) {
	if h.ProductPriceRepository == nil {
		return nil, ErrPersistenceUnavailable
	}

	models, err := h.ProductPriceRepository.List(nil)
	if err != nil {
		return nil, err
	}

	out := make([]domain.StoredPrice, 0, len(models))
	for _, m := range models {
		price, err := storedPriceFromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *price)
	}
	return out, nil
}

func storedPriceFromModel(m model.ProductPrice) (*domain.StoredPrice, error) {
	role, err := domain.ParseStrategicRole(m.StrategicRole)
	if err != nil {
		return nil, fmt.Errorf("stored price for %s is corrupt: %w", m.Sku, err)
	}

	return &domain.StoredPrice{
		PricedProduct: domain.PricedProduct{
			CatalogProduct: domain.CatalogProduct{
				SKU:  m.Sku,
				Name: m.Name,
				Cost: m.Cost,
				Role: role,
			},
			PricingResult: domain.PricingResult{
				FinalPrice:    m.FinalPrice,
				AppliedMargin: m.AppliedMargin,
				RuleVersion:   m.RuleVersion,
			},
		},
		RunID:    m.RepricingRunID,
		PricedAt: m.PricedAt,
	}, nil
}

func parseCatalogRow(row domain.CatalogRow) (*domain.CatalogProduct, error) {
	sku := strings.TrimSpace(row.SKU)
	if sku == "" {
		return nil, fmt.Errorf("missing sku")
	}
	cost, err := decimal.NewFromString(strings.TrimSpace(row.Cost))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", calculator.ErrInvalidCost, row.Cost)
	}
	role, err := domain.ParseStrategicRole(row.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", calculator.ErrUnknownRole, row.Role)
	}

	return &domain.CatalogProduct{
		SKU:  sku,
		Name: strings.TrimSpace(row.Name),
		Cost: cost,
		Role: role,
	}, nil
}

func rejectRow(row domain.CatalogRow, err error) domain.RejectedProduct {
	return domain.RejectedProduct{
		SKU:    row.SKU,
		Cost:   row.Cost,
		Role:   row.Role,
		Reason: err.Error(),
	}
}

func productPriceModels(run domain.RepricingRun) []model.ProductPrice {
	out := make([]model.ProductPrice, 0, len(run.Priced))
	for _, p := range run.Priced {
		out = append(out, model.ProductPrice{
			Sku:            p.SKU,
			Name:           p.Name,
			Cost:           p.Cost,
			StrategicRole:  string(p.Role),
			FinalPrice:     p.FinalPrice,
			AppliedMargin:  p.AppliedMargin,
			RuleVersion:    p.RuleVersion,
			RepricingRunID: run.RunID,
			PricedAt:       run.PricedAt,
		})
	}
	return out
}
