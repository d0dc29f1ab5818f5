package cmd

import (
	"database/sql"
	"fmt"

	"retailpricing/api"
	"retailpricing/internal/calculator"
	"retailpricing/internal/logger"
	"retailpricing/internal/metrics"
	"retailpricing/internal/repository"
	"retailpricing/internal/service"
	"retailpricing/internal/util"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func CloseDependencies(handler *api.ApiHandler) {
	if err := handler.Close(); err != nil {
		zap.S().Errorf("failed to close dependencies: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, *util.Config, error) {
	config, err := util.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics, err := metrics.NewPricingMetrics(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register pricing metrics: %w", err)
	}

	apiHandler := &api.ApiHandler{
		MetricsGatherer: registry,
	}

	var productPriceRepository repository.ProductPriceRepository
	if config.Db.Enabled() {
		dbConn, err := sql.Open("postgres", config.Db.ToConnectionStr())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		apiHandler.Closers = append(apiHandler.Closers, dbConn.Close)
		productPriceRepository = repository.NewProductPriceRepository(dbConn)
	} else {
		log.Warn("no database configured, prices will not be persisted")
	}

	repricingService, err := service.NewRepricingService(
		calculator.DefaultPricingRules,
		productPriceRepository,
		pricingMetrics,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create repricing service: %w", err)
	}
	apiHandler.RepricingService = repricingService

	return apiHandler, config, nil
}
