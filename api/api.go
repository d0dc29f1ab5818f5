package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"retailpricing/internal/logger"
	"retailpricing/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ApiHandler struct {
	RepricingService service.RepricingService
	MetricsGatherer  prometheus.Gatherer
	// Closers run on shutdown, e.g. the db pool.
	Closers []func() error
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)
	router.Use(gin.CustomRecovery(recoverPanic))

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "retail pricing engine"})
	})
	router.POST("/price", m.price)
	router.POST("/reprice", m.reprice)
	router.GET("/prices", m.listPrices)
	router.GET("/prices/:sku", m.getPrice)
	router.GET("/rules", m.rules)

	if m.MetricsGatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, http.StatusInternalServerError)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	lg := logger.FromContext(c.Request.Context())
	if code >= 500 {
		lg.Error(err.Error())
	} else {
		lg.Info(err.Error())
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

var errInternalPricing = errors.New("internal pricing error")

// a panic here is a broken pricing invariant, never bad input; details stay in the log
func recoverPanic(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context()).Errorf("recovered from panic: %v", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": errInternalPricing.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	start := time.Now()

	lg := logger.FromContext(c.Request.Context()).With(
		zap.String("requestID", requestID.String()),
		zap.String("method", c.Request.Method),
		zap.String("route", c.Request.URL.Path),
	)
	c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), lg))
	c.Header("X-Request-ID", requestID.String())

	c.Next()

	lg.Infow(
		"request completed",
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", c.ClientIP(),
	)
}

// Close runs every registered closer and returns the first error.
func (m ApiHandler) Close() error {
	var firstErr error
	for _, closer := range m.Closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
