package routes

import (
	"net/http"
	"time"

	_ "fieldservice_quotes/docs" // registers the swagger spec
	"fieldservice_quotes/internal/adapter/http/handlers"
	"fieldservice_quotes/internal/infrastructure/metrics"
	"fieldservice_quotes/pkg"
	"fieldservice_quotes/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the HTTP handlers mounted under /v1.
type Handlers struct {
	Quotes    *handlers.QuoteHandler
	LineItems *handlers.LineItemHandler
	Payments  *handlers.QuotePaymentHandler
}

// Options carries the cross-cutting pieces of the router. Nil fields disable
// the matching feature.
type Options struct {
	Log      *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

// NewRouter builds the gin engine with middlewares, docs, metrics and the
// versioned API.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	router := gin.New()
	setMiddlewares(router, opts)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, h)
	return router
}

func setMiddlewares(router *gin.Engine, opts Options) {
	router.Use(requestLogger(opts.Log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		opts.Log.Error(opts.Log.WithField(c.Request.Context(), "panic", recovered), "recovered from panic", nil)
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	}))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
}

// requestLogger logs one line per request and flags slow ones.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	const slowRequest = 500 * time.Millisecond
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		ctx := log.WithFields(c.Request.Context(), map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
		})
		if latency > slowRequest {
			log.Warn(ctx, "[http] slow request", nil)
			return
		}
		log.Info(ctx, "[http] request")
	}
}
