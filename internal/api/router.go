package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/marketplace/marketplace-api/internal/api/handler"
	"github.com/marketplace/marketplace-api/internal/api/metrics"
	"github.com/marketplace/marketplace-api/internal/api/middleware"
	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

const bodyLimit = "1M"

// Dependencies are the collaborators the router wires into handlers and gates.
type Dependencies struct {
	Accounts   ports.AccountService
	Products   ports.ProductService
	Tokens     ports.TokenVerifier
	Identities middleware.AccountFinder
	Checks     []handler.DependencyCheck
	Logger     zerolog.Logger

	// MetricsRegistry receives the per-request HTTP collectors and backs
	// /metrics. Nil means the Prometheus default registry.
	MetricsRegistry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.MetricsRegistry != nil {
		registerer, gatherer = deps.MetricsRegistry, deps.MetricsRegistry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	// Outside the request logger so the recorded status is the one the
	// error handler already rendered.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Subsystem:  "http",
		Registerer: registerer,
		// Unmatched paths share one label value instead of one series each.
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Logger, deps.Checks...)
	authHandler := handler.NewAuthHandler(deps.Accounts)
	userHandler := handler.NewUserHandler(deps.Accounts)
	productHandler := handler.NewProductHandler(deps.Products)

	// --- Gates ---
	requireAuth := middleware.Auth(deps.Tokens, deps.Identities)

	// --- Health, docs and metrics (no auth required) ---
	e.GET("/", healthHandler.Welcome)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, requireAuth)

	// --- User routes ---
	users := api.Group("/users")
	users.GET("", userHandler.List, requireAuth, middleware.RBAC(domain.RoleAdmin))
	users.PUT("/profile", userHandler.UpdateProfile, requireAuth)
	users.DELETE("/profile", userHandler.DeleteProfile, requireAuth)

	// --- Product routes ---
	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, requireAuth)
	products.PUT("/:id", productHandler.Update, requireAuth)
	products.DELETE("/:id", productHandler.Delete, requireAuth)

	return e
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			} else if v.Status >= 400 {
				event = log.Warn()
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
