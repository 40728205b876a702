package rest

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"identity-service/app/port"
	"identity-service/app/rest/handlers"
	custommw "identity-service/app/rest/middleware"
	appvalidator "identity-service/app/utils/validator"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger            *slog.Logger
	AuthUsecase       port.AuthUsecase
	DBHealth          handlers.HealthChecker
	RateLimitInterval time.Duration
	RateLimitBurst    int
	EnableMetrics     bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	validator := appvalidator.New()
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, validator, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.DBHealth, config.Logger)

	rateLimiter := custommw.NewRateLimiter(custommw.RateLimiterConfig{
		IdentifyInterval: config.RateLimitInterval,
		IdentifyBurst:    config.RateLimitBurst,
	})

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	v1 := e.Group("/v1")

	// Health endpoints
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Identification endpoints
	v1.POST("/identify", authHandler.Identify)
	v1.POST("/verify", authHandler.Verify)

	if config.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	return e
}
