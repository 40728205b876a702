package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"identity-service/app/config"
	"identity-service/app/driver/notify"
	"identity-service/app/driver/postgres"
	"identity-service/app/driver/security"
	"identity-service/app/driver/token"
	"identity-service/app/port"
	"identity-service/app/rest"
	"identity-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB *postgres.DB

	// Usecases
	AuthUsecase port.AuthUsecase
	Janitor     *usecase.Janitor

	janitorCancel context.CancelFunc
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories
	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)
	sessionRepository := postgres.NewSessionRepository(container.DB.Pool(), logger)
	otpRepository := postgres.NewOtpRepository(container.DB.Pool(), logger)

	// Drivers
	hasher := security.NewBcryptHasher()
	notifier := notify.NewLogNotifier(logger)
	issuer := token.NewJWTIssuer(token.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	}, logger)

	// Usecases
	resolver := usecase.NewIdentityResolver(userRepository, logger)
	otpManager := usecase.NewOtpManager(otpRepository, hasher, notifier, cfg.OtpTTL, logger)
	sessionManager := usecase.NewSessionManager(sessionRepository, userRepository, cfg.SessionTTL, logger)
	container.AuthUsecase = usecase.NewAuthUseCase(resolver, otpManager, sessionManager, issuer, logger)

	container.Janitor = usecase.NewJanitor(sessionRepository, otpRepository, cfg.CleanupInterval, logger)

	logger.Info("container initialized")
	return container, nil
}

// StartJanitor launches the background cleanup loop if enabled.
func (c *Container) StartJanitor() {
	if !c.Config.EnableCleanup {
		c.Logger.Info("cleanup loop disabled by configuration")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.janitorCancel = cancel
	go c.Janitor.Run(ctx)
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Logger:            c.Logger,
		AuthUsecase:       c.AuthUsecase,
		DBHealth:          c.DB,
		RateLimitInterval: c.Config.RateLimitInterval,
		RateLimitBurst:    c.Config.RateLimitBurst,
		EnableMetrics:     c.Config.EnableMetrics,
	})
}

// Close closes all resources
func (c *Container) Close() error {
	if c.janitorCancel != nil {
		c.janitorCancel()
	}

	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("container closed")
	return nil
}
