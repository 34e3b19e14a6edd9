// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	commentUseCase "github.com/ovationhq/ovation/internal/comment/usecase"
	"github.com/ovationhq/ovation/internal/config"
	"github.com/ovationhq/ovation/internal/database"
	"github.com/ovationhq/ovation/internal/http"
	lessonUseCase "github.com/ovationhq/ovation/internal/lesson/usecase"
	"github.com/ovationhq/ovation/internal/metrics"
	paymentUseCase "github.com/ovationhq/ovation/internal/payment/usecase"
	presentationUseCase "github.com/ovationhq/ovation/internal/presentation/usecase"
	sessionService "github.com/ovationhq/ovation/internal/session/service"
	sessionUseCase "github.com/ovationhq/ovation/internal/session/usecase"
	shopUseCase "github.com/ovationhq/ovation/internal/shop/usecase"
	subscriptionUseCase "github.com/ovationhq/ovation/internal/subscription/usecase"
	userService "github.com/ovationhq/ovation/internal/user/service"
	userUseCase "github.com/ovationhq/ovation/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to
// access them. It follows the lazy initialization pattern - components are
// created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider

	// Authorization
	catalog        *authzDomain.Catalog
	schemaRegistry *authzDomain.SchemaRegistry
	guard          *authzHTTP.Guard

	// Services
	passwordService userService.PasswordService
	tokenService    sessionService.TokenService

	// Repositories
	userRepo         userUseCase.UserRepository
	sessionRepo      sessionUseCase.SessionRepository
	subscriptionRepo subscriptionUseCase.SubscriptionRepository
	paymentRepo      paymentUseCase.PaymentRepository
	presentationRepo presentationUseCase.PresentationRepository
	lessonRepo       lessonUseCase.LessonRepository
	productRepo      shopUseCase.ProductRepository
	commentRepo      commentUseCase.CommentRepository

	// Use cases
	userUC         userUseCase.UseCase
	sessionUC      sessionUseCase.UseCase
	subscriptionUC subscriptionUseCase.UseCase
	paymentUC      paymentUseCase.UseCase
	presentationUC presentationUseCase.UseCase
	lessonUC       lessonUseCase.UseCase
	productUC      shopUseCase.UseCase
	commentUC      commentUseCase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	authzInit           sync.Once
	servicesInit        sync.Once
	reposInit           sync.Once
	useCasesInit        sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: c.config.GetSlogLevel(),
		})
		c.logger = slog.New(handler)
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = fmt.Errorf("failed to connect to database: %w", err)
			return
		}
		c.db = db
	})
	if err, exists := c.initErrors["db"]; exists {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err, exists := c.initErrors["txManager"]; exists {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled by configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if err, exists := c.initErrors["metricsProvider"]; exists {
		return nil, err
	}
	return c.metricsProvider, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}
