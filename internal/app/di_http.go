package app

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"

	commentHTTP "github.com/ovationhq/ovation/internal/comment/http"
	"github.com/ovationhq/ovation/internal/http"
	lessonHTTP "github.com/ovationhq/ovation/internal/lesson/http"
	paymentHTTP "github.com/ovationhq/ovation/internal/payment/http"
	presentationHTTP "github.com/ovationhq/ovation/internal/presentation/http"
	sessionHTTP "github.com/ovationhq/ovation/internal/session/http"
	shopHTTP "github.com/ovationhq/ovation/internal/shop/http"
	subscriptionHTTP "github.com/ovationhq/ovation/internal/subscription/http"
	userHTTP "github.com/ovationhq/ovation/internal/user/http"
)

// HTTPServer returns the API server with the full route table assembled.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if err, exists := c.initErrors["httpServer"]; exists {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are
// disabled by configuration.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err, exists := c.initErrors["metricsServer"]; exists {
		return nil, err
	}
	return c.metricsServer, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	catalog, err := c.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog for http server: %w", err)
	}

	registry, err := c.SchemaRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema registry for http server: %w", err)
	}

	guard, err := c.Guard()
	if err != nil {
		return nil, fmt.Errorf("failed to get guard for http server: %w", err)
	}

	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, fmt.Errorf("failed to build use cases for http server: %w", err)
	}

	var meterProvider metric.MeterProvider
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if provider != nil {
		meterProvider = provider.MeterProvider()
	}

	router := http.NewRouter(http.RouterConfig{
		Logger:  logger,
		Catalog: catalog,
		Guard:   guard,

		SessionUseCase: c.sessionUC,

		MeterProvider:    meterProvider,
		MetricsNamespace: c.config.MetricsNamespace,

		RateLimitLoginEnabled: c.config.RateLimitLoginEnabled,
		RateLimitLoginRPS:     c.config.RateLimitLoginRequestsPerSec,
		RateLimitLoginBurst:   c.config.RateLimitLoginBurst,

		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,

		UserHandler:         userHTTP.NewUserHandler(c.userUC, guard, registry, logger),
		SessionHandler:      sessionHTTP.NewSessionHandler(c.sessionUC, registry, logger),
		SubscriptionHandler: subscriptionHTTP.NewSubscriptionHandler(c.subscriptionUC, guard, registry, logger),
		PaymentHandler:      paymentHTTP.NewPaymentHandler(c.paymentUC, guard, registry, logger),
		PresentationHandler: presentationHTTP.NewPresentationHandler(c.presentationUC, registry, logger),
		LessonHandler:       lessonHTTP.NewLessonHandler(c.lessonUC, registry, logger),
		ProductHandler:      shopHTTP.NewProductHandler(c.productUC, registry, logger),
		CommentHandler:      commentHTTP.NewCommentHandler(c.commentUC, guard, registry, logger),
	})

	return http.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		router,
	), nil
}
