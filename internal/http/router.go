package http

import (
	"log/slog"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	commentHTTP "github.com/ovationhq/ovation/internal/comment/http"
	lessonHTTP "github.com/ovationhq/ovation/internal/lesson/http"
	"github.com/ovationhq/ovation/internal/metrics"
	paymentHTTP "github.com/ovationhq/ovation/internal/payment/http"
	presentationHTTP "github.com/ovationhq/ovation/internal/presentation/http"
	sessionHTTP "github.com/ovationhq/ovation/internal/session/http"
	sessionUseCase "github.com/ovationhq/ovation/internal/session/usecase"
	shopHTTP "github.com/ovationhq/ovation/internal/shop/http"
	subscriptionHTTP "github.com/ovationhq/ovation/internal/subscription/http"
	userHTTP "github.com/ovationhq/ovation/internal/user/http"
)

// RouterConfig carries everything the route table needs: the guard and
// catalog for authorization, the session use case for the identity
// middleware, and one handler per module.
type RouterConfig struct {
	Logger  *slog.Logger
	Catalog *authzDomain.Catalog
	Guard   *authzHTTP.Guard

	SessionUseCase sessionUseCase.UseCase

	// MeterProvider enables HTTP request metrics when non-nil.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string

	RateLimitLoginEnabled bool
	RateLimitLoginRPS     float64
	RateLimitLoginBurst   int

	CORSEnabled      bool
	CORSAllowOrigins string

	UserHandler         *userHTTP.UserHandler
	SessionHandler      *sessionHTTP.SessionHandler
	SubscriptionHandler *subscriptionHTTP.SubscriptionHandler
	PaymentHandler      *paymentHTTP.PaymentHandler
	PresentationHandler *presentationHTTP.PresentationHandler
	LessonHandler       *lessonHTTP.LessonHandler
	ProductHandler      *shopHTTP.ProductHandler
	CommentHandler      *commentHTTP.CommentHandler
}

// NewRouter assembles the gin engine with the full middleware chain and
// route table. Routes whose required feature is fixed are guarded here;
// routes whose feature depends on the resource owner or the request body
// authorize inside their handlers after the existence check.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(cfg.Logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, cfg.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.Use(sessionHTTP.IdentityMiddleware(cfg.SessionUseCase, cfg.Catalog, cfg.Logger))

	router.GET("/health", healthHandler)
	router.GET("/ready", readinessHandler)

	guard := cfg.Guard
	v1 := router.Group("/v1")

	// Sessions. Login is reachable by the anonymous identity and rate
	// limited per client IP.
	sessionRoutes := []gin.HandlerFunc{guard.RequireFeatures(authzDomain.FeatureCreateSession)}
	if cfg.RateLimitLoginEnabled {
		sessionRoutes = append(sessionRoutes,
			sessionHTTP.LoginRateLimitMiddleware(cfg.RateLimitLoginRPS, cfg.RateLimitLoginBurst, cfg.Logger))
	}
	sessionRoutes = append(sessionRoutes, cfg.SessionHandler.CreateSessionHandler)
	v1.POST("/sessions", sessionRoutes...)
	v1.DELETE("/sessions",
		guard.RequireFeatures(authzDomain.FeatureDeleteSession),
		cfg.SessionHandler.DeleteSessionHandler)

	// Users. Reads and profile updates resolve self/other in the handler.
	v1.POST("/users",
		guard.RequireFeatures(authzDomain.FeatureCreateUser),
		cfg.UserHandler.CreateUserHandler)
	v1.GET("/users/:username", cfg.UserHandler.GetUserHandler)
	v1.PUT("/users/:username", cfg.UserHandler.UpdateUserHandler)
	v1.PUT("/users/:username/features",
		guard.RequireFeatures(authzDomain.FeatureUpdateUserFeatures),
		cfg.UserHandler.UpdateUserFeaturesHandler)
	v1.DELETE("/users/:username",
		guard.RequireFeatures(authzDomain.FeatureDeleteUser),
		cfg.UserHandler.DeleteUserHandler)

	// Subscriptions. Single reads scope in the handler; the bulk listing
	// requires the other scope outright.
	v1.POST("/subscriptions",
		guard.RequireFeatures(authzDomain.FeatureCreateSubscription),
		cfg.SubscriptionHandler.CreateSubscriptionHandler)
	v1.GET("/subscriptions",
		guard.RequireFeatures(authzDomain.FeatureReadSubscriptionOther),
		cfg.SubscriptionHandler.ListSubscriptionsHandler)
	v1.GET("/subscriptions/:id", cfg.SubscriptionHandler.GetSubscriptionHandler)
	v1.PUT("/subscriptions/:id",
		guard.RequireFeatures(authzDomain.FeatureUpdateSubscription),
		cfg.SubscriptionHandler.UpdateSubscriptionHandler)
	v1.DELETE("/subscriptions/:id",
		guard.RequireFeatures(authzDomain.FeatureDeleteSubscription),
		cfg.SubscriptionHandler.DeleteSubscriptionHandler)

	// Payments. The update authorizes in-handler because the required
	// feature depends on the action in the request body.
	v1.GET("/payments",
		guard.RequireFeatures(authzDomain.FeatureReadPaymentOther),
		cfg.PaymentHandler.ListPaymentsHandler)
	v1.GET("/payments/:id", cfg.PaymentHandler.GetPaymentHandler)
	v1.PUT("/payments/:id", cfg.PaymentHandler.UpdatePaymentHandler)

	// Presentations.
	v1.POST("/presentations",
		guard.RequireFeatures(authzDomain.FeatureCreatePresentation),
		cfg.PresentationHandler.CreatePresentationHandler)
	v1.GET("/presentations",
		guard.RequireFeatures(authzDomain.FeatureReadPresentation),
		cfg.PresentationHandler.ListPresentationsHandler)
	v1.GET("/presentations/:id",
		guard.RequireFeatures(authzDomain.FeatureReadPresentation),
		cfg.PresentationHandler.GetPresentationHandler)
	v1.PUT("/presentations/:id",
		guard.RequireFeatures(authzDomain.FeatureUpdatePresentation),
		cfg.PresentationHandler.UpdatePresentationHandler)
	v1.DELETE("/presentations/:id",
		guard.RequireFeatures(authzDomain.FeatureDeletePresentation),
		cfg.PresentationHandler.DeletePresentationHandler)

	// Comments. Deletion scopes in the handler.
	v1.POST("/presentations/:id/comments",
		guard.RequireFeatures(authzDomain.FeatureCreateComment),
		cfg.CommentHandler.CreateCommentHandler)
	v1.GET("/presentations/:id/comments",
		guard.RequireFeatures(authzDomain.FeatureReadComment),
		cfg.CommentHandler.ListCommentsHandler)
	v1.DELETE("/comments/:id", cfg.CommentHandler.DeleteCommentHandler)

	// Lessons.
	v1.POST("/lessons",
		guard.RequireFeatures(authzDomain.FeatureCreateLesson),
		cfg.LessonHandler.CreateLessonHandler)
	v1.GET("/lessons",
		guard.RequireFeatures(authzDomain.FeatureReadLesson),
		cfg.LessonHandler.ListLessonsHandler)
	v1.GET("/lessons/:id",
		guard.RequireFeatures(authzDomain.FeatureReadLesson),
		cfg.LessonHandler.GetLessonHandler)
	v1.PUT("/lessons/:id",
		guard.RequireFeatures(authzDomain.FeatureUpdateLesson),
		cfg.LessonHandler.UpdateLessonHandler)
	v1.DELETE("/lessons/:id",
		guard.RequireFeatures(authzDomain.FeatureDeleteLesson),
		cfg.LessonHandler.DeleteLessonHandler)

	// Shop catalog.
	v1.POST("/products",
		guard.RequireFeatures(authzDomain.FeatureCreateProduct),
		cfg.ProductHandler.CreateProductHandler)
	v1.GET("/products",
		guard.RequireFeatures(authzDomain.FeatureReadProduct),
		cfg.ProductHandler.ListProductsHandler)
	v1.GET("/products/:id",
		guard.RequireFeatures(authzDomain.FeatureReadProduct),
		cfg.ProductHandler.GetProductHandler)
	v1.PUT("/products/:id",
		guard.RequireFeatures(authzDomain.FeatureUpdateProduct),
		cfg.ProductHandler.UpdateProductHandler)
	v1.DELETE("/products/:id",
		guard.RequireFeatures(authzDomain.FeatureDeleteProduct),
		cfg.ProductHandler.DeleteProductHandler)

	return router
}
