package app

import (
	"fmt"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	commentDomain "github.com/ovationhq/ovation/internal/comment/domain"
	lessonDomain "github.com/ovationhq/ovation/internal/lesson/domain"
	"github.com/ovationhq/ovation/internal/metrics"
	paymentDomain "github.com/ovationhq/ovation/internal/payment/domain"
	presentationDomain "github.com/ovationhq/ovation/internal/presentation/domain"
	sessionDomain "github.com/ovationhq/ovation/internal/session/domain"
	shopDomain "github.com/ovationhq/ovation/internal/shop/domain"
	subscriptionDomain "github.com/ovationhq/ovation/internal/subscription/domain"
	userDomain "github.com/ovationhq/ovation/internal/user/domain"
)

// initAuthz builds the feature catalog, the projection schema registry,
// and the route guard. Every module registers its schemas here, and the
// registry is checked at boot so a feature without a projection entry is
// a startup failure instead of a request-time surprise.
func (c *Container) initAuthz() {
	c.authzInit.Do(func() {
		c.catalog = authzDomain.DefaultCatalog()

		registry := authzDomain.NewSchemaRegistry(c.catalog)
		userDomain.RegisterSchemas(registry)
		sessionDomain.RegisterSchemas(registry)
		subscriptionDomain.RegisterSchemas(registry)
		paymentDomain.RegisterSchemas(registry)
		presentationDomain.RegisterSchemas(registry)
		lessonDomain.RegisterSchemas(registry)
		shopDomain.RegisterSchemas(registry)
		commentDomain.RegisterSchemas(registry)

		if err := registry.EnsureRegistered(projectedFeatures()...); err != nil {
			c.initErrors["authz"] = fmt.Errorf("projection schema missing: %w", err)
			return
		}
		c.schemaRegistry = registry

		var recorder authzHTTP.DecisionRecorder
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["authz"] = fmt.Errorf("failed to get metrics provider for guard: %w", err)
			return
		}
		if provider != nil {
			authzMetrics, err := metrics.NewAuthzMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
			if err != nil {
				c.initErrors["authz"] = fmt.Errorf("failed to create authz metrics: %w", err)
				return
			}
			recorder = authzMetrics
		}

		c.guard = authzHTTP.NewGuard(c.catalog, recorder, c.Logger())
	})
}

// projectedFeatures lists every feature whose requests or responses pass
// through the projection engine.
func projectedFeatures() []authzDomain.Feature {
	return []authzDomain.Feature{
		authzDomain.FeatureCreateUser,
		authzDomain.FeatureReadUserSelf,
		authzDomain.FeatureReadUserOther,
		authzDomain.FeatureUpdateUserSelf,
		authzDomain.FeatureUpdateUserOther,
		authzDomain.FeatureUpdateUserFeatures,
		authzDomain.FeatureCreateSession,
		authzDomain.FeatureCreateSubscription,
		authzDomain.FeatureReadSubscriptionSelf,
		authzDomain.FeatureReadSubscriptionOther,
		authzDomain.FeatureUpdateSubscription,
		authzDomain.FeatureReadPaymentSelf,
		authzDomain.FeatureReadPaymentOther,
		authzDomain.FeatureUpdatePaymentConfirmPaid,
		authzDomain.FeatureCreatePresentation,
		authzDomain.FeatureReadPresentation,
		authzDomain.FeatureUpdatePresentation,
		authzDomain.FeatureCreateLesson,
		authzDomain.FeatureReadLesson,
		authzDomain.FeatureUpdateLesson,
		authzDomain.FeatureCreateProduct,
		authzDomain.FeatureReadProduct,
		authzDomain.FeatureUpdateProduct,
		authzDomain.FeatureCreateComment,
		authzDomain.FeatureReadComment,
	}
}

// Catalog returns the immutable feature catalog.
func (c *Container) Catalog() (*authzDomain.Catalog, error) {
	c.initAuthz()
	if err, exists := c.initErrors["authz"]; exists {
		return nil, err
	}
	return c.catalog, nil
}

// SchemaRegistry returns the projection schema registry.
func (c *Container) SchemaRegistry() (*authzDomain.SchemaRegistry, error) {
	c.initAuthz()
	if err, exists := c.initErrors["authz"]; exists {
		return nil, err
	}
	return c.schemaRegistry, nil
}

// Guard returns the route guard.
func (c *Container) Guard() (*authzHTTP.Guard, error) {
	c.initAuthz()
	if err, exists := c.initErrors["authz"]; exists {
		return nil, err
	}
	return c.guard, nil
}
