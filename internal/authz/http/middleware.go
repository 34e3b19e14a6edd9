package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	"github.com/ovationhq/ovation/internal/httputil"
)

// DecisionRecorder receives every authorization decision for metrics.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, feature string, allowed bool, anonymous bool)
}

// Guard turns policy decisions into request outcomes. One Guard is built at
// startup and shared by all routes.
type Guard struct {
	catalog *authzDomain.Catalog
	metrics DecisionRecorder // nil when metrics are disabled
	logger  *slog.Logger
}

// NewGuard creates a Guard bound to the catalog.
func NewGuard(catalog *authzDomain.Catalog, metrics DecisionRecorder, logger *slog.Logger) *Guard {
	return &Guard{
		catalog: catalog,
		metrics: metrics,
		logger:  logger,
	}
}

// RequireFeatures returns a middleware that denies the request unless the
// identity holds every listed feature. Construction panics if a feature is
// outside the catalog, so a mistyped guard declaration fails at startup
// rather than silently denying in production.
//
// Deny outcomes: 401 when the identity is anonymous, 403 naming the first
// missing feature otherwise. The handler is never invoked on deny.
func (g *Guard) RequireFeatures(features ...authzDomain.Feature) gin.HandlerFunc {
	g.catalog.MustContain(features...)

	return func(c *gin.Context) {
		identity := IdentityOrAnonymous(c.Request.Context())

		for _, f := range features {
			if !g.Allow(c.Request.Context(), identity, f) {
				httputil.HandleErrorGin(c, authzDomain.DenyError(identity, f), g.logger)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// Allow evaluates one feature for an identity, recording the decision for
// metrics and debug logging. Handlers use it directly when the correct
// feature depends on runtime data (resource ownership, an action parameter);
// routes use it via RequireFeatures.
func (g *Guard) Allow(ctx context.Context, identity authzDomain.Identity, f authzDomain.Feature) bool {
	allowed := identity.Can(f)

	if g.metrics != nil {
		g.metrics.RecordDecision(ctx, string(f), allowed, identity.IsAnonymous())
	}
	g.logger.Debug("authorization decision",
		slog.String("feature", string(f)),
		slog.Bool("allowed", allowed),
		slog.String("username", identity.Username),
		slog.Bool("anonymous", identity.IsAnonymous()),
	)

	return allowed
}

// AllowOn resolves the self/other scoped variant of base for the resource
// and evaluates it, returning the scoped feature for projection and error
// naming. Callers resolve resource existence first: not-found is decided
// before ownership ever is.
func (g *Guard) AllowOn(
	ctx context.Context,
	identity authzDomain.Identity,
	base authzDomain.Feature,
	resource authzDomain.Resource,
) (authzDomain.Feature, bool) {
	scoped := identity.ResolveScope(base, resource)
	return scoped, g.Allow(ctx, identity, scoped)
}
