package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	"github.com/ovationhq/ovation/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordedDecision captures one DecisionRecorder call.
type recordedDecision struct {
	feature   string
	allowed   bool
	anonymous bool
}

type fakeRecorder struct {
	mu        sync.Mutex
	decisions []recordedDecision
}

func (r *fakeRecorder) RecordDecision(_ context.Context, feature string, allowed bool, anonymous bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, recordedDecision{feature, allowed, anonymous})
}

func identityMiddleware(identity authzDomain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func newGuardRouter(identity authzDomain.Identity, guard *Guard, features ...authzDomain.Feature) *gin.Engine {
	router := gin.New()
	router.Use(identityMiddleware(identity))
	router.GET("/protected", guard.RequireFeatures(features...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequireFeaturesAnonymousGets401(t *testing.T) {
	guard := NewGuard(authzDomain.DefaultCatalog(), nil, testutil.Logger())
	router := newGuardRouter(authzDomain.Anonymous(), guard, authzDomain.FeatureReadLesson)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireFeaturesMissingFeatureGets403NamingFeature(t *testing.T) {
	guard := NewGuard(authzDomain.DefaultCatalog(), nil, testutil.Logger())
	identity := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "maria", []authzDomain.Feature{
		authzDomain.FeatureReadLesson,
	})
	router := newGuardRouter(identity, guard, authzDomain.FeatureReadSubscriptionOther)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "read:subscription:other")
}

func TestRequireFeaturesAllowsHolder(t *testing.T) {
	guard := NewGuard(authzDomain.DefaultCatalog(), nil, testutil.Logger())
	identity := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "maria", []authzDomain.Feature{
		authzDomain.FeatureReadLesson,
	})
	router := newGuardRouter(identity, guard, authzDomain.FeatureReadLesson)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireFeaturesIsConjunctive(t *testing.T) {
	guard := NewGuard(authzDomain.DefaultCatalog(), nil, testutil.Logger())
	identity := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "staff", []authzDomain.Feature{
		authzDomain.FeatureCreatePresentation,
	})
	router := newGuardRouter(identity, guard,
		authzDomain.FeatureCreatePresentation,
		authzDomain.FeatureUpdatePresentation,
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "update:presentation")
}

func TestRequireFeaturesPanicsOnUnknownFeature(t *testing.T) {
	guard := NewGuard(authzDomain.DefaultCatalog(), nil, testutil.Logger())

	assert.Panics(t, func() {
		guard.RequireFeatures("read:secrets")
	})
}

func TestRequireFeaturesMissingIdentityTreatedAsAnonymous(t *testing.T) {
	guard := NewGuard(authzDomain.DefaultCatalog(), nil, testutil.Logger())

	router := gin.New()
	router.GET("/protected", guard.RequireFeatures(authzDomain.FeatureReadLesson), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardRecordsDecisions(t *testing.T) {
	recorder := &fakeRecorder{}
	guard := NewGuard(authzDomain.DefaultCatalog(), recorder, testutil.Logger())
	identity := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "maria", []authzDomain.Feature{
		authzDomain.FeatureReadLesson,
	})

	assert.True(t, guard.Allow(context.Background(), identity, authzDomain.FeatureReadLesson))
	assert.False(t, guard.Allow(context.Background(), identity, authzDomain.FeatureDeleteUser))
	assert.False(t, guard.Allow(context.Background(), authzDomain.Anonymous(), authzDomain.FeatureReadLesson))

	require.Len(t, recorder.decisions, 3)
	assert.Equal(t, recordedDecision{"read:lesson", true, false}, recorder.decisions[0])
	assert.Equal(t, recordedDecision{"delete:user", false, false}, recorder.decisions[1])
	assert.Equal(t, recordedDecision{"read:lesson", false, true}, recorder.decisions[2])
}

func TestAllowOnResolvesScope(t *testing.T) {
	guard := NewGuard(authzDomain.DefaultCatalog(), nil, testutil.Logger())

	ownerID := uuid.Must(uuid.NewV7())
	owner := authzDomain.NewIdentity(ownerID, "owner", []authzDomain.Feature{
		authzDomain.FeatureReadSubscriptionSelf,
	})
	stranger := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "stranger", []authzDomain.Feature{
		authzDomain.FeatureReadSubscriptionSelf,
	})
	resource := ownedResource{owner: ownerID}

	scoped, allowed := guard.AllowOn(context.Background(), owner, "read:subscription", resource)
	assert.Equal(t, authzDomain.FeatureReadSubscriptionSelf, scoped)
	assert.True(t, allowed)

	scoped, allowed = guard.AllowOn(context.Background(), stranger, "read:subscription", resource)
	assert.Equal(t, authzDomain.FeatureReadSubscriptionOther, scoped)
	assert.False(t, allowed)
}

type ownedResource struct {
	owner uuid.UUID
}

func (r ownedResource) OwnerID() uuid.UUID { return r.owner }
