package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ovationhq/ovation/internal/errors"
)

func TestFeatureSegments(t *testing.T) {
	tests := []struct {
		feature  Feature
		verb     string
		resource string
		scope    string
	}{
		{FeatureCreatePresentation, "create", "presentation", ""},
		{FeatureReadSubscriptionSelf, "read", "subscription", "self"},
		{FeatureReadSubscriptionOther, "read", "subscription", "other"},
		{FeatureUpdatePaymentConfirmPaid, "update", "payment", "confirm_paid"},
	}

	for _, tt := range tests {
		t.Run(string(tt.feature), func(t *testing.T) {
			assert.Equal(t, tt.verb, tt.feature.Verb())
			assert.Equal(t, tt.resource, tt.feature.Resource())
			assert.Equal(t, tt.scope, tt.feature.Scope())
		})
	}
}

func TestFeatureWithScope(t *testing.T) {
	base := Feature("read:subscription")
	assert.Equal(t, FeatureReadSubscriptionSelf, base.WithScope(ScopeSelf))
	assert.Equal(t, FeatureReadSubscriptionOther, base.WithScope(ScopeOther))

	// An existing scope segment is replaced, not appended.
	assert.Equal(t, FeatureReadSubscriptionOther, FeatureReadSubscriptionSelf.WithScope(ScopeOther))
}

func TestDefaultCatalogContainsAllGroups(t *testing.T) {
	catalog := DefaultCatalog()

	groups := [][]Feature{
		UserFeatures,
		SessionFeatures,
		CommentFeatures,
		PaymentFeatures,
		SubscriptionFeatures,
		PresentationFeatures,
		LessonFeatures,
		ShopFeatures,
	}

	total := 0
	for _, group := range groups {
		total += len(group)
		for _, f := range group {
			assert.True(t, catalog.Contains(f), "catalog should contain %s", f)
		}
	}
	assert.Equal(t, total, catalog.Len())
}

func TestCatalogDoesNotContainUnknown(t *testing.T) {
	catalog := DefaultCatalog()

	assert.False(t, catalog.Contains("read:everything"))
	assert.False(t, catalog.Contains("read:subscription")) // unscoped base is not a member
	assert.False(t, catalog.Contains(""))
}

func TestAnonymousAndDefaultGrantsAreCatalogMembers(t *testing.T) {
	// Catalog closure covers the built-in grant lists too.
	catalog := DefaultCatalog()
	for _, f := range AnonymousFeatures {
		assert.True(t, catalog.Contains(f), "anonymous feature %s must be in catalog", f)
	}
	for _, f := range DefaultMemberFeatures {
		assert.True(t, catalog.Contains(f), "default member feature %s must be in catalog", f)
	}
}

func TestCatalogValidate(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("all known", func(t *testing.T) {
		features, err := catalog.Validate([]string{"read:user:self", "create:presentation"})
		require.NoError(t, err)
		assert.Equal(t, []Feature{FeatureReadUserSelf, FeatureCreatePresentation}, features)
	})

	t.Run("unknown string is rejected at assignment time", func(t *testing.T) {
		_, err := catalog.Validate([]string{"read:user:self", "become:admin"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "become:admin")
	})

	t.Run("empty list is valid", func(t *testing.T) {
		features, err := catalog.Validate(nil)
		require.NoError(t, err)
		assert.Empty(t, features)
	})
}

func TestCatalogParseKnown(t *testing.T) {
	catalog := DefaultCatalog()

	known, unknown := catalog.ParseKnown([]string{"read:user:self", "stale:feature", "read:lesson"})
	assert.Equal(t, []Feature{FeatureReadUserSelf, FeatureReadLesson}, known)
	assert.Equal(t, []string{"stale:feature"}, unknown)
}

func TestCatalogMustContainPanicsOnUnknown(t *testing.T) {
	catalog := DefaultCatalog()

	assert.NotPanics(t, func() {
		catalog.MustContain(FeatureReadLesson, FeatureCreateComment)
	})

	assert.PanicsWithValue(t,
		"authz: feature read:secrets is not in the catalog",
		func() { catalog.MustContain("read:secrets") },
	)
}

func TestCatalogFeaturesSorted(t *testing.T) {
	catalog := NewCatalog([]Feature{"b:x", "a:x", "c:x"})
	assert.Equal(t, []Feature{"a:x", "b:x", "c:x"}, catalog.Features())
}
