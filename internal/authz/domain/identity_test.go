package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDenyByDefault(t *testing.T) {
	// An identity without a feature is denied that feature, for every
	// feature in the catalog.
	identity := NewIdentity(uuid.Must(uuid.NewV7()), "maria", nil)

	for _, f := range DefaultCatalog().Features() {
		assert.False(t, identity.Can(f), "empty identity must be denied %s", f)
	}
}

func TestCanIsPureMembership(t *testing.T) {
	identity := NewIdentity(uuid.Must(uuid.NewV7()), "maria", []Feature{
		FeatureReadSubscriptionSelf,
		FeatureReadLesson,
	})

	assert.True(t, identity.Can(FeatureReadSubscriptionSelf))
	assert.True(t, identity.Can(FeatureReadLesson))
	assert.False(t, identity.Can(FeatureReadSubscriptionOther))
	assert.False(t, identity.Can(FeatureDeleteUser))
}

func TestCanAllIsConjunctive(t *testing.T) {
	identity := NewIdentity(uuid.Must(uuid.NewV7()), "staff", []Feature{
		FeatureCreatePresentation,
		FeatureUpdatePresentation,
	})

	assert.True(t, identity.CanAll(FeatureCreatePresentation, FeatureUpdatePresentation))
	assert.False(t, identity.CanAll(FeatureCreatePresentation, FeatureDeletePresentation))
	assert.True(t, identity.CanAll(), "empty requirement list holds vacuously")
}

func TestAnonymousIdentity(t *testing.T) {
	anon := Anonymous()

	assert.True(t, anon.IsAnonymous())
	assert.Equal(t, uuid.Nil, anon.ID)

	// Anonymous requests can reach public-facing operations only.
	assert.True(t, anon.Can(FeatureCreateSession))
	assert.True(t, anon.Can(FeatureCreateUser))
	assert.False(t, anon.Can(FeatureReadUserSelf))
	assert.False(t, anon.Can(FeatureReadSubscriptionOther))
}

func TestIdentityFeaturesSorted(t *testing.T) {
	identity := NewIdentity(uuid.Must(uuid.NewV7()), "maria", []Feature{
		FeatureReadLesson,
		FeatureCreateComment,
		FeatureReadComment,
	})

	assert.Equal(t,
		[]Feature{FeatureCreateComment, FeatureReadComment, FeatureReadLesson},
		identity.Features(),
	)
}

func TestIdentityIsImmutableAfterConstruction(t *testing.T) {
	granted := []Feature{FeatureReadLesson}
	identity := NewIdentity(uuid.Must(uuid.NewV7()), "maria", granted)

	// Mutating the caller's slice must not change the identity's set.
	granted[0] = FeatureDeleteUser
	assert.True(t, identity.Can(FeatureReadLesson))
	assert.False(t, identity.Can(FeatureDeleteUser))
}
