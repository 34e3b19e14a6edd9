package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Identity is the authorization view of a requester: a user id (uuid.Nil
// for anonymous requests), a username, and the granted feature set. It is
// materialized once per request by the session layer and never mutated by
// authorization checks.
type Identity struct {
	ID       uuid.UUID
	Username string

	features map[Feature]struct{}
}

// NewIdentity builds an identity with the given granted features. Callers
// are expected to have validated the features against the catalog (grants
// go through Catalog.Validate, storage hydration through Catalog.ParseKnown).
func NewIdentity(id uuid.UUID, username string, features []Feature) Identity {
	set := make(map[Feature]struct{}, len(features))
	for _, f := range features {
		set[f] = struct{}{}
	}
	return Identity{ID: id, Username: username, features: set}
}

// Anonymous returns the identity used for requests without a valid session.
// It is a real value, never nil, and carries only the public features.
func Anonymous() Identity {
	return NewIdentity(uuid.Nil, "", AnonymousFeatures)
}

// IsAnonymous reports whether the identity has no authenticated user behind it.
func (i Identity) IsAnonymous() bool {
	return i.ID == uuid.Nil
}

// Can is the policy decision point: pure set membership over the granted
// features. Absence of the feature, including the empty identity, is a deny.
func (i Identity) Can(f Feature) bool {
	_, ok := i.features[f]
	return ok
}

// CanAll reports whether every given feature is granted. Route guards with
// multiple required features are conjunctive.
func (i Identity) CanAll(features ...Feature) bool {
	for _, f := range features {
		if !i.Can(f) {
			return false
		}
	}
	return true
}

// Features returns the sorted granted feature list.
func (i Identity) Features() []Feature {
	features := make([]Feature, 0, len(i.features))
	for f := range i.features {
		features = append(features, f)
	}
	sort.Slice(features, func(a, b int) bool { return features[a] < features[b] })
	return features
}
