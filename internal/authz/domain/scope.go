package domain

import "github.com/google/uuid"

// Resource is the minimal shape the engine needs from a handler-supplied
// resource instance: the id of the user that owns it. Ownership is the only
// thing the engine ever reads from a resource.
type Resource interface {
	OwnerID() uuid.UUID
}

// Owns reports whether the identity owns the resource. Anonymous identities
// own nothing.
func (i Identity) Owns(r Resource) bool {
	return !i.IsAnonymous() && i.ID == r.OwnerID()
}

// ResolveScope picks the scoped variant of an unscoped verb:resource feature
// for a concrete resource instance: ":self" when the identity owns it,
// ":other" otherwise. Callers resolve resource existence (not found) before
// calling; scope resolution never substitutes for an existence check.
func (i Identity) ResolveScope(base Feature, r Resource) Feature {
	if i.Owns(r) {
		return base.WithScope(ScopeSelf)
	}
	return base.WithScope(ScopeOther)
}

// CanOn resolves the scoped variant of base for the resource and evaluates
// it. The scoped feature is returned alongside the decision so callers can
// use it for projection and for naming the feature in a deny.
//
// Bulk listings have no resource to resolve against: they are authorized by
// checking the ":other" variant directly, never by ":self".
func (i Identity) CanOn(base Feature, r Resource) (Feature, bool) {
	scoped := i.ResolveScope(base, r)
	return scoped, i.Can(scoped)
}
