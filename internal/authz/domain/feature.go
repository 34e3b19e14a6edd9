// Package domain implements the platform authorization engine: the closed
// feature catalog, per-request identities, the policy decision point, scope
// resolution, and capability-keyed field projection.
//
// A feature is a permission string of the form "verb:resource[:scope]"
// granted to an identity. Features are opaque to the decision procedure:
// authorization is set membership against the identity's granted set, with
// deny as the default for anything absent.
package domain

import (
	"sort"
	"strings"
)

// Feature is a permission string of the form "verb:resource[:scope]".
type Feature string

// Scope values recognized in the third feature segment. Domain-specific
// sub-actions (e.g. "confirm_paid") also occupy this segment but carry no
// ownership semantics.
const (
	ScopeSelf  = "self"
	ScopeOther = "other"
)

// Verb returns the first segment of the feature string.
func (f Feature) Verb() string {
	return f.segment(0)
}

// Resource returns the second segment of the feature string.
func (f Feature) Resource() string {
	return f.segment(1)
}

// Scope returns the third segment of the feature string, or "" when the
// feature is unscoped.
func (f Feature) Scope() string {
	return f.segment(2)
}

func (f Feature) segment(i int) string {
	parts := strings.Split(string(f), ":")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// WithScope returns the verb:resource pair of f qualified with the given
// scope. An existing scope segment is replaced.
func (f Feature) WithScope(scope string) Feature {
	return Feature(f.Verb() + ":" + f.Resource() + ":" + scope)
}

// The closed feature vocabulary, grouped by subsystem. Every feature a route
// guard declares, a projection schema registers, or a grant assigns must
// appear in exactly one of these groups.
const (
	// User accounts.
	FeatureCreateUser         Feature = "create:user"
	FeatureReadUserSelf       Feature = "read:user:self"
	FeatureReadUserOther      Feature = "read:user:other"
	FeatureUpdateUserSelf     Feature = "update:user:self"
	FeatureUpdateUserOther    Feature = "update:user:other"
	FeatureUpdateUserFeatures Feature = "update:user:features"
	FeatureDeleteUser         Feature = "delete:user"

	// Login sessions.
	FeatureCreateSession Feature = "create:session"
	FeatureDeleteSession Feature = "delete:session"

	// Comments.
	FeatureCreateComment      Feature = "create:comment"
	FeatureReadComment        Feature = "read:comment"
	FeatureDeleteCommentSelf  Feature = "delete:comment:self"
	FeatureDeleteCommentOther Feature = "delete:comment:other"

	// Payments.
	FeatureReadPaymentSelf          Feature = "read:payment:self"
	FeatureReadPaymentOther         Feature = "read:payment:other"
	FeatureUpdatePaymentConfirmPaid Feature = "update:payment:confirm_paid"

	// Subscriptions (memberships).
	FeatureCreateSubscription    Feature = "create:subscription"
	FeatureReadSubscriptionSelf  Feature = "read:subscription:self"
	FeatureReadSubscriptionOther Feature = "read:subscription:other"
	FeatureUpdateSubscription    Feature = "update:subscription"
	FeatureDeleteSubscription    Feature = "delete:subscription"

	// Stage presentations.
	FeatureCreatePresentation Feature = "create:presentation"
	FeatureReadPresentation   Feature = "read:presentation"
	FeatureUpdatePresentation Feature = "update:presentation"
	FeatureDeletePresentation Feature = "delete:presentation"

	// Video lessons.
	FeatureCreateLesson Feature = "create:lesson"
	FeatureReadLesson   Feature = "read:lesson"
	FeatureUpdateLesson Feature = "update:lesson"
	FeatureDeleteLesson Feature = "delete:lesson"

	// Shop catalog.
	FeatureCreateProduct Feature = "create:product"
	FeatureReadProduct   Feature = "read:product"
	FeatureUpdateProduct Feature = "update:product"
	FeatureDeleteProduct Feature = "delete:product"
)

// Feature groups, one per subsystem.
var (
	UserFeatures = []Feature{
		FeatureCreateUser,
		FeatureReadUserSelf,
		FeatureReadUserOther,
		FeatureUpdateUserSelf,
		FeatureUpdateUserOther,
		FeatureUpdateUserFeatures,
		FeatureDeleteUser,
	}

	SessionFeatures = []Feature{
		FeatureCreateSession,
		FeatureDeleteSession,
	}

	CommentFeatures = []Feature{
		FeatureCreateComment,
		FeatureReadComment,
		FeatureDeleteCommentSelf,
		FeatureDeleteCommentOther,
	}

	PaymentFeatures = []Feature{
		FeatureReadPaymentSelf,
		FeatureReadPaymentOther,
		FeatureUpdatePaymentConfirmPaid,
	}

	SubscriptionFeatures = []Feature{
		FeatureCreateSubscription,
		FeatureReadSubscriptionSelf,
		FeatureReadSubscriptionOther,
		FeatureUpdateSubscription,
		FeatureDeleteSubscription,
	}

	PresentationFeatures = []Feature{
		FeatureCreatePresentation,
		FeatureReadPresentation,
		FeatureUpdatePresentation,
		FeatureDeletePresentation,
	}

	LessonFeatures = []Feature{
		FeatureCreateLesson,
		FeatureReadLesson,
		FeatureUpdateLesson,
		FeatureDeleteLesson,
	}

	ShopFeatures = []Feature{
		FeatureCreateProduct,
		FeatureReadProduct,
		FeatureUpdateProduct,
		FeatureDeleteProduct,
	}
)

// AnonymousFeatures is the set granted to requests with no authenticated
// identity: enough to sign up and log in, nothing else.
var AnonymousFeatures = []Feature{
	FeatureCreateUser,
	FeatureCreateSession,
}

// DefaultMemberFeatures is the baseline granted to newly registered users:
// self-scoped access to their own records plus read access to the public
// catalog content.
var DefaultMemberFeatures = []Feature{
	FeatureReadUserSelf,
	FeatureUpdateUserSelf,
	FeatureCreateSession,
	FeatureDeleteSession,
	FeatureReadSubscriptionSelf,
	FeatureReadPaymentSelf,
	FeatureCreateComment,
	FeatureReadComment,
	FeatureDeleteCommentSelf,
	FeatureReadPresentation,
	FeatureReadLesson,
	FeatureReadProduct,
}

// Catalog is the immutable, process-wide set of recognized features. It is
// built once at startup; there is no runtime registration path.
type Catalog struct {
	members map[Feature]struct{}
}

// NewCatalog builds a catalog from the given feature groups.
func NewCatalog(groups ...[]Feature) *Catalog {
	members := make(map[Feature]struct{})
	for _, group := range groups {
		for _, f := range group {
			members[f] = struct{}{}
		}
	}
	return &Catalog{members: members}
}

// DefaultCatalog builds the full platform catalog from every subsystem group.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		UserFeatures,
		SessionFeatures,
		CommentFeatures,
		PaymentFeatures,
		SubscriptionFeatures,
		PresentationFeatures,
		LessonFeatures,
		ShopFeatures,
	)
}

// Contains reports whether f is a recognized feature.
func (c *Catalog) Contains(f Feature) bool {
	_, ok := c.members[f]
	return ok
}

// MustContain panics if any of the given features is outside the catalog.
// Guard declarations and schema registrations call this at startup so a
// mistyped feature fails the process immediately instead of silently denying.
func (c *Catalog) MustContain(features ...Feature) {
	for _, f := range features {
		if !c.Contains(f) {
			panic("authz: feature " + string(f) + " is not in the catalog")
		}
	}
}

// Validate converts raw feature strings into catalog features. It fails on
// the first unknown string: assigning a feature outside the catalog is
// rejected at grant time, never deferred to decision time.
func (c *Catalog) Validate(raw []string) ([]Feature, error) {
	features := make([]Feature, 0, len(raw))
	for _, s := range raw {
		f := Feature(s)
		if !c.Contains(f) {
			return nil, ErrUnknownFeature(s)
		}
		features = append(features, f)
	}
	return features, nil
}

// ParseKnown converts raw feature strings into catalog features, separating
// out unknown strings instead of failing. Used when hydrating identities
// from storage: a stale string must never become a grantable feature.
func (c *Catalog) ParseKnown(raw []string) (known []Feature, unknown []string) {
	for _, s := range raw {
		f := Feature(s)
		if c.Contains(f) {
			known = append(known, f)
		} else {
			unknown = append(unknown, s)
		}
	}
	return known, unknown
}

// Features returns the sorted list of catalog members.
func (c *Catalog) Features() []Feature {
	features := make([]Feature, 0, len(c.members))
	for f := range c.members {
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	return features
}

// Len returns the number of catalog members.
func (c *Catalog) Len() int {
	return len(c.members)
}
