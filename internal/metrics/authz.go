package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ovationhq/ovation/internal/errors"
)

// AuthzMetrics records authorization decisions. The guard calls it once per
// evaluated feature, allow and deny alike.
type AuthzMetrics struct {
	decisionCounter metric.Int64Counter
}

// NewAuthzMetrics creates the decision counter on the given meter provider.
func NewAuthzMetrics(meterProvider metric.MeterProvider, namespace string) (*AuthzMetrics, error) {
	meter := meterProvider.Meter(namespace)

	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_authz_decisions_total", namespace),
		metric.WithDescription("Total number of authorization decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create authz decision counter")
	}

	return &AuthzMetrics{decisionCounter: decisionCounter}, nil
}

// RecordDecision increments the decision counter with feature, outcome, and
// anonymous labels. Feature strings come from the closed catalog, so the
// label cardinality is bounded.
func (a *AuthzMetrics) RecordDecision(ctx context.Context, feature string, allowed bool, anonymous bool) {
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}

	a.decisionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("feature", feature),
			attribute.String("outcome", outcome),
			attribute.Bool("anonymous", anonymous),
		),
	)
}
