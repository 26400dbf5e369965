/*
metrics.go - Prometheus instrumentation for the API layer

PURPOSE:
  Counts the lifecycle events operators actually watch: how decisions route,
  how often discretionary budget is spent or refunded, and how often members
  hit their cap. Exposed on GET /metrics via promhttp.
*/
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "decisions_scored_total",
		Help:      "Decisions scored, labeled by routing outcome.",
	}, []string{"routed_to"})

	discretionaryOverrides = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "discretionary_overrides_total",
		Help:      "Sub-threshold decisions scheduled by spending discretionary budget.",
	})

	discretionaryRefunds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "discretionary_refunds_total",
		Help:      "Discretionary debits refunded by unscheduling.",
	})

	budgetExhaustions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hearth",
		Name:      "budget_exhaustions_total",
		Help:      "Override attempts rejected because the member's allowance was spent.",
	})
)
