// Package metrics defines all custom Prometheus metrics for the plot
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// QuoteRequestsCreatedTotal counts newly created quote requests.
// Label:
//   - project_type: e.g. "residential", "commercial"
var QuoteRequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_requests_created_total",
		Help:      "Total number of quote requests created, by project type.",
	},
	[]string{"project_type"},
)

// QuotesSubmittedTotal counts quotes submitted by builders.
var QuotesSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_submitted_total",
		Help:      "Total number of quotes submitted by builders.",
	},
)

// QuoteDecisionsTotal counts customer decisions on quotes.
// Label:
//   - decision: "accepted" or "rejected"
var QuoteDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quote_decisions_total",
		Help:      "Total number of quote decisions, labelled by outcome.",
	},
	[]string{"decision"},
)

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - kind: "login", "register" or "refresh"
//   - result: "ok" or "failed"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// AdvisorRequestsTotal counts budget advisor consultations.
// Label:
//   - result: "ok", "unavailable", "bad_reply" or "error"
var AdvisorRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advisor_requests_total",
		Help:      "Total number of budget advisor consultations, by result.",
	},
	[]string{"result"},
)

// AdvisorDuration measures how long a single advisor consultation takes,
// model round-trip included.
var AdvisorDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "advisor_duration_seconds",
		Help:      "Duration of budget advisor consultations end-to-end.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30},
	},
)
