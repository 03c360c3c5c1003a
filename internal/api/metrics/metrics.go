// Package metrics defines the custom Prometheus metrics of the recruit mailer.
// All collectors register with the default registry through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recruit_mailer"

// ── Selection metrics ─────────────────────────────────────────────────────────

// SelectionsSavedTotal counts selection writes.
// Labels:
//   - op: "save", "toggle", "bulk" or "reorder"
//   - result: "ok", "invalid", "conflict" or "error"
var SelectionsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "selections_saved_total",
		Help:      "Total number of recipient selection writes, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Email metrics ─────────────────────────────────────────────────────────────

// EmailsDispatchedTotal counts send attempts.
// Labels:
//   - recipient: "client", "internal" or "superiors"
//   - result: "sent", "invalid", "auth", "conflict" or "error"
var EmailsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_dispatched_total",
		Help:      "Total number of email send attempts, by recipient type and result.",
	},
	[]string{"recipient", "result"},
)

// ClipboardCopiesTotal counts copy requests by the mode actually used.
var ClipboardCopiesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clipboard_copies_total",
		Help:      "Total number of clipboard copies, by mode (html/text/none).",
	},
	[]string{"mode"},
)

// EmailComposeDuration measures preview rendering including the selection lookup.
var EmailComposeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_compose_duration_seconds",
		Help:      "Duration of email generation for previews.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	},
	[]string{"recipient"},
)

// ── Mail account metrics ──────────────────────────────────────────────────────

// MailAuthFlowsTotal counts authorization flows by outcome.
var MailAuthFlowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_auth_flows_total",
		Help:      "Total number of mail authorization callbacks, by outcome (connected/denied/rejected).",
	},
	[]string{"outcome"},
)
