// Package metrics exposes the commission pipeline's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SalesConfirmed counts successful PENDING->CONFIRMED transitions.
	SalesConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gmcruise_sales_confirmed_total",
		Help: "Sales confirmed (ledger generation trigger).",
	})

	// SalesRejected counts successful PENDING->REJECTED transitions.
	SalesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gmcruise_sales_rejected_total",
		Help: "Sales rejected by the back office.",
	})

	// LedgerEntriesCreated counts persisted ledger entries, by entry type.
	LedgerEntriesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gmcruise_ledger_entries_created_total",
		Help: "Commission ledger entries written.",
	}, []string{"type"})

	// SettlementsApproved counts settlement periods approved.
	SettlementsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gmcruise_settlements_approved_total",
		Help: "Monthly settlements approved.",
	})

	// WebhookDeliveries counts webhook deliveries by outcome (created, replay, error).
	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gmcruise_webhook_deliveries_total",
		Help: "Payment webhook deliveries by outcome.",
	}, []string{"outcome"})
)
