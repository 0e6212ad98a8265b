// Package metrics exposes the client's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReconnectAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_reconnect_attempts_total",
		Help: "Reconnection attempts scheduled by the connection manager.",
	})

	MessagesDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_messages_dispatched_total",
		Help: "Inbound channel messages routed, by event type.",
	}, []string{"event"})

	MalformedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_malformed_messages_total",
		Help: "Inbound messages dropped because they could not be parsed.",
	})

	StaleUpdatesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_stale_updates_dropped_total",
		Help: "Updates discarded because a newer one was already applied.",
	})

	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_bets_placed_total",
		Help: "Wagers accepted by the platform.",
	})

	BetsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_bets_rejected_total",
		Help: "Wager submissions rejected by the platform.",
	})

	ConnectionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportsbook_connection_state",
		Help: "Current channel state: 0 disconnected, 1 connecting, 2 connected, 3 reconnecting.",
	})
)
