// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat broadcaster metrics
var (
	// ChatActiveRooms tracks the number of rooms created so far
	ChatActiveRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_active_rooms",
			Help: "Number of chat rooms in the registry",
		},
	)

	// ChatConnectedClients tracks connected WebSocket clients across all rooms
	ChatConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_connected_clients",
			Help: "Number of connected WebSocket clients across all rooms",
		},
	)

	// ChatMessagesTotal counts messages appended to room histories
	ChatMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total chat messages received",
		},
	)

	// ChatInboundEventsTotal counts inbound frames by event tag ("unknown" for protocol violations)
	ChatInboundEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_inbound_events_total",
			Help: "Total inbound WebSocket events by event tag",
		},
		[]string{"event_tag"},
	)

	// ChatSlowClientsEvicted counts clients dropped because their send buffer filled up
	ChatSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_slow_clients_evicted_total",
			Help: "Total clients evicted because their send buffer was full",
		},
	)

	// WebSocketSendFailures counts failed writes to client connections
	WebSocketSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_send_failures_total",
			Help: "Total failed WebSocket writes",
		},
	)
)
