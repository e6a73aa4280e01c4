package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections tracks live websocket sessions.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_active_connections",
		Help: "Number of live websocket connections.",
	})

	// RelayedMessages counts frames fanned out by broadcast (one per room
	// delivery, not per member send).
	RelayedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_messages_total",
		Help: "Messages broadcast to rooms.",
	})

	// EvictedMembers counts members dropped after a failed send.
	EvictedMembers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_evicted_members_total",
		Help: "Members evicted because a send failed.",
	})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
