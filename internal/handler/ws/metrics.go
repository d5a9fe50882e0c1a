package ws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connections_active",
		Help: "Currently connected realtime clients",
	})

	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_messages_total",
		Help: "Realtime frames by direction and event",
	}, []string{"direction", "event"}) // direction: in|out

	droppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_messages_dropped_total",
		Help: "Realtime frames not delivered, by reason",
	}, []string{"reason"}) // reason: slow_client|rate_limited
)
