package redisbus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	publishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redisbus_published_total",
			Help: "Events published to the redis bridge by result",
		},
		[]string{"result"},
	)

	receivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redisbus_received_total",
			Help: "Events received from the redis bridge by outcome (forwarded, own, invalid, failed)",
		},
		[]string{"outcome"},
	)
)
