package node

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Node metrics
var (
	mHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "checkpoint",
		Subsystem: "node",
		Name:      "height",
		Help:      "Current logical block height",
	})
	mTxs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkpoint",
		Subsystem: "node",
		Name:      "transactions",
		Help:      "Number of submitted transactions by result",
	}, []string{"result"})
)
