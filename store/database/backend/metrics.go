package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	driverLevelDB = "leveldb"
	driverBadger  = "badger"
)

// Database driver metrics
var (
	mDbOpen = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "checkpoint",
		Subsystem: "db",
		Name:      "open",
		Help:      "Number of open databases",
	}, []string{"driver"})
	mBatchWrite = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkpoint",
		Subsystem: "db",
		Name:      "batch_write",
		Help:      "Number of committed write batches",
	}, []string{"driver"})
)
