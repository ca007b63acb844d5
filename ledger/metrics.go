package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thetatoken/checkpoint/common/result"
)

const (
	kindBounded   = "bounded"
	kindUnbounded = "unbounded"
)

// Ledger metrics
var (
	mSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkpoint",
		Subsystem: "ledger",
		Name:      "submissions",
		Help:      "Number of checkpoint submissions by kind and result",
	}, []string{"kind", "result"})
	mLastCommitHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "checkpoint",
		Subsystem: "ledger",
		Name:      "last_commit_height",
		Help:      "Block height of the latest accepted checkpoint",
	}, []string{"kind"})
)

func (ledger *Ledger) accept(kind string, height uint64) {
	mSubmissions.WithLabelValues(kind, result.CodeOK.String()).Inc()
	mLastCommitHeight.WithLabelValues(kind).Set(float64(height))
}

func (ledger *Ledger) reject(kind string, res result.Result) result.Result {
	mSubmissions.WithLabelValues(kind, res.Code.String()).Inc()
	return res
}
