package chain

import (
	"time"

	"brane_auction/contract"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	mints    prometheus.Counter
	payouts  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brane_contract_calls_total",
			Help: "Contract calls by action and result kind",
		}, []string{"action", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brane_contract_call_seconds",
			Help:    "Contract call execution duration distribution in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 1},
		}, []string{"action"}),
		mints: f.NewCounter(prometheus.CounterOpts{
			Name: "brane_tokens_minted_total",
			Help: "Tokens minted through settlement",
		}),
		payouts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "brane_payout_amount_total",
			Help: "Base units transferred out of contract custody by asset",
		}, []string{"asset"}),
	}
}

func (m *metrics) observe(action string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
		if k := contract.KindOf(err); k != 0 {
			result = k.String()
		}
	}
	m.calls.WithLabelValues(action, result).Inc()
	m.duration.WithLabelValues(action).Observe(elapsed.Seconds())
}
