package metrics

import (
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/prometheus/client_golang/prometheus"
)

// BidMetrics tracks bid lifecycle activity.
type BidMetrics struct {
	placed    prometheus.Counter
	decisions *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// NewBidMetrics registers bid counters on the provided registerer.
func NewBidMetrics(reg prometheus.Registerer) *BidMetrics {
	if reg == nil {
		return &BidMetrics{}
	}
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bids_placed_total",
		Help: "Bids accepted into the ledger.",
	})
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bid_transitions_total",
		Help: "Bid status transitions by resulting status.",
	}, []string{"status"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bids_rejected_total",
		Help: "Bid placements rejected by validation, by error code.",
	}, []string{"code"})
	reg.MustRegister(placed, decisions, rejected)
	return &BidMetrics{
		placed:    placed,
		decisions: decisions,
		rejected:  rejected,
	}
}

// IncPlaced counts a successfully recorded bid.
func (b *BidMetrics) IncPlaced() {
	if b == nil || b.placed == nil {
		return
	}
	b.placed.Inc()
}

// IncTransition counts a bid moving into the given status.
func (b *BidMetrics) IncTransition(status enums.BidStatus) {
	if b == nil || b.decisions == nil {
		return
	}
	b.decisions.WithLabelValues(string(status)).Inc()
}

// IncRejected counts a placement refused with the given error code.
func (b *BidMetrics) IncRejected(code string) {
	if b == nil || b.rejected == nil {
		return
	}
	b.rejected.WithLabelValues(normalizeLabel(code)).Inc()
}
