package obs

import (
	"sync/atomic"
	"time"

	"mlft/internal/risk"
)

// Metrics collects run counters and latency stats. All methods are safe on a
// nil receiver.
type Metrics struct {
	bars      uint64
	submitted uint64
	clamped   uint64
	cancelReq uint64
	fills     uint64
	cancels   uint64
	skipped   uint64
	dropped   uint64
	conflicts uint64

	rejectCounts [risk.ReasonCount]uint64

	barLatency      LatencyStats
	strategyLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	Bars            uint64
	Submitted       uint64
	Clamped         uint64
	CancelRequests  uint64
	Fills           uint64
	Cancels         uint64
	Skipped         uint64
	Dropped         uint64
	Conflicts       uint64
	Rejects         map[risk.Reason]uint64
	BarLatency      LatencySnapshot
	StrategyLatency LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) IncBar() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.bars, 1)
}

// IncSubmitted records an accepted submission.
func (m *Metrics) IncSubmitted(clamped bool) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.submitted, 1)
	if clamped {
		atomic.AddUint64(&m.clamped, 1)
	}
}

// IncReject records a rejected submission.
func (m *Metrics) IncReject(reason risk.Reason) {
	if m == nil {
		return
	}
	idx := int(reason)
	if idx >= 0 && idx < len(m.rejectCounts) {
		atomic.AddUint64(&m.rejectCounts[idx], 1)
	}
}

// IncCancelRequest records an accepted cancel request.
func (m *Metrics) IncCancelRequest() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.cancelReq, 1)
}

func (m *Metrics) IncFill() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.fills, 1)
}

func (m *Metrics) IncCancel() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.cancels, 1)
}

// IncSkipped records an event whose order was already resolved.
func (m *Metrics) IncSkipped() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.skipped, 1)
}

// AddDropped records events cleared from the queue with their order still pending.
func (m *Metrics) AddDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	atomic.AddUint64(&m.dropped, uint64(n))
}

// IncConflict records an order with both fill and cancel events in one pass.
func (m *Metrics) IncConflict() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.conflicts, 1)
}

// ObserveBar measures processing time of one bar.
func (m *Metrics) ObserveBar(d time.Duration) {
	if m == nil {
		return
	}
	m.barLatency.Observe(d)
}

// ObserveStrategy measures time spent inside a strategy callback.
func (m *Metrics) ObserveStrategy(d time.Duration) {
	if m == nil {
		return
	}
	m.strategyLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	rejects := make(map[risk.Reason]uint64)
	for i := range m.rejectCounts {
		if v := atomic.LoadUint64(&m.rejectCounts[i]); v > 0 {
			rejects[risk.Reason(i)] = v
		}
	}
	return Snapshot{
		Bars:            atomic.LoadUint64(&m.bars),
		Submitted:       atomic.LoadUint64(&m.submitted),
		Clamped:         atomic.LoadUint64(&m.clamped),
		CancelRequests:  atomic.LoadUint64(&m.cancelReq),
		Fills:           atomic.LoadUint64(&m.fills),
		Cancels:         atomic.LoadUint64(&m.cancels),
		Skipped:         atomic.LoadUint64(&m.skipped),
		Dropped:         atomic.LoadUint64(&m.dropped),
		Conflicts:       atomic.LoadUint64(&m.conflicts),
		Rejects:         rejects,
		BarLatency:      m.barLatency.Snapshot(),
		StrategyLatency: m.strategyLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
