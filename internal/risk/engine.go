package risk

import (
	"math"

	"mlft/internal/model/enum"
	"mlft/internal/state"
)

// Config defines optional limits on top of the position cap. Zero values
// disable them.
type Config struct {
	KillSwitch  bool    `json:"killSwitch" yaml:"killSwitch"`
	MaxOrderQty float64 `json:"maxOrderQty" yaml:"maxOrderQty"`
}

// Reason explains why a submission was rejected.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonUnknownInstrument
	ReasonKillSwitch
	ReasonNoCapacity
	ReasonInvalidOrder
	reasonEnd
)

// ReasonCount is the number of distinct reasons, ReasonNone included.
const ReasonCount = int(reasonEnd)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonUnknownInstrument:
		return "UnknownInstrument"
	case ReasonKillSwitch:
		return "KillSwitch"
	case ReasonNoCapacity:
		return "NoCapacity"
	case ReasonInvalidOrder:
		return "InvalidOrder"
	default:
		return "Unknown"
	}
}

// Decision is the gate outcome. Qty is the accepted (possibly clamped)
// quantity and is only meaningful when Allowed.
type Decision struct {
	Reason    Reason
	Requested float64
	Capacity  float64
	Qty       float64
}

func (d Decision) Allowed() bool {
	return d.Reason == ReasonNone
}

// Clamped reports whether the accepted quantity is below the requested one.
func (d Decision) Clamped() bool {
	return d.Allowed() && d.Qty < d.Requested
}

// Engine gates order submissions against position capacity.
type Engine struct {
	cfg Config
}

// NewEngine creates a risk engine with static limits.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate clamps qty to what the position can still absorb in dir. A nil
// position means the instrument is not tracked.
func (e *Engine) Evaluate(pos *state.Position, dir enum.Direction, qty float64) Decision {
	decision := Decision{Requested: qty}

	if pos == nil {
		decision.Reason = ReasonUnknownInstrument
		return decision
	}

	if e.cfg.KillSwitch {
		decision.Reason = ReasonKillSwitch
		return decision
	}

	if e.cfg.MaxOrderQty > 0 && qty > e.cfg.MaxOrderQty {
		qty = e.cfg.MaxOrderQty
	}

	decision.Capacity = pos.Capacity(dir)
	qty = math.Min(qty, decision.Capacity)
	// also rejects NaN
	if !(qty > 0) {
		decision.Reason = ReasonNoCapacity
		return decision
	}

	decision.Qty = qty
	return decision
}
