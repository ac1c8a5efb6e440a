package backtest

import (
	"time"

	"mlft/internal/model"
	"mlft/internal/model/enum"
	"mlft/internal/obs"
	"mlft/internal/state"
)

// Result is the audit trail of a finished run.
type Result struct {
	Strategy  string
	MatchAlgo enum.MatchAlgorithm
	LastTime  time.Time
	Orders    []model.Order
	Trades    []model.Trade
	Positions []state.Position
	Snapshot  state.Snapshot
	Stats     obs.Snapshot
}

// Unresolved returns orders that still hold pending quantity. Their capacity
// stays reserved for the rest of the run.
func (r Result) Unresolved() []model.Order {
	var orders []model.Order
	for _, o := range r.Orders {
		if o.IsPending() {
			orders = append(orders, o)
		}
	}
	return orders
}

// RealProfit sums realized profit over all positions.
func (r Result) RealProfit() float64 {
	total := 0.0
	for _, p := range r.Positions {
		total += p.RealProfit
	}
	return total
}

// Fee sums fees over all positions.
func (r Result) Fee() float64 {
	total := 0.0
	for _, p := range r.Positions {
		total += p.Fee
	}
	return total
}
