package state

import (
	"math"

	"mlft/internal/catalog"
	"mlft/internal/model"
	"mlft/internal/model/enum"
)

// Position is the per-instrument ledger entry under weighted-average cost
// accounting.
//
// HoldQty is signed (positive = long). HoldMV is the cost basis of the open
// position and carries the same sign as HoldQty, so HoldMV/HoldQty is the
// average entry price. HoldMV is 0 whenever HoldQty is 0.
type Position struct {
	Instrument  model.InstrumentInfo
	MaxHoldQty  float64
	HoldQty     float64
	HoldMV      float64
	PendingBuy  float64
	PendingSell float64
	RealProfit  float64
	Fee         float64
}

// Fill is the accounting outcome of applying one fill.
type Fill struct {
	CloseQty float64
	OpenQty  float64
	Profit   float64
	Fee      float64
}

// NewPosition creates a flat position for a catalog instrument.
func NewPosition(ins catalog.Instrument) Position {
	return Position{
		Instrument: ins.Info,
		MaxHoldQty: ins.MaxHoldQty,
	}
}

// AvgCost returns the average entry price, NaN when flat.
func (p Position) AvgCost() float64 {
	if p.HoldQty == 0 {
		return math.NaN()
	}
	return p.HoldMV / p.HoldQty
}

// CostBasis returns the unsigned market value of the open position. Read it
// wherever the unsigned hold_mv of the order book accounting is meant; HoldMV
// itself is signed.
func (p Position) CostBasis() float64 {
	return math.Abs(p.HoldMV)
}

// Pending returns the unresolved order quantity for dir.
func (p Position) Pending(dir enum.Direction) float64 {
	switch dir {
	case enum.DirectionBuy:
		return p.PendingBuy
	case enum.DirectionSell:
		return p.PendingSell
	default:
		return 0
	}
}

// Capacity returns the quantity that may still be submitted in dir without
// breaching MaxHoldQty, counting pending orders as if they were filled.
func (p Position) Capacity(dir enum.Direction) float64 {
	switch dir {
	case enum.DirectionBuy:
		return p.MaxHoldQty - p.HoldQty - p.PendingBuy
	case enum.DirectionSell:
		return p.MaxHoldQty + p.HoldQty - p.PendingSell
	default:
		return 0
	}
}

// AddPending adjusts the pending quantity of dir by delta.
func (p *Position) AddPending(dir enum.Direction, delta float64) {
	switch dir {
	case enum.DirectionBuy:
		p.PendingBuy += delta
	case enum.DirectionSell:
		p.PendingSell += delta
	}
}

// ApplyFill books a fill of qty at px in dir. Any part of the fill that
// offsets the existing position realizes profit against the average cost;
// the rest opens (or extends) a position in dir at px. The filled quantity is
// released from the pending quantity of dir.
func (p *Position) ApplyFill(dir enum.Direction, qty, px float64) Fill {
	sign := dir.Sign()
	var fill Fill

	if p.HoldQty*sign < 0 {
		held := math.Abs(p.HoldQty)
		fill.CloseQty = math.Min(held, qty)
		avg := p.HoldMV / p.HoldQty
		// closing a long sells at px, closing a short buys at px
		fill.Profit = (px - avg) * fill.CloseQty * -sign

		if fill.CloseQty == held {
			p.HoldQty = 0
			p.HoldMV = 0
		} else {
			p.HoldMV *= 1 - fill.CloseQty/held
			p.HoldQty += sign * fill.CloseQty
		}
	}

	fill.OpenQty = qty - fill.CloseQty
	if fill.OpenQty > 0 {
		p.HoldQty += sign * fill.OpenQty
		p.HoldMV += sign * fill.OpenQty * px
	}

	fill.Fee = p.Instrument.Fee(qty, px)
	p.Fee += fill.Fee
	p.RealProfit += fill.Profit
	p.AddPending(dir, -qty)
	return fill
}
