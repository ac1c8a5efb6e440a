package model

import (
	"time"

	"mlft/internal/model/enum"
)

// OrderID addresses an order in the engine's order arena.
type OrderID int

// Order is the mutable lifecycle record of a submitted order.
//
// PendQty + ExecQty + CxlQty == OrigQty holds at every point in time. Orders are
// never removed; they are kept for the final report.
type Order struct {
	ID           OrderID
	InstrumentID InstrumentID
	Direction    enum.Direction
	TimeInForce  enum.TimeInForce
	LimitPx      *float64
	OrigQty      float64
	PendQty      float64
	ExecQty      float64
	CxlQty       float64
	InsertTime   time.Time
	LastTime     time.Time
}

// NewOrder creates a pending order with its whole quantity outstanding.
func NewOrder(id OrderID, ins InstrumentID, dir enum.Direction, tif enum.TimeInForce, limitPx *float64, qty float64, insertTime time.Time) Order {
	if limitPx != nil {
		px := *limitPx
		limitPx = &px
	}

	return Order{
		ID:           id,
		InstrumentID: ins,
		Direction:    dir,
		TimeInForce:  tif,
		LimitPx:      limitPx,
		OrigQty:      qty,
		PendQty:      qty,
		InsertTime:   insertTime,
	}
}

// IsPending reports whether the order still has outstanding quantity.
func (o Order) IsPending() bool {
	return o.PendQty > 0
}

// Execute moves qty from pending to executed.
func (o *Order) Execute(t time.Time, qty float64) {
	o.LastTime = t
	o.PendQty -= qty
	o.ExecQty += qty
}

// Cancel releases the outstanding quantity and returns it.
func (o *Order) Cancel(t time.Time) float64 {
	remaining := o.PendQty
	o.LastTime = t
	o.CxlQty += remaining
	o.PendQty = 0
	return remaining
}

func (o Order) Status() enum.OrderStatus {
	switch {
	case o.PendQty > 0 && o.ExecQty > 0:
		return enum.OrderStatusPartiallyFilled
	case o.PendQty > 0:
		return enum.OrderStatusPending
	case o.CxlQty > 0:
		return enum.OrderStatusCancelled
	default:
		return enum.OrderStatusFilled
	}
}
