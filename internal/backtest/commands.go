package backtest

import (
	"time"

	"mlft/internal/bus"
	"mlft/internal/model"
	"mlft/internal/model/enum"
	"mlft/internal/risk"
	"mlft/internal/state"
)

func (e *Engine) Positions() []state.Position {
	return e.ledger.Positions()
}

func (e *Engine) FindPosition(id model.InstrumentID) (state.Position, bool) {
	return e.ledger.Position(id)
}

func (e *Engine) FindOrder(id model.OrderID) (model.Order, bool) {
	if id < 0 || int(id) >= len(e.orders) {
		return model.Order{}, false
	}
	return e.orders[id], true
}

func (e *Engine) Now() time.Time {
	return e.now
}

func (e *Engine) SubmitOrder(id model.InstrumentID, dir enum.Direction, qty float64, tif enum.TimeInForce, limitPx *float64) (model.Order, bool) {
	if !dir.IsAvailable() || !tif.IsAvailable() {
		e.metrics.IncReject(risk.ReasonInvalidOrder)
		return model.Order{}, false
	}

	pos, _ := e.ledger.Get(id)
	decision := e.gate.Evaluate(pos, dir, qty)
	if !decision.Allowed() {
		e.metrics.IncReject(decision.Reason)
		return model.Order{}, false
	}

	order := model.NewOrder(model.OrderID(len(e.orders)), id, dir, tif, limitPx, decision.Qty, e.now)
	e.orders = append(e.orders, order)
	pos.AddPending(dir, decision.Qty)
	e.queue.Publish(bus.Event{Kind: enum.EventFill, OrderID: order.ID})
	e.metrics.IncSubmitted(decision.Clamped())

	return order, true
}

func (e *Engine) CancelOrder(id model.OrderID) bool {
	if id < 0 || int(id) >= len(e.orders) {
		return false
	}

	order := &e.orders[id]
	if !order.IsPending() || order.TimeInForce == enum.TimeInForceIOC {
		return false
	}

	e.queue.Publish(bus.Event{Kind: enum.EventCancel, OrderID: id})
	e.metrics.IncCancelRequest()
	return true
}
