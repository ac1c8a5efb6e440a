package backtest

import (
	"mlft/internal/bus"
	"mlft/internal/model"
	"mlft/internal/model/enum"
	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

const (
	seenFill uint8 = 1 << iota
	seenCancel
)

// resolve gives every queued event its single resolution attempt. The queue
// is emptied whatever the outcome.
func (e *Engine) resolve() error {
	events := e.queue.Drain()
	if len(events) == 0 {
		return nil
	}
	if len(events) > 1 {
		e.flagConflicts(events)
	}

	for _, ev := range events {
		if ev.OrderID < 0 || int(ev.OrderID) >= len(e.orders) {
			return errors.Wrapf(exception.ErrNotFound, "order: %d", ev.OrderID)
		}
		if !e.orders[ev.OrderID].IsPending() {
			e.metrics.IncSkipped()
			continue
		}

		switch ev.Kind {
		case enum.EventCancel:
			e.cancel(ev.OrderID)
		case enum.EventFill:
			e.match(ev.OrderID)
		default:
			return errors.Wrapf(exception.ErrUnknownEventKind, "kind: %d, order: %d", ev.Kind, ev.OrderID)
		}
	}

	dropped := 0
	for _, ev := range events {
		if e.orders[ev.OrderID].IsPending() {
			dropped++
		}
	}
	e.metrics.AddDropped(dropped)
	return nil
}

// match applies the configured algorithm to a fill attempt.
func (e *Engine) match(id model.OrderID) {
	switch e.cfg.MatchAlgo {
	case enum.MatchAlwaysFilled:
		e.fill(id)
	case enum.MatchNoTrade:
		if e.orders[id].TimeInForce == enum.TimeInForceIOC {
			e.cancel(id)
		}
	}
}

// fill executes the whole pending quantity at the instrument's last price.
func (e *Engine) fill(id model.OrderID) {
	order := &e.orders[id]
	qty := order.PendQty
	px := e.lastPrice(order.InstrumentID)

	order.Execute(e.now, qty)
	pos, _ := e.ledger.Get(order.InstrumentID)
	fill := pos.ApplyFill(order.Direction, qty, px)

	trade := model.Trade{
		ID:           model.TradeID(len(e.trades)),
		OrderID:      order.ID,
		InstrumentID: order.InstrumentID,
		Direction:    order.Direction,
		Time:         e.now,
		Px:           px,
		Qty:          qty,
		Fee:          fill.Fee,
		Profit:       fill.Profit,
	}
	e.trades = append(e.trades, trade)
	e.metrics.IncFill()

	e.notify(func(s Strategy) { s.OnOrderExecuted(trade) })
}

// cancel releases the pending quantity of an order.
func (e *Engine) cancel(id model.OrderID) {
	order := &e.orders[id]
	released := order.Cancel(e.now)
	pos, _ := e.ledger.Get(order.InstrumentID)
	pos.AddPending(order.Direction, -released)
	e.metrics.IncCancel()

	cancelled := *order
	e.notify(func(s Strategy) { s.OnOrderCancelled(cancelled) })
}

// flagConflicts reports orders that have both a fill attempt and a cancel
// request in the same pass. They are still processed in queue order.
func (e *Engine) flagConflicts(events []bus.Event) {
	seen := make(map[model.OrderID]uint8, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case enum.EventFill:
			seen[ev.OrderID] |= seenFill
		case enum.EventCancel:
			seen[ev.OrderID] |= seenCancel
		}
	}
	for _, ev := range events {
		if seen[ev.OrderID] != seenFill|seenCancel {
			continue
		}
		seen[ev.OrderID] = 0
		e.metrics.IncConflict()
		logs.Errorf("order %d has both fill and cancel queued at %s, processing in queue order",
			ev.OrderID, e.now.Format("2006-01-02 15:04:05"))
	}
}
