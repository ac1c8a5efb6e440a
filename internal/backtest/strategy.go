package backtest

import (
	"time"

	"mlft/internal/model"
	"mlft/internal/model/enum"
	"mlft/internal/state"
)

// Commands is what a strategy may ask of the engine. Reads return copies; the
// only way to change engine state is SubmitOrder and CancelOrder.
type Commands interface {
	// Positions returns all positions in instrument load order.
	Positions() []state.Position
	FindPosition(id model.InstrumentID) (state.Position, bool)
	FindOrder(id model.OrderID) (model.Order, bool)
	// SubmitOrder reserves capacity immediately and queues a fill attempt for
	// the next bar. It returns false when the instrument is not tracked or no
	// capacity is left; that is a normal outcome, not an error.
	SubmitOrder(id model.InstrumentID, dir enum.Direction, qty float64, tif enum.TimeInForce, limitPx *float64) (model.Order, bool)
	// CancelOrder queues a cancel request for the next bar. IOC orders and
	// orders without pending quantity cannot be cancelled.
	CancelOrder(id model.OrderID) bool
	// Now returns the last time of the bar being processed.
	Now() time.Time
}

// Strategy is the decision policy driven by the engine. Callbacks are invoked
// synchronously: for each bar every cancel/execution notification comes
// before OnBarData.
type Strategy interface {
	Name() string
	Init(cmd Commands)
	OnStart()
	OnStop()
	OnOrderCancelled(order model.Order)
	OnOrderExecuted(trade model.Trade)
	OnBarData(id model.InstrumentID, bar model.BarData)
}

// BaseStrategy carries the name and command handle and ignores every
// callback. Embed it and override what you need.
type BaseStrategy struct {
	name string
	cmd  Commands
}

func NewBaseStrategy(name string) BaseStrategy {
	return BaseStrategy{name: name}
}

func (s *BaseStrategy) Name() string {
	return s.name
}

func (s *BaseStrategy) Init(cmd Commands) {
	s.cmd = cmd
}

func (s *BaseStrategy) Commands() Commands {
	return s.cmd
}

func (s *BaseStrategy) OnStart() {}

func (s *BaseStrategy) OnStop() {}

func (s *BaseStrategy) OnOrderCancelled(model.Order) {}

func (s *BaseStrategy) OnOrderExecuted(model.Trade) {}

func (s *BaseStrategy) OnBarData(model.InstrumentID, model.BarData) {}
