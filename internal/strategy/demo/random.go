package demo

import (
	"math/rand"

	"mlft/internal/backtest"
	"mlft/internal/model"
	"mlft/internal/model/enum"

	"github.com/yanun0323/logs"
)

const Name = "demo-random"

// Config sets up the random strategy.
type Config struct {
	Seed   int64
	MaxQty float64
}

// Random submits one IOC order of random direction and integer quantity in
// [1, MaxQty] for every bar it receives, and logs every callback.
type Random struct {
	backtest.BaseStrategy

	rng      *rand.Rand
	maxQty   int
	accepted int
	rejected int
}

var _ backtest.Strategy = (*Random)(nil)

func NewRandom(cfg Config) *Random {
	maxQty := int(cfg.MaxQty)
	if maxQty < 1 {
		maxQty = 1
	}
	return &Random{
		BaseStrategy: backtest.NewBaseStrategy(Name),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		maxQty:       maxQty,
	}
}

func (s *Random) OnStart() {
	logs.Infof("on_start, positions: %d", len(s.Commands().Positions()))
}

func (s *Random) OnStop() {
	logs.Infof("on_stop, accepted: %d, rejected: %d", s.accepted, s.rejected)
}

func (s *Random) OnOrderCancelled(order model.Order) {
	logs.Infof("on_order_cancelled, id: %d, ins: %s, dir: %s, orig: %g, exec: %g",
		order.ID, order.InstrumentID, order.Direction, order.OrigQty, order.ExecQty)
}

func (s *Random) OnOrderExecuted(trade model.Trade) {
	logs.Infof("on_order_executed, id: %d, order: %d, ins: %s, dir: %s, px: %g, qty: %g, profit: %g",
		trade.ID, trade.OrderID, trade.InstrumentID, trade.Direction, trade.Px, trade.Qty, trade.Profit)
}

func (s *Random) OnBarData(id model.InstrumentID, bar model.BarData) {
	logs.Infof("on_bar_data, ins: %s, time: %s, last: %g",
		id, bar.LastTime.Format("2006-01-02 15:04:05"), bar.LastPx)

	dir := enum.DirectionBuy
	if s.rng.Intn(2) == 1 {
		dir = enum.DirectionSell
	}
	qty := float64(1 + s.rng.Intn(s.maxQty))

	if _, ok := s.Commands().SubmitOrder(id, dir, qty, enum.TimeInForceIOC, nil); ok {
		s.accepted++
	} else {
		s.rejected++
	}
}

// Accepted returns the number of orders the engine took.
func (s *Random) Accepted() int {
	return s.accepted
}

// Rejected returns the number of orders the engine refused.
func (s *Random) Rejected() int {
	return s.rejected
}
