package backtest

import (
	"context"
	"math"
	"time"

	"mlft/internal/bus"
	"mlft/internal/catalog"
	"mlft/internal/feed"
	"mlft/internal/model"
	"mlft/internal/model/enum"
	"mlft/internal/obs"
	"mlft/internal/risk"
	"mlft/internal/state"
	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

const defaultQueueCapacity = 64

// Config is the immutable per-run configuration.
type Config struct {
	MatchAlgo enum.MatchAlgorithm
	Risk      risk.Config
}

// DefaultConfig fills every order at the last price with no extra limits.
func DefaultConfig() Config {
	return Config{MatchAlgo: enum.MatchAlwaysFilled}
}

func (c Config) Validate() error {
	if !c.MatchAlgo.IsAvailable() {
		return errors.Wrapf(exception.ErrInvalidConfig, "match algorithm: %d", c.MatchAlgo)
	}
	return nil
}

// Engine replays bars through a strategy. It owns the ledger, the order arena,
// the trade log and the pending event queue, and is not safe for concurrent use.
type Engine struct {
	cfg      Config
	strategy Strategy
	ledger   *state.Ledger
	gate     *risk.Engine
	queue    *bus.Queue
	metrics  *obs.Metrics

	orders []model.Order
	trades []model.Trade
	lastPx map[model.InstrumentID]float64
	now    time.Time
	ran    bool
}

var _ Commands = (*Engine)(nil)

// New creates an engine with a flat position for every instrument.
func New(cfg Config, instruments []catalog.Instrument, strategy Strategy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, errors.Wrap(exception.ErrNilInstance, "strategy")
	}

	return &Engine{
		cfg:      cfg,
		strategy: strategy,
		ledger:   state.NewLedger(instruments),
		gate:     risk.NewEngine(cfg.Risk),
		queue:    bus.NewQueue(defaultQueueCapacity),
		metrics:  obs.NewMetrics(),
		lastPx:   make(map[model.InstrumentID]float64, len(instruments)),
	}, nil
}

// Run drives the strategy through bars in the given order and returns the
// audit trail. The context is only checked between bars.
func (e *Engine) Run(ctx context.Context, bars []feed.Bar) (Result, error) {
	if e.ran {
		return Result{}, errors.Wrap(exception.ErrInvalidArgument, "engine already ran")
	}
	e.ran = true

	logs.Infof("backtest start: strategy=%s, algo=%s, instruments=%d, bars=%d",
		e.strategy.Name(), e.cfg.MatchAlgo, e.ledger.Count(), len(bars))

	e.strategy.Init(e)
	e.notify(func(s Strategy) { s.OnStart() })

	for i := range bars {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrapf(err, "interrupted at bar %d", i)
		}
		if err := e.processBar(&bars[i]); err != nil {
			return Result{}, errors.Wrapf(err, "bar %d", i)
		}
	}

	e.notify(func(s Strategy) { s.OnStop() })

	result := e.result()
	logs.Infof("backtest stop: strategy=%s, orders=%d, trades=%d, unresolved=%d",
		e.strategy.Name(), len(result.Orders), len(result.Trades), len(result.Unresolved()))
	return result, nil
}

func (e *Engine) processBar(bar *feed.Bar) error {
	start := time.Now()

	e.now = bar.LastTime
	e.lastPx[bar.InstrumentID] = bar.LastPx

	if err := e.resolve(); err != nil {
		return err
	}

	id, data := bar.InstrumentID, bar.BarData
	e.notify(func(s Strategy) { s.OnBarData(id, data) })

	e.metrics.IncBar()
	e.metrics.ObserveBar(time.Since(start))
	return nil
}

// notify runs a strategy callback and measures it.
func (e *Engine) notify(fn func(Strategy)) {
	start := time.Now()
	fn(e.strategy)
	e.metrics.ObserveStrategy(time.Since(start))
}

// lastPrice returns the last observed price of an instrument, NaN if none.
func (e *Engine) lastPrice(id model.InstrumentID) float64 {
	px, ok := e.lastPx[id]
	if !ok {
		return math.NaN()
	}
	return px
}

func (e *Engine) result() Result {
	orders := make([]model.Order, len(e.orders))
	copy(orders, e.orders)
	trades := make([]model.Trade, len(e.trades))
	copy(trades, e.trades)

	return Result{
		Strategy:  e.strategy.Name(),
		MatchAlgo: e.cfg.MatchAlgo,
		LastTime:  e.now,
		Orders:    orders,
		Trades:    trades,
		Positions: e.ledger.Positions(),
		Snapshot:  e.ledger.Snapshot(e.now),
		Stats:     e.metrics.Snapshot(),
	}
}
