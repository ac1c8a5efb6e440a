package demo

import (
	"context"
	"testing"
	"time"

	"mlft/internal/backtest"
	"mlft/internal/catalog"
	"mlft/internal/feed"
	"mlft/internal/model"
	"mlft/internal/model/enum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ins = model.InstrumentID{Exchange: "SHFE", Symbol: "CU2105"}

func replay(t *testing.T, seed int64, maxHold float64) (backtest.Result, *Random) {
	t.Helper()

	base := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)
	bars := make([]feed.Bar, 0, 30)
	for i := 0; i < 30; i++ {
		start := base.Add(time.Duration(i) * time.Minute)
		bars = append(bars, feed.Bar{
			InstrumentID: ins,
			BarData:      model.BarData{Time: start, LastTime: start.Add(time.Minute), LastPx: 100 + float64(i%5)},
		})
	}

	s := NewRandom(Config{Seed: seed, MaxQty: 5})
	e, err := backtest.New(backtest.DefaultConfig(), []catalog.Instrument{{
		Info:       model.InstrumentInfo{ID: ins, PxTick: 1, QtyTick: 1},
		MaxHoldQty: maxHold,
	}}, s)
	require.NoError(t, err)

	result, err := e.Run(context.Background(), bars)
	require.NoError(t, err)
	return result, s
}

func TestRandomSubmitsIOC(t *testing.T) {
	result, s := replay(t, 7, 1000)

	assert.Equal(t, 30, s.Accepted())
	assert.Equal(t, 0, s.Rejected())
	require.Len(t, result.Orders, 30)
	for _, o := range result.Orders {
		assert.Equal(t, enum.TimeInForceIOC, o.TimeInForce)
		assert.GreaterOrEqual(t, o.OrigQty, 1.0)
		assert.LessOrEqual(t, o.OrigQty, 5.0)
		assert.Nil(t, o.LimitPx)
	}
	assert.Len(t, result.Trades, 29)
	require.Len(t, result.Unresolved(), 1)
	assert.Equal(t, model.OrderID(29), result.Unresolved()[0].ID)
}

func TestRandomIsReproducible(t *testing.T) {
	first, _ := replay(t, 42, 6)
	second, _ := replay(t, 42, 6)

	assert.Equal(t, first.Orders, second.Orders)
	assert.Equal(t, first.Trades, second.Trades)
	assert.Equal(t, first.Positions, second.Positions)
}

func TestRandomRespectsCapacity(t *testing.T) {
	result, s := replay(t, 3, 2)

	assert.Equal(t, 30, s.Accepted()+s.Rejected())
	for _, pos := range result.Positions {
		assert.LessOrEqual(t, pos.HoldQty, 2.0)
		assert.GreaterOrEqual(t, pos.HoldQty, -2.0)
	}
	for _, o := range result.Orders {
		assert.LessOrEqual(t, o.OrigQty, 4.0)
	}
}
