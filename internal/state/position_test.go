package state

import (
	"math"
	"testing"

	"mlft/internal/catalog"
	"mlft/internal/model"
	"mlft/internal/model/enum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cu2105 = model.InstrumentID{Exchange: "SHFE", Symbol: "CU2105"}

func newTestPosition(maxHold float64) Position {
	return NewPosition(catalog.Instrument{
		Info: model.InstrumentInfo{
			ID:        cu2105,
			PxTick:    10,
			QtyTick:   1,
			FeePerQty: 0.1,
			FeePerMV:  0.0001,
		},
		MaxHoldQty: maxHold,
	})
}

func TestApplyFillFee(t *testing.T) {
	pos := newTestPosition(10)
	pos.AddPending(enum.DirectionBuy, 3)

	fill := pos.ApplyFill(enum.DirectionBuy, 3, 100)
	assert.InDelta(t, 0.33, fill.Fee, 1e-12)
	assert.InDelta(t, 0.33, pos.Fee, 1e-12)
	assert.Equal(t, 0.0, pos.PendingBuy)
	assert.Equal(t, 3.0, pos.HoldQty)
	assert.Equal(t, 300.0, pos.HoldMV)
	assert.Equal(t, 100.0, pos.AvgCost())
}

func TestApplyFillFlipLongToShort(t *testing.T) {
	pos := newTestPosition(10)
	pos.ApplyFill(enum.DirectionBuy, 3, 50)
	require.Equal(t, 50.0, pos.AvgCost())

	fill := pos.ApplyFill(enum.DirectionSell, 5, 60)
	assert.Equal(t, 3.0, fill.CloseQty)
	assert.Equal(t, 2.0, fill.OpenQty)
	assert.InDelta(t, 30.0, fill.Profit, 1e-12)
	assert.InDelta(t, 30.0, pos.RealProfit, 1e-12)
	assert.Equal(t, -2.0, pos.HoldQty)
	assert.Equal(t, -120.0, pos.HoldMV)
	assert.Equal(t, 120.0, pos.CostBasis())
	assert.Equal(t, 60.0, pos.AvgCost())
}

func TestApplyFillScenarios(t *testing.T) {
	type step struct {
		dir enum.Direction
		qty float64
		px  float64
	}

	testCases := []struct {
		desc       string
		steps      []step
		holdQty    float64
		holdMV     float64
		realProfit float64
	}{
		{
			"average up long",
			[]step{{enum.DirectionBuy, 2, 100}, {enum.DirectionBuy, 2, 110}},
			4, 420, 0,
		},
		{
			"partial close long keeps average",
			[]step{{enum.DirectionBuy, 4, 100}, {enum.DirectionSell, 1, 120}},
			3, 300, 20,
		},
		{
			"full close long",
			[]step{{enum.DirectionBuy, 4, 100}, {enum.DirectionSell, 4, 90}},
			0, 0, -40,
		},
		{
			"short then cover at profit",
			[]step{{enum.DirectionSell, 2, 100}, {enum.DirectionBuy, 1, 80}},
			-1, -100, 20,
		},
		{
			"short flips to long",
			[]step{{enum.DirectionSell, 2, 100}, {enum.DirectionBuy, 5, 110}},
			3, 330, -20,
		},
		{
			"fractional quantities close to exactly flat",
			[]step{{enum.DirectionBuy, 0.1, 10}, {enum.DirectionBuy, 0.2, 10}, {enum.DirectionSell, 0.30000000000000004, 10}},
			0, 0, 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			pos := newTestPosition(10)
			for _, s := range tc.steps {
				pos.ApplyFill(s.dir, s.qty, s.px)
			}
			assert.InDelta(t, tc.holdQty, pos.HoldQty, 1e-9)
			assert.InDelta(t, tc.holdMV, pos.HoldMV, 1e-9)
			assert.InDelta(t, tc.realProfit, pos.RealProfit, 1e-9)
			if pos.HoldQty == 0 {
				assert.Equal(t, 0.0, pos.HoldMV)
				assert.True(t, math.IsNaN(pos.AvgCost()))
			}
		})
	}
}

func TestApplyFillNaNPrice(t *testing.T) {
	pos := newTestPosition(10)
	pos.ApplyFill(enum.DirectionBuy, 2, 100)

	fill := pos.ApplyFill(enum.DirectionSell, 2, math.NaN())
	assert.True(t, math.IsNaN(fill.Profit))
	assert.True(t, math.IsNaN(fill.Fee))
	assert.Equal(t, 0.0, pos.HoldQty)
	assert.Equal(t, 0.0, pos.HoldMV)
}

func TestCapacity(t *testing.T) {
	pos := newTestPosition(10)
	assert.Equal(t, 10.0, pos.Capacity(enum.DirectionBuy))
	assert.Equal(t, 10.0, pos.Capacity(enum.DirectionSell))

	pos.AddPending(enum.DirectionBuy, 5)
	assert.Equal(t, 5.0, pos.Capacity(enum.DirectionBuy))
	assert.Equal(t, 5.0, pos.Pending(enum.DirectionBuy))

	pos.ApplyFill(enum.DirectionBuy, 5, 100)
	assert.Equal(t, 5.0, pos.Capacity(enum.DirectionBuy))
	assert.Equal(t, 15.0, pos.Capacity(enum.DirectionSell))

	pos.AddPending(enum.DirectionSell, 15)
	assert.Equal(t, 0.0, pos.Capacity(enum.DirectionSell))
}
