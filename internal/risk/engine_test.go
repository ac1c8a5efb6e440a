package risk

import (
	"math"
	"testing"

	"mlft/internal/catalog"
	"mlft/internal/model"
	"mlft/internal/model/enum"
	"mlft/internal/state"

	"github.com/stretchr/testify/assert"
)

func newPosition(maxHold float64) *state.Position {
	pos := state.NewPosition(catalog.Instrument{
		Info:       model.InstrumentInfo{ID: model.InstrumentID{Exchange: "SHFE", Symbol: "CU2105"}},
		MaxHoldQty: maxHold,
	})
	return &pos
}

func TestEvaluateClampsToCapacity(t *testing.T) {
	e := NewEngine(Config{})
	pos := newPosition(10)

	first := e.Evaluate(pos, enum.DirectionBuy, 5)
	assert.True(t, first.Allowed())
	assert.Equal(t, 5.0, first.Qty)
	pos.AddPending(enum.DirectionBuy, first.Qty)

	second := e.Evaluate(pos, enum.DirectionBuy, 8)
	assert.True(t, second.Allowed())
	assert.True(t, second.Clamped())
	assert.Equal(t, 5.0, second.Qty)
	pos.AddPending(enum.DirectionBuy, second.Qty)

	third := e.Evaluate(pos, enum.DirectionBuy, 1)
	assert.False(t, third.Allowed())
	assert.Equal(t, ReasonNoCapacity, third.Reason)

	sell := e.Evaluate(pos, enum.DirectionSell, 12)
	assert.True(t, sell.Allowed())
	assert.Equal(t, 10.0, sell.Qty)
}

func TestEvaluateRejects(t *testing.T) {
	testCases := []struct {
		desc   string
		cfg    Config
		pos    *state.Position
		qty    float64
		reason Reason
	}{
		{"untracked instrument", Config{}, nil, 1, ReasonUnknownInstrument},
		{"kill switch", Config{KillSwitch: true}, newPosition(10), 1, ReasonKillSwitch},
		{"zero qty", Config{}, newPosition(10), 0, ReasonNoCapacity},
		{"negative qty", Config{}, newPosition(10), -3, ReasonNoCapacity},
		{"nan qty", Config{}, newPosition(10), math.NaN(), ReasonNoCapacity},
		{"zero cap", Config{}, newPosition(0), 1, ReasonNoCapacity},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			d := NewEngine(tc.cfg).Evaluate(tc.pos, enum.DirectionBuy, tc.qty)
			assert.False(t, d.Allowed())
			assert.Equal(t, tc.reason, d.Reason)
		})
	}
}

func TestEvaluateMaxOrderQty(t *testing.T) {
	e := NewEngine(Config{MaxOrderQty: 2})
	d := e.Evaluate(newPosition(10), enum.DirectionSell, 5)
	assert.True(t, d.Allowed())
	assert.Equal(t, 2.0, d.Qty)
	assert.Equal(t, 10.0, d.Capacity)
}
