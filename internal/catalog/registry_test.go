package catalog

import (
	"testing"

	"mlft/internal/model"
	"mlft/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanun0323/errors"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	cu := model.InstrumentID{Exchange: "SHFE", Symbol: "CU2105"}
	al := model.InstrumentID{Exchange: "SHFE", Symbol: "AL2105"}
	ifx := model.InstrumentID{Exchange: "CFFEX", Symbol: "IF2106"}

	require.NoError(t, reg.Add(Instrument{Info: model.InstrumentInfo{ID: cu, PxTick: 10}, MaxHoldQty: 10}))
	require.NoError(t, reg.Add(Instrument{Info: model.InstrumentInfo{ID: al, PxTick: 5}, MaxHoldQty: 20}))
	require.NoError(t, reg.Add(Instrument{Info: model.InstrumentInfo{ID: ifx, PxTick: 0.2}, MaxHoldQty: 2}))

	assert.Equal(t, 3, reg.Count())
	assert.Equal(t, []string{"SHFE", "CFFEX"}, reg.Exchanges())

	ins, ok := reg.Lookup(al)
	require.True(t, ok)
	assert.Equal(t, 20.0, ins.MaxHoldQty)

	info, ok := reg.Info(ifx)
	require.True(t, ok)
	assert.Equal(t, 0.2, info.PxTick)

	_, ok = reg.Lookup(model.InstrumentID{Exchange: "DCE", Symbol: "M2109"})
	assert.False(t, ok)

	all := reg.Instruments()
	require.Len(t, all, 3)
	assert.Equal(t, cu, all[0].Info.ID)
	assert.Equal(t, ifx, all[2].Info.ID)
}

func TestRegistryRejects(t *testing.T) {
	reg := NewRegistry()
	cu := model.InstrumentID{Exchange: "SHFE", Symbol: "CU2105"}
	require.NoError(t, reg.Add(Instrument{Info: model.InstrumentInfo{ID: cu}, MaxHoldQty: 1}))

	err := reg.Add(Instrument{Info: model.InstrumentInfo{ID: cu}, MaxHoldQty: 1})
	require.True(t, errors.Is(err, exception.ErrDuplicateInstrument), "%v", err)

	err = reg.Add(Instrument{})
	require.True(t, errors.Is(err, exception.ErrMalformedInstrumentID), "%v", err)

	err = reg.Add(Instrument{Info: model.InstrumentInfo{ID: model.InstrumentID{Exchange: "DCE", Symbol: "M"}}, MaxHoldQty: -1})
	require.True(t, errors.Is(err, exception.ErrInvalidRecord), "%v", err)
}
