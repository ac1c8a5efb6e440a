package model

import (
	"math"

	"github.com/shopspring/decimal"
	yd "github.com/yanun0323/decimal"
)

const defaultPlaces = 4

// PxPlaces returns the number of decimal places implied by the price tick.
func (info InstrumentInfo) PxPlaces() int32 {
	return tickPlaces(info.PxTick)
}

// QtyPlaces returns the number of decimal places implied by the quantity tick.
func (info InstrumentInfo) QtyPlaces() int32 {
	return tickPlaces(info.QtyTick)
}

func tickPlaces(tick float64) int32 {
	if tick <= 0 || math.IsNaN(tick) || math.IsInf(tick, 0) {
		return defaultPlaces
	}

	exp := decimal.NewFromFloat(tick).Exponent()
	if exp >= 0 {
		return 0
	}
	return -exp
}

// FormatFixed renders v rounded half away from zero to the given decimal
// places. NaN and infinities are rendered as "NaN", "+Inf" and "-Inf".
func FormatFixed(v float64, places int32) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}

	p := int(places)
	return yd.NewFromFloat(v).Round(p).StringFixed(p)
}
