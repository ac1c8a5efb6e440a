package model

import "time"

// BarData is one interval of trading activity for a single instrument.
type BarData struct {
	Time     time.Time // interval start
	LastTime time.Time // last update inside the interval
	OpenPx   float64
	HighPx   float64
	LowPx    float64
	LastPx   float64
	TradeQty float64 // traded quantity during the interval
	TradeMV  float64 // traded market value during the interval
	HoldQty  float64 // market open interest at LastTime
}
