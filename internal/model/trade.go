package model

import (
	"time"

	"mlft/internal/model/enum"
)

// TradeID addresses a trade in the engine's trade log.
type TradeID int

// Trade is the immutable record of one fill. InstrumentID and Direction are
// copied from the owning order.
type Trade struct {
	ID           TradeID
	OrderID      OrderID
	InstrumentID InstrumentID
	Direction    enum.Direction
	Time         time.Time
	Px           float64
	Qty          float64
	Fee          float64
	Profit       float64 // realized by this fill
}
