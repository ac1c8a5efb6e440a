package state

import (
	"mlft/internal/catalog"
	"mlft/internal/model"
)

// Ledger owns one position per tracked instrument.
type Ledger struct {
	positions map[model.InstrumentID]*Position
	order     []model.InstrumentID
}

// NewLedger creates a flat position for every instrument, in the given order.
func NewLedger(instruments []catalog.Instrument) *Ledger {
	l := &Ledger{
		positions: make(map[model.InstrumentID]*Position, len(instruments)),
		order:     make([]model.InstrumentID, 0, len(instruments)),
	}
	for _, ins := range instruments {
		id := ins.Info.ID
		if _, ok := l.positions[id]; ok {
			continue
		}
		pos := NewPosition(ins)
		l.positions[id] = &pos
		l.order = append(l.order, id)
	}
	return l
}

// Get returns the mutable position for an instrument.
func (l *Ledger) Get(id model.InstrumentID) (*Position, bool) {
	pos, ok := l.positions[id]
	return pos, ok
}

// Position returns a copy of the position for an instrument.
func (l *Ledger) Position(id model.InstrumentID) (Position, bool) {
	pos, ok := l.positions[id]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Positions returns copies of all positions in instrument load order.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.positions[id])
	}
	return out
}

// Count returns the number of tracked instruments.
func (l *Ledger) Count() int {
	return len(l.order)
}
