package catalog

import (
	"math"

	"mlft/internal/model"
	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
)

// Instrument is a catalog entry: contract metadata plus the position cap the
// backtest enforces for it.
type Instrument struct {
	Info       model.InstrumentInfo
	MaxHoldQty float64
}

// Registry stores instruments in load order and indexes them by ID.
type Registry struct {
	instruments []Instrument
	index       map[model.InstrumentID]int
	exchanges   []string
	exchangeSet map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index:       make(map[model.InstrumentID]int),
		exchangeSet: make(map[string]struct{}),
	}
}

// Add registers an instrument. IDs must be unique.
func (r *Registry) Add(ins Instrument) error {
	id := ins.Info.ID
	if id.IsZero() {
		return errors.Wrap(exception.ErrMalformedInstrumentID, "instrument id is empty")
	}
	if _, ok := r.index[id]; ok {
		return errors.Wrapf(exception.ErrDuplicateInstrument, "instrument: %s", id)
	}
	if ins.MaxHoldQty < 0 || math.IsNaN(ins.MaxHoldQty) {
		return errors.Wrapf(exception.ErrInvalidRecord, "instrument: %s, max_hold_qty: %v", id, ins.MaxHoldQty)
	}

	r.index[id] = len(r.instruments)
	r.instruments = append(r.instruments, ins)
	if _, ok := r.exchangeSet[id.Exchange]; !ok {
		r.exchangeSet[id.Exchange] = struct{}{}
		r.exchanges = append(r.exchanges, id.Exchange)
	}
	return nil
}

// Lookup returns the instrument by ID.
func (r *Registry) Lookup(id model.InstrumentID) (Instrument, bool) {
	i, ok := r.index[id]
	if !ok {
		return Instrument{}, false
	}
	return r.instruments[i], true
}

// Info returns the contract metadata by ID.
func (r *Registry) Info(id model.InstrumentID) (model.InstrumentInfo, bool) {
	ins, ok := r.Lookup(id)
	return ins.Info, ok
}

// Instruments returns a copy of all instruments in load order.
func (r *Registry) Instruments() []Instrument {
	out := make([]Instrument, len(r.instruments))
	copy(out, r.instruments)
	return out
}

// Exchanges returns the distinct exchanges in first-seen order.
func (r *Registry) Exchanges() []string {
	out := make([]string, len(r.exchanges))
	copy(out, r.exchanges)
	return out
}

// Count returns the number of instruments.
func (r *Registry) Count() int {
	return len(r.instruments)
}
