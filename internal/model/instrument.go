package model

import (
	"strings"

	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
)

// InstrumentID identifies an instrument as EXCHANGE.SYMBOL. It is comparable and
// used directly as a map key.
type InstrumentID struct {
	Exchange string
	Symbol   string
}

// ParseInstrumentID parses "EXCHANGE.SYMBOL", e.g. "SHFE.CU2105".
func ParseInstrumentID(s string) (InstrumentID, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return InstrumentID{}, errors.Wrapf(exception.ErrMalformedInstrumentID, "%q should be like SHFE.CU2105", s)
	}

	return InstrumentID{Exchange: parts[0], Symbol: parts[1]}, nil
}

func (id InstrumentID) String() string {
	return id.Exchange + "." + id.Symbol
}

func (id InstrumentID) IsZero() bool {
	return id.Exchange == "" && id.Symbol == ""
}

func (id InstrumentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *InstrumentID) UnmarshalText(text []byte) error {
	parsed, err := ParseInstrumentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// InstrumentInfo is the static contract metadata of an instrument.
type InstrumentInfo struct {
	ID         InstrumentID
	PxTick     float64 // minimum price change unit
	QtyTick    float64 // minimum quantity change unit
	Multiplier float64 // contract size
	FeePerQty  float64
	FeePerMV   float64
}

// Fee charged for trading qty at px.
func (info InstrumentInfo) Fee(qty, px float64) float64 {
	return qty*info.FeePerQty + qty*px*info.FeePerMV
}
