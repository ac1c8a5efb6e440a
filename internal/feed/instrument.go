package feed

import (
	"io"

	"mlft/internal/catalog"
	"mlft/internal/model"

	"github.com/yanun0323/errors"
)

var instrumentColumns = []string{
	"ins_id", "px_tick", "qty_tick", "multiplier", "fee_per_qty", "fee_per_mv", "max_hold_qty",
}

// LoadInstruments reads the instrument file into a catalog registry.
func LoadInstruments(path string) (*catalog.Registry, error) {
	f, err := openFile(path, "instrument")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadInstruments(f)
}

// ReadInstruments decodes instrument records with the columns
// ins_id, px_tick, qty_tick, multiplier, fee_per_qty, fee_per_mv, max_hold_qty.
func ReadInstruments(r io.Reader) (*catalog.Registry, error) {
	t, err := newTable(r, instrumentColumns)
	if err != nil {
		return nil, errors.Wrap(err, "instrument table")
	}

	reg := catalog.NewRegistry()
	for {
		if err := t.next(); err != nil {
			if err == io.EOF {
				return reg, nil
			}
			return nil, err
		}

		ins, err := decodeInstrument(t)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(ins); err != nil {
			return nil, errors.Wrapf(err, "line %d", t.line)
		}
	}
}

func decodeInstrument(t *table) (catalog.Instrument, error) {
	id, err := model.ParseInstrumentID(t.str("ins_id"))
	if err != nil {
		return catalog.Instrument{}, errors.Wrapf(err, "line %d", t.line)
	}

	var values [6]float64
	for i, name := range instrumentColumns[1:] {
		if values[i], err = t.float(name); err != nil {
			return catalog.Instrument{}, err
		}
	}

	return catalog.Instrument{
		Info: model.InstrumentInfo{
			ID:         id,
			PxTick:     values[0],
			QtyTick:    values[1],
			Multiplier: values[2],
			FeePerQty:  values[3],
			FeePerMV:   values[4],
		},
		MaxHoldQty: values[5],
	}, nil
}
