package feed

import (
	"io"

	"mlft/internal/model"
	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
)

var barColumns = []string{
	"ins_id", "time", "last_time", "open_px", "high_px", "low_px", "last_px", "trade_qty", "trade_mv", "hold_qty",
}

// Bar is one feed record: a bar tagged with its instrument.
type Bar struct {
	InstrumentID model.InstrumentID
	model.BarData
}

// LoadBars reads the bar data file.
func LoadBars(path string) ([]Bar, error) {
	f, err := openFile(path, "bar data")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadBars(f)
}

// ReadBars decodes bar records with the columns ins_id, time, last_time,
// open_px, high_px, low_px, last_px, trade_qty, trade_mv, hold_qty.
//
// The feed must already be sorted by time across all instruments. It is
// validated but never re-sorted.
func ReadBars(r io.Reader) ([]Bar, error) {
	t, err := newTable(r, barColumns)
	if err != nil {
		return nil, errors.Wrap(err, "bar table")
	}

	var bars []Bar
	for {
		if err := t.next(); err != nil {
			if err == io.EOF {
				return bars, nil
			}
			return nil, err
		}

		bar, err := decodeBar(t)
		if err != nil {
			return nil, err
		}
		if n := len(bars); n > 0 && bar.Time.Before(bars[n-1].Time) {
			return nil, errors.Wrapf(exception.ErrUnsortedBars, "line %d: %s before %s",
				t.line, bar.Time.Format("2006-01-02 15:04:05"), bars[n-1].Time.Format("2006-01-02 15:04:05"))
		}
		bars = append(bars, bar)
	}
}

func decodeBar(t *table) (Bar, error) {
	id, err := model.ParseInstrumentID(t.str("ins_id"))
	if err != nil {
		return Bar{}, errors.Wrapf(err, "line %d", t.line)
	}

	bar := Bar{InstrumentID: id}
	if bar.Time, err = t.time("time"); err != nil {
		return Bar{}, err
	}
	if bar.LastTime, err = t.time("last_time"); err != nil {
		return Bar{}, err
	}

	fields := [...]*float64{
		&bar.OpenPx, &bar.HighPx, &bar.LowPx, &bar.LastPx, &bar.TradeQty, &bar.TradeMV, &bar.HoldQty,
	}
	for i, name := range barColumns[3:] {
		if *fields[i], err = t.float(name); err != nil {
			return Bar{}, err
		}
	}

	return bar, nil
}
