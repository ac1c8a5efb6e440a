// Package exception holds the sentinel errors of the module. Errors are wrapped
// with github.com/yanun0323/errors, which keeps the sentinel's cause rather than
// the sentinel itself, so match them with that package's errors.Is, not the
// standard library's.
package exception

import "github.com/yanun0323/errors"

// Backtest errors
var (
	ErrNotFound              = errors.New("backtest: not found")
	ErrMalformedInstrumentID = errors.New("backtest: malformed instrument id")
	ErrDuplicateInstrument   = errors.New("backtest: duplicate instrument")
	ErrInvalidRecord         = errors.New("backtest: invalid record")
	ErrUnsortedBars          = errors.New("backtest: bars are not sorted by time")
	ErrUnknownEventKind      = errors.New("backtest: unknown event kind")
	ErrInvalidConfig         = errors.New("backtest: invalid config")
	ErrSnapshotMismatch      = errors.New("backtest: snapshot mismatch")
)
