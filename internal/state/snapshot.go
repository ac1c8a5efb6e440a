package state

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"mlft/internal/model"
	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
)

const snapshotTolerance = 1e-9

// Snapshot captures the ledger at the end of a run.
type Snapshot struct {
	Timestamp int64           `json:"timestamp"`
	LastTime  time.Time       `json:"lastTime"`
	Positions []PositionEntry `json:"positions"`
}

// PositionEntry is a single instrument position entry. Non-finite values are
// stored as nil.
type PositionEntry struct {
	InstrumentID model.InstrumentID `json:"insId"`
	HoldQty      *float64           `json:"holdQty"`
	HoldMV       *float64           `json:"holdMv"`
	PendingBuy   *float64           `json:"pendingBuy"`
	PendingSell  *float64           `json:"pendingSell"`
	RealProfit   *float64           `json:"realProfit"`
	Fee          *float64           `json:"fee"`
}

// Snapshot builds a snapshot from current positions, sorted by instrument.
func (l *Ledger) Snapshot(lastTime time.Time) Snapshot {
	entries := make([]PositionEntry, 0, len(l.order))
	for _, id := range l.order {
		pos := l.positions[id]
		entries = append(entries, PositionEntry{
			InstrumentID: id,
			HoldQty:      finite(pos.HoldQty),
			HoldMV:       finite(pos.HoldMV),
			PendingBuy:   finite(pos.PendingBuy),
			PendingSell:  finite(pos.PendingSell),
			RealProfit:   finite(pos.RealProfit),
			Fee:          finite(pos.Fee),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].InstrumentID.String() < entries[j].InstrumentID.String()
	})
	return Snapshot{
		Timestamp: time.Now().UTC().UnixNano(),
		LastTime:  lastTime,
		Positions: entries,
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// WriteSnapshot writes a snapshot to disk as JSON.
func WriteSnapshot(path string, snapshot Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create dir: %s", dir)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a snapshot from disk.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, errors.Wrapf(exception.ErrNotFound, "missing snapshot file: %s", path)
		}
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrapf(err, "unmarshal snapshot: %s", path)
	}
	return snap, nil
}

// CompareSnapshots checks if two snapshots hold the same positions. Timestamps
// are ignored.
func CompareSnapshots(expected, actual Snapshot) error {
	if len(expected.Positions) != len(actual.Positions) {
		return errors.Wrapf(exception.ErrSnapshotMismatch, "length: expected=%d actual=%d", len(expected.Positions), len(actual.Positions))
	}
	expectedMap := make(map[model.InstrumentID]PositionEntry, len(expected.Positions))
	for _, entry := range expected.Positions {
		expectedMap[entry.InstrumentID] = entry
	}
	for _, entry := range actual.Positions {
		want, ok := expectedMap[entry.InstrumentID]
		if !ok {
			return errors.Wrapf(exception.ErrSnapshotMismatch, "missing instrument: %s", entry.InstrumentID)
		}
		fields := [...]struct {
			name        string
			want, found *float64
		}{
			{"holdQty", want.HoldQty, entry.HoldQty},
			{"holdMv", want.HoldMV, entry.HoldMV},
			{"pendingBuy", want.PendingBuy, entry.PendingBuy},
			{"pendingSell", want.PendingSell, entry.PendingSell},
			{"realProfit", want.RealProfit, entry.RealProfit},
			{"fee", want.Fee, entry.Fee},
		}
		for _, f := range fields {
			if !sameValue(f.want, f.found) {
				return errors.Wrapf(exception.ErrSnapshotMismatch, "%s %s: expected=%s actual=%s",
					entry.InstrumentID, f.name, describe(f.want), describe(f.found))
			}
		}
	}
	return nil
}

func sameValue(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) <= snapshotTolerance*math.Max(1, math.Abs(*a))
}

func describe(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return model.FormatFixed(*v, 6)
}
