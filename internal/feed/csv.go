package feed

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"mlft/pkg/exception"

	"github.com/yanun0323/errors"
)

// table is a header-indexed CSV reader. Columns may appear in any order and
// extra columns are ignored.
type table struct {
	r       *csv.Reader
	columns map[string]int
	line    int
	row     []string
}

func openFile(path, what string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(exception.ErrNotFound, "missing %s file: %s", what, path)
		}
		return nil, errors.Wrapf(err, "open %s file: %s", what, path)
	}
	return f, nil
}

func newTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(exception.ErrInvalidRecord, "missing header")
		}
		return nil, errors.Wrap(err, "read header")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[name] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, errors.Wrapf(exception.ErrInvalidRecord, "missing column: %s", name)
		}
	}

	return &table{r: cr, columns: columns, line: 1}, nil
}

// next advances to the next row and returns io.EOF at the end.
func (t *table) next() error {
	row, err := t.r.Read()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return errors.Wrapf(err, "read line %d", t.line+1)
	}
	t.line++
	t.row = row
	return nil
}

func (t *table) str(name string) string {
	return strings.TrimSpace(t.row[t.columns[name]])
}

func (t *table) float(name string) (float64, error) {
	raw := t.str(name)
	if raw == "" {
		return 0, errors.Wrapf(exception.ErrInvalidRecord, "line %d, column %s: empty value", t.line, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(exception.ErrInvalidRecord, "line %d, column %s: %q", t.line, name, raw)
	}
	return v, nil
}

var timeLayouts = [...]string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05.999999999",
	"20060102 15:04:05.999999999",
}

func (t *table) time(name string) (time.Time, error) {
	raw := t.str(name)
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Wrapf(exception.ErrInvalidRecord, "line %d, column %s: unsupported time %q", t.line, name, raw)
}
