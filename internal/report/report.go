package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"mlft/internal/backtest"
	"mlft/internal/model"
	"mlft/internal/state"

	"github.com/yanun0323/errors"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	moneyPlaces = 4
)

var (
	orderColumns = []string{
		"order_id", "ins_id", "direction", "tif", "limit_px", "orig_qty", "pend_qty", "exec_qty", "insert_time", "last_time",
	}
	tradeColumns = []string{
		"trade_id", "order_id", "ins_id", "direction", "px", "qty", "fee", "profit",
	}
	positionColumns = []string{
		"ins_id", "hold_qty", "hold_mv", "avg_cost", "pend_buy", "pend_sell", "real_profit", "fee",
	}
)

// Table is a rendered result table.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Report holds every result table of a run.
type Report struct {
	Orders    Table
	Trades    Table
	Positions Table
}

// Build renders the result of a run. Prices and quantities are printed with
// the precision of their instrument ticks.
func Build(result backtest.Result) Report {
	infos := make(map[model.InstrumentID]model.InstrumentInfo, len(result.Positions))
	for _, pos := range result.Positions {
		infos[pos.Instrument.ID] = pos.Instrument
	}

	return Report{
		Orders:    OrdersTable(result.Orders, infos),
		Trades:    TradesTable(result.Trades, infos),
		Positions: PositionsTable(result.Positions),
	}
}

// Tables returns the tables in print order.
func (r Report) Tables() []Table {
	return []Table{r.Orders, r.Trades, r.Positions}
}

func OrdersTable(orders []model.Order, infos map[model.InstrumentID]model.InstrumentInfo) Table {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		info := lookup(infos, o.InstrumentID)
		limitPx := ""
		if o.LimitPx != nil {
			limitPx = model.FormatFixed(*o.LimitPx, info.PxPlaces())
		}
		rows = append(rows, []string{
			strconv.Itoa(int(o.ID)),
			o.InstrumentID.String(),
			o.Direction.String(),
			o.TimeInForce.String(),
			limitPx,
			model.FormatFixed(o.OrigQty, info.QtyPlaces()),
			model.FormatFixed(o.PendQty, info.QtyPlaces()),
			model.FormatFixed(o.ExecQty, info.QtyPlaces()),
			formatTime(o.InsertTime),
			formatTime(o.LastTime),
		})
	}
	return Table{Name: "orders", Columns: orderColumns, Rows: rows}
}

func TradesTable(trades []model.Trade, infos map[model.InstrumentID]model.InstrumentInfo) Table {
	rows := make([][]string, 0, len(trades))
	for _, tr := range trades {
		info := lookup(infos, tr.InstrumentID)
		rows = append(rows, []string{
			strconv.Itoa(int(tr.ID)),
			strconv.Itoa(int(tr.OrderID)),
			tr.InstrumentID.String(),
			tr.Direction.String(),
			model.FormatFixed(tr.Px, info.PxPlaces()),
			model.FormatFixed(tr.Qty, info.QtyPlaces()),
			model.FormatFixed(tr.Fee, moneyPlaces),
			model.FormatFixed(tr.Profit, moneyPlaces),
		})
	}
	return Table{Name: "trades", Columns: tradeColumns, Rows: rows}
}

func PositionsTable(positions []state.Position) Table {
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		info := p.Instrument
		avgCost := ""
		if p.HoldQty != 0 {
			avgCost = model.FormatFixed(p.AvgCost(), moneyPlaces)
		}
		rows = append(rows, []string{
			info.ID.String(),
			model.FormatFixed(p.HoldQty, info.QtyPlaces()),
			model.FormatFixed(p.HoldMV, moneyPlaces),
			avgCost,
			model.FormatFixed(p.PendingBuy, info.QtyPlaces()),
			model.FormatFixed(p.PendingSell, info.QtyPlaces()),
			model.FormatFixed(p.RealProfit, moneyPlaces),
			model.FormatFixed(p.Fee, moneyPlaces),
		})
	}
	return Table{Name: "positions", Columns: positionColumns, Rows: rows}
}

// WriteText prints the table as aligned columns.
func (t Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "# %s (%d)\n", t.Name, len(t.Rows)); err != nil {
		return errors.Wrap(err, "write title")
	}
	if err := writeTabbed(tw, t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeTabbed(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCSV writes the header and rows as CSV.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return errors.Wrapf(err, "write %s header", t.Name)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return errors.Wrapf(err, "write %s rows", t.Name)
	}
	return nil
}

// WriteText prints every table, separated by a blank line.
func (r Report) WriteText(w io.Writer) error {
	for i, t := range r.Tables() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := t.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSVDir writes one <name>.csv file per table into dir and returns the
// paths written.
func (r Report) WriteCSVDir(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output dir %s", dir)
	}

	paths := make([]string, 0, 3)
	for _, t := range r.Tables() {
		path := filepath.Join(dir, t.Name+".csv")
		if err := writeCSVFile(path, t); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := t.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeTabbed(w io.Writer, cells []string) error {
	for i, cell := range cells {
		sep := "\t"
		if i == len(cells)-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, cell+sep); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	return nil
}

func lookup(infos map[model.InstrumentID]model.InstrumentInfo, id model.InstrumentID) model.InstrumentInfo {
	if info, ok := infos[id]; ok {
		return info
	}
	return model.InstrumentInfo{ID: id}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
