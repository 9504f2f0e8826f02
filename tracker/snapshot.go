package tracker

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"optrack/options"
)

var logHeader = []string{
	"Date", "Underlying Price", "Delta", "Beta Delta", "Theta",
	"IV Rank", "PoP", "PnL", "% of Max Profit",
}

// LogRow is one day's reading for an open trade. NaN fields render as
// empty cells.
type LogRow struct {
	Date           string
	Underlying     float64
	Delta          float64
	BetaDelta      float64
	Theta          float64
	IVRank         float64
	PoP            float64
	PnL            float64
	PctOfMaxProfit float64
}

// Snapshot aggregates matched positions into a daily log row. Delta,
// beta delta, theta, and P&L sum across legs; IV rank, PoP, and the
// underlying price are read from the first matched leg.
func Snapshot(t *options.Trade, matched []Position, now time.Time) LogRow {
	row := LogRow{
		Date:           now.Format(options.DateLayout),
		Underlying:     math.NaN(),
		IVRank:         math.NaN(),
		PoP:            math.NaN(),
		PctOfMaxProfit: math.NaN(),
	}
	if len(matched) == 0 {
		return row
	}

	for _, p := range matched {
		row.Delta += nanZero(p.Delta)
		row.BetaDelta += nanZero(p.BetaDelta)
		row.Theta += nanZero(p.Theta)
		row.PnL += nanZero(p.Ext)
	}
	row.Underlying = matched[0].Underlying
	row.IVRank = matched[0].IVRank
	row.PoP = matched[0].PoP

	if t.InitialCredit != 0 {
		row.PctOfMaxProfit = math.Round(row.PnL/t.InitialCredit*10000) / 100
	}
	return row
}

// AppendLog appends a row to a trade's daily log CSV, writing the
// header when the file is new.
func AppendLog(path string, row LogRow) error {
	info, statErr := os.Stat(path)
	empty := os.IsNotExist(statErr) || (statErr == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if empty {
		if err := w.Write(logHeader); err != nil {
			return err
		}
	}

	err = w.Write([]string{
		row.Date,
		cell(row.Underlying),
		cell(row.Delta),
		cell(row.BetaDelta),
		cell(row.Theta),
		cell(row.IVRank),
		cell(row.PoP),
		cell(row.PnL),
		cell(row.PctOfMaxProfit),
	})
	if err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func cell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nanZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
