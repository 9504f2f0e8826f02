// Package charts renders per-trade PNG charts from the daily log CSVs,
// one image per metric over time.
package charts

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"optrack/options"
)

// Metrics charted from each daily log, in render order.
var Metrics = []string{"PnL", "% of Max Profit", "Beta Delta", "IV Rank", "PoP", "Theta"}

type point struct {
	date  time.Time
	value float64
}

// Render draws one PNG per metric from a trade's daily log and returns
// the paths written. Metrics with no readings are skipped.
func Render(logPath, outDir string) ([]string, error) {
	series, err := loadSeries(logPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", outDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(logPath), ".csv")

	var written []string
	for _, metric := range Metrics {
		pts := series[metric]
		if len(pts) == 0 {
			continue
		}
		name := fmt.Sprintf("%s_%s.png", base, strings.ReplaceAll(metric, " ", "_"))
		out := filepath.Join(outDir, name)
		if err := renderMetric(metric, base, pts, out); err != nil {
			return written, fmt.Errorf("render %s: %w", name, err)
		}
		written = append(written, out)
	}
	return written, nil
}

// loadSeries reads a daily log into per-metric time series. Empty
// cells (a reading the tracker could not take that day) are skipped.
func loadSeries(path string) (map[string][]point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read log %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("log %s is empty", path)
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	dateCol, ok := cols["Date"]
	if !ok {
		return nil, fmt.Errorf("log %s has no Date column", path)
	}

	series := map[string][]point{}
	for _, rec := range records[1:] {
		if dateCol >= len(rec) {
			continue
		}
		date, err := time.Parse(options.DateLayout, rec[dateCol])
		if err != nil {
			return nil, fmt.Errorf("log %s: %w", path, err)
		}

		for _, metric := range Metrics {
			i, ok := cols[metric]
			if !ok || i >= len(rec) || rec[i] == "" {
				continue
			}
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, fmt.Errorf("log %s, column %s: %w", path, metric, err)
			}
			series[metric] = append(series[metric], point{date: date, value: v})
		}
	}
	return series, nil
}

func renderMetric(metric, base string, pts []point, out string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s over Time - %s", metric, base)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = metric
	p.X.Tick.Marker = plot.TimeTicks{Format: options.DateLayout}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = float64(pt.date.Unix())
		xys[i].Y = pt.value
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 0, G: 128, B: 255, A: 255}
	line.Width = vg.Points(2)
	p.Add(line, points)

	return p.Save(10*vg.Inch, 4*vg.Inch, out)
}
