// Package performance aggregates closed trades into summary
// statistics. It owns no state: every report is recomputed from the
// archive or the journal on each invocation.
package performance

import (
	"sort"
	"strings"

	"optrack/journal"
	"optrack/options"
)

// ClosedTrade is the analyzer's view of one finished trade.
type ClosedTrade struct {
	File      string
	Ticker    string
	Strategy  string
	Tags      []string
	Opened    string
	Closed    string
	HoldDays  int
	PnL       float64
	RollCount int
}

// FromTrade converts an archived trade record.
func FromTrade(file string, t *options.Trade) ClosedTrade {
	return ClosedTrade{
		File:      file,
		Ticker:    t.Ticker,
		Strategy:  t.Strategy,
		Tags:      t.Tags,
		Opened:    t.Opened,
		Closed:    t.Closed,
		HoldDays:  t.HoldDays(),
		PnL:       t.RealizedPnL,
		RollCount: t.RollCount,
	}
}

// FromRecord converts a journal row.
func FromRecord(rec journal.TradeRecord) ClosedTrade {
	var tags []string
	if rec.Tags != "" {
		tags = strings.Split(rec.Tags, ",")
	}
	return ClosedTrade{
		File:      rec.File,
		Ticker:    rec.Ticker,
		Strategy:  rec.Strategy,
		Tags:      tags,
		Opened:    rec.Opened.Format(options.DateLayout),
		Closed:    rec.Closed.Format(options.DateLayout),
		HoldDays:  rec.HoldDays,
		PnL:       rec.RealizedPnL,
		RollCount: rec.RollCount,
	}
}

// Summary holds the headline statistics over a set of closed trades.
type Summary struct {
	Total       int
	Wins        int
	Losses      int
	WinRate     float64 // in [0, 1]
	TotalPnL    float64
	AvgPnL      float64
	AvgHoldDays float64
	Rolled      int
}

// Summarize computes the headline statistics. A win is any trade with
// positive P&L; break-even counts as a loss.
func Summarize(trades []ClosedTrade) Summary {
	s := Summary{Total: len(trades)}
	if s.Total == 0 {
		return s
	}

	holdDays := 0
	for _, t := range trades {
		if t.PnL > 0 {
			s.Wins++
		} else {
			s.Losses++
		}
		s.TotalPnL += t.PnL
		holdDays += t.HoldDays
		if t.RollCount > 0 {
			s.Rolled++
		}
	}
	s.WinRate = float64(s.Wins) / float64(s.Total)
	s.AvgPnL = s.TotalPnL / float64(s.Total)
	s.AvgHoldDays = float64(holdDays) / float64(s.Total)
	return s
}

// GroupStat is one row of a breakdown table.
type GroupStat struct {
	Key   string
	Count int
	Total float64
	Mean  float64
}

// ByStrategy breaks P&L down per strategy type.
func ByStrategy(trades []ClosedTrade) []GroupStat {
	return groupBy(trades, func(t ClosedTrade) []string { return []string{t.Strategy} })
}

// ByTicker breaks P&L down per underlying.
func ByTicker(trades []ClosedTrade) []GroupStat {
	return groupBy(trades, func(t ClosedTrade) []string { return []string{t.Ticker} })
}

// ByTag breaks P&L down per tag; a trade contributes to every tag it
// carries.
func ByTag(trades []ClosedTrade) []GroupStat {
	return groupBy(trades, func(t ClosedTrade) []string { return t.Tags })
}

func groupBy(trades []ClosedTrade, keys func(ClosedTrade) []string) []GroupStat {
	counts := map[string]int{}
	totals := map[string]float64{}
	for _, t := range trades {
		for _, key := range keys(t) {
			counts[key]++
			totals[key] += t.PnL
		}
	}

	stats := make([]GroupStat, 0, len(counts))
	for key, n := range counts {
		stats = append(stats, GroupStat{
			Key:   key,
			Count: n,
			Total: totals[key],
			Mean:  totals[key] / float64(n),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Key < stats[j].Key })
	return stats
}
