package tracker

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"optrack/options"
)

// Position is one row of the broker's positions export, carrying the
// live greeks and P&L used for the daily log. Optional columns that
// failed to parse are NaN.
type Position struct {
	Strike     float64
	CallPut    string // "Put" or "Call"
	ExpDate    string // broker display format, e.g. "Mar 28"
	Delta      float64
	BetaDelta  float64
	Theta      float64
	IVRank     float64
	PoP        float64
	Underlying float64
	Ext        float64
}

// LoadPositions parses the broker positions CSV. Column names are
// trimmed of stray whitespace before lookup.
func LoadPositions(path string) ([]Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open positions: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read positions %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("positions file %s is empty", path)
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}

	var positions []Position
	for _, rec := range records[1:] {
		field := func(names ...string) string {
			for _, name := range names {
				if i, ok := cols[name]; ok && i < len(rec) {
					return strings.TrimSpace(rec[i])
				}
			}
			return ""
		}

		strike, err := number(field("Strike Price"))
		if err != nil || math.IsNaN(strike) {
			continue // non-option rows (shares, futures) have no strike
		}

		p := Position{
			Strike:  strike,
			CallPut: field("Call/Put"),
			ExpDate: field("Exp Date"),
		}
		p.Delta = numberOrNaN(field("Delta"))
		p.BetaDelta = numberOrNaN(field("β Delta", "Beta Delta"))
		p.Theta = numberOrNaN(field("Theta"))
		p.IVRank = numberOrNaN(field("IV Rank"))
		p.PoP = numberOrNaN(strings.TrimSuffix(field("PoP"), "%"))
		p.Underlying = numberOrNaN(field("Underlying"))
		p.Ext = numberOrNaN(field("Ext"))

		positions = append(positions, p)
	}
	return positions, nil
}

// MatchLegs pairs each active leg of a trade with a current position
// by strike, option type, and expiration day.
func MatchLegs(t *options.Trade, positions []Position) []Position {
	var matched []Position
	for _, leg := range t.ActiveLegs() {
		day := leg.Expiry
		if len(day) >= 2 {
			day = day[len(day)-2:]
		}
		for _, p := range positions {
			if p.Strike == leg.Strike &&
				strings.EqualFold(p.CallPut, string(leg.Type)) &&
				strings.Contains(p.ExpDate, day) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

func number(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "--" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func numberOrNaN(s string) float64 {
	v, err := number(s)
	if err != nil {
		return math.NaN()
	}
	return v
}
