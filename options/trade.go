package options

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Trade statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// DateLayout is the date format used throughout trade records.
const DateLayout = "2006-01-02"

// Trade is one multi-leg options position tracked from open to close.
// Records are persisted as YAML, one file per trade, named
// <ticker>_<opened>.yaml.
type Trade struct {
	Strategy      string   `yaml:"strategy"`
	Ticker        string   `yaml:"ticker"`
	Opened        string   `yaml:"opened"` // YYYY-MM-DD
	Status        string   `yaml:"status"`
	InitialCredit float64  `yaml:"initial_credit"`
	OrderIDs      []int64  `yaml:"order_ids"`
	Legs          []Leg    `yaml:"legs"`
	Notes         string   `yaml:"notes"`
	Tags          []string `yaml:"tags"`
	RollCount     int      `yaml:"roll_count,omitempty"`
	Closed        string   `yaml:"closed,omitempty"`
	RealizedPnL   float64  `yaml:"realized_pnl,omitempty"`
}

// FileName returns the conventional record filename for this trade.
func (t *Trade) FileName() string {
	return fmt.Sprintf("%s_%s.yaml", strings.ToLower(t.Ticker), t.Opened)
}

// Open reports whether the trade is still open.
func (t *Trade) Open() bool {
	return t.Status == StatusOpen
}

// ActiveLegs returns the legs that have not been closed or expired.
func (t *Trade) ActiveLegs() []Leg {
	var active []Leg
	for _, leg := range t.Legs {
		if leg.Active() {
			active = append(active, leg)
		}
	}
	return active
}

// HasTag reports whether the trade carries the given tag.
func (t *Trade) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// AddTag adds a tag if not already present.
func (t *Trade) AddTag(tag string) {
	if !t.HasTag(tag) {
		t.Tags = append(t.Tags, tag)
	}
}

// HoldDays returns the number of days between open and close. Zero when
// either date is missing or unparseable.
func (t *Trade) HoldDays() int {
	opened, err := time.Parse(DateLayout, t.Opened)
	if err != nil {
		return 0
	}
	closed, err := time.Parse(DateLayout, t.Closed)
	if err != nil {
		return 0
	}
	return int(closed.Sub(opened).Hours() / 24)
}

// InitialCredit computes the net premium across legs: short legs
// collect premium, long legs pay it. Rounded to cents.
func InitialCredit(legs []Leg) float64 {
	credit := 0.0
	for _, leg := range legs {
		sign := 1.0
		if leg.Side == Long {
			sign = -1.0
		}
		credit += sign * leg.EntryPrice * float64(leg.Contracts)
	}
	return math.Round(credit*100) / 100
}
