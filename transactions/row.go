package transactions

import (
	"fmt"
	"math"
	"strings"
	"time"

	"optrack/options"
)

// Row is one line of a broker activity export, parsed and normalized.
type Row struct {
	Date           string // YYYY-MM-DD
	Type           string
	SubType        string
	Action         string
	Symbol         string
	InstrumentType string
	Quantity       int
	AveragePrice   float64 // per contract, in cents as exported
	Value          float64
	Fees           float64
	Strike         float64
	CallOrPut      string
	Expiration     string // YYYY-MM-DD
	RootSymbol     string
	Underlying     string
	OrderID        int64
}

// IsOption reports whether the row describes an option contract.
func (r Row) IsOption() bool {
	cp := strings.ToUpper(r.CallOrPut)
	return strings.Contains(cp, "PUT") || strings.Contains(cp, "CALL")
}

// Leg converts a trade row into an option leg. Exported prices are
// quoted in cents per share; records store dollars.
func (r Row) Leg() options.Leg {
	side := options.Long
	if strings.Contains(r.Action, "SELL") {
		side = options.Short
	}
	return options.Leg{
		Type:       options.OptionType(strings.ToLower(r.CallOrPut)),
		Ticker:     r.RootSymbol,
		Side:       side,
		Strike:     r.Strike,
		Expiry:     r.Expiration,
		Contracts:  r.Quantity,
		EntryPrice: math.Abs(r.AveragePrice) / 100,
	}
}

var dateLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/06",
	"1/2/2006",
}

func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(options.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}
