package transactions

import (
	"fmt"
	"math"
	"slices"

	"optrack/options"
)

// NetCredit returns abs(sum of Value) minus abs(sum of Fees) for the
// option fills in a group, rounded to cents. Direction is not
// preserved: a debit-opened group still reports a positive figure, and
// the result only goes negative when fees exceed the gross premium.
func NetCredit(rows []Row) float64 {
	var gross, fees float64
	for _, row := range rows {
		if !row.IsOption() {
			continue
		}
		gross += row.Value
		fees += row.Fees
	}
	return math.Round((math.Abs(gross)-math.Abs(fees))*100) / 100
}

// BuildTrade assembles a new open trade record from one group of fills
// (a single order, or a same-day combo across orders).
func BuildTrade(rows []Row) (*options.Trade, error) {
	var legs []options.Leg
	for _, row := range rows {
		if !row.IsOption() {
			continue
		}
		legs = append(legs, row.Leg())
	}
	if len(legs) == 0 {
		return nil, fmt.Errorf("no option legs in group")
	}

	var orderIDs []int64
	for _, row := range rows {
		if row.OrderID != 0 && !slices.Contains(orderIDs, row.OrderID) {
			orderIDs = append(orderIDs, row.OrderID)
		}
	}
	slices.Sort(orderIDs)

	sample := rows[0]
	ticker := sample.Underlying
	if ticker == "" {
		ticker = sample.RootSymbol
	}

	return &options.Trade{
		Strategy:      options.DetectStrategy(legs),
		Ticker:        options.NormalizeTicker(ticker),
		Opened:        sample.Date,
		Status:        options.StatusOpen,
		InitialCredit: NetCredit(rows),
		OrderIDs:      orderIDs,
		Legs:          legs,
		Tags:          []string{},
	}, nil
}
