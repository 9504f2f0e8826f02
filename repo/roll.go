package repo

import (
	"fmt"
	"slices"
	"strings"

	"optrack/options"
	"optrack/transactions"
)

// ApplyRoll folds a roll order into an existing open trade: closing
// fills mark the matching active legs closed, opening fills become new
// legs, and the collected credit accumulates.
func (r *Repo) ApplyRoll(file string, rows []transactions.Row) error {
	t, err := r.Load(file)
	if err != nil {
		return err
	}
	if !t.Open() {
		return fmt.Errorf("%s: %w", file, ErrAlreadyClosed)
	}

	var closeLegs, openLegs []options.Leg
	var orderID int64
	var date string
	for _, row := range rows {
		if !row.IsOption() {
			continue
		}
		if date == "" {
			date = row.Date
		}
		if orderID == 0 {
			orderID = row.OrderID
		}
		leg := row.Leg()
		if strings.Contains(row.Action, "TO_CLOSE") {
			closeLegs = append(closeLegs, leg)
		} else {
			openLegs = append(openLegs, leg)
		}
	}

	// Re-parsing the same export must not double-apply the roll.
	if orderID != 0 && slices.Contains(t.OrderIDs, orderID) {
		return nil
	}

	for _, c := range closeLegs {
		for i := range t.Legs {
			if t.Legs[i].Active() && t.Legs[i].Matches(c) {
				t.Legs[i].Status = options.LegClosed
				break
			}
		}
	}

	t.Legs = append(t.Legs, openLegs...)
	t.Legs = dedupeLegs(t.Legs)
	t.InitialCredit += transactions.NetCredit(rows)
	t.RollCount++
	t.AddTag("rolled")
	if orderID != 0 {
		t.OrderIDs = append(t.OrderIDs, orderID)
	}
	t.Notes = appendNote(t.Notes, fmt.Sprintf("Rolled on %s (order #%d)", date, orderID))

	return r.Save(file, t)
}

// ExpirationResult summarizes what ApplyExpirations changed.
type ExpirationResult struct {
	Updated  []string // records with newly expired legs
	Archived []string // records fully closed by expiration
}

// ApplyExpirations marks short legs expired from the export's
// Receive Deliver rows. A trade whose legs have all expired or closed
// is closed as of the expiration date and archived.
func (r *Repo) ApplyExpirations(rows []transactions.Row) (ExpirationResult, error) {
	var res ExpirationResult
	if len(rows) == 0 {
		return res, nil
	}

	entries, err := r.List("")
	if err != nil {
		return res, err
	}

	for _, e := range entries {
		t := e.Trade
		modified := false
		var notes []string
		var expiredOn string

		for _, row := range rows {
			expType := options.OptionType(strings.ToLower(row.CallOrPut))
			for i := range t.Legs {
				leg := &t.Legs[i]
				if leg.Active() &&
					leg.Side == options.Short &&
					leg.Strike == row.Strike &&
					leg.Expiry == row.Expiration &&
					leg.Type == expType &&
					leg.Contracts == row.Quantity {
					leg.Status = options.LegExpired
					notes = append(notes, fmt.Sprintf("Expired worthless: %s %g (%s)",
						strings.ToUpper(string(leg.Type)), leg.Strike, leg.Expiry))
					expiredOn = row.Expiration
					modified = true
					break
				}
			}
		}
		if !modified {
			continue
		}

		t.Notes = appendNote(t.Notes, strings.Join(notes, "\n"))

		if len(t.ActiveLegs()) == 0 {
			t.Status = options.StatusClosed
			t.Closed = expiredOn
			t.Notes = appendNote(t.Notes, fmt.Sprintf("Closed via expiration on %s", expiredOn))
			if err := r.Archive(e.File, t); err != nil {
				return res, err
			}
			res.Archived = append(res.Archived, e.File)
			continue
		}

		if err := r.Save(e.File, t); err != nil {
			return res, err
		}
		res.Updated = append(res.Updated, e.File)
	}
	return res, nil
}

func dedupeLegs(legs []options.Leg) []options.Leg {
	type key struct {
		t      options.OptionType
		strike float64
		expiry string
		side   options.Side
		ticker string
		status string
	}
	seen := map[key]bool{}
	var out []options.Leg
	for _, leg := range legs {
		k := key{leg.Type, leg.Strike, leg.Expiry, leg.Side, leg.Ticker, leg.Status}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, leg)
	}
	return out
}

func appendNote(notes, note string) string {
	if note == "" {
		return notes
	}
	if notes == "" {
		return note
	}
	return strings.TrimSpace(notes) + "\n\n" + note
}
