package transactions

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"optrack/options"
)

// optionInstruments are the instrument types the tracker cares about.
var optionInstruments = map[string]bool{
	"Equity Option": true,
	"Future Option": true,
}

// LoadFile parses a broker activity export. Rows missing both an
// action and a symbol (cash sweeps, header junk) are skipped;
// anything else malformed aborts the load.
func LoadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export %s is empty", path)
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}

	var rows []Row
	for n, rec := range records[1:] {
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		if field("Action") == "" && field("Symbol") == "" {
			continue
		}

		row, err := parseRow(field)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(field func(string) string) (Row, error) {
	row := Row{
		Type:           field("Type"),
		SubType:        field("Sub Type"),
		Action:         field("Action"),
		Symbol:         field("Symbol"),
		InstrumentType: field("Instrument Type"),
		CallOrPut:      field("Call or Put"),
		RootSymbol:     field("Root Symbol"),
		Underlying:     field("Underlying Symbol"),
	}

	var err error
	if row.Date, err = normalizeDate(field("Date")); err != nil {
		return Row{}, err
	}
	if exp := field("Expiration Date"); exp != "" {
		if row.Expiration, err = normalizeDate(exp); err != nil {
			return Row{}, err
		}
	}
	if row.Quantity, err = parseInt(field("Quantity")); err != nil {
		return Row{}, fmt.Errorf("quantity: %w", err)
	}
	if row.AveragePrice, err = parseFloat(field("Average Price")); err != nil {
		return Row{}, fmt.Errorf("average price: %w", err)
	}
	if row.Value, err = parseFloat(field("Value")); err != nil {
		return Row{}, fmt.Errorf("value: %w", err)
	}
	if row.Fees, err = parseFloat(field("Fees")); err != nil {
		return Row{}, fmt.Errorf("fees: %w", err)
	}
	if row.Strike, err = parseFloat(field("Strike Price")); err != nil {
		return Row{}, fmt.Errorf("strike: %w", err)
	}
	if s := field("Order #"); s != "" {
		if row.OrderID, err = strconv.ParseInt(s, 10, 64); err != nil {
			return Row{}, fmt.Errorf("order #: %w", err)
		}
	}
	return row, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" || s == "--" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	return strconv.Atoi(s)
}

// Trades filters for option trade fills.
func Trades(rows []Row) []Row {
	var out []Row
	for _, row := range rows {
		if row.Type == "Trade" && optionInstruments[row.InstrumentType] {
			out = append(out, row)
		}
	}
	return out
}

// Expirations filters for option expiration events.
func Expirations(rows []Row) []Row {
	var out []Row
	for _, row := range rows {
		if row.Type == "Receive Deliver" && row.SubType == "Expiration" {
			out = append(out, row)
		}
	}
	return out
}

// GroupByOrder groups trade rows by order number, with order IDs
// returned in ascending order for deterministic processing.
func GroupByOrder(rows []Row) ([]int64, map[int64][]Row) {
	grouped := map[int64][]Row{}
	for _, row := range rows {
		grouped[row.OrderID] = append(grouped[row.OrderID], row)
	}

	ids := make([]int64, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, grouped
}

// ComboKey identifies a same-day group of fills on one underlying.
type ComboKey struct {
	Date       string
	Underlying string
}

func (k ComboKey) String() string {
	return fmt.Sprintf("%s on %s", k.Underlying, k.Date)
}

// GroupByTickerDate groups trade rows by (date, normalized underlying).
// Multi-order strategies entered as separate fills on the same day end
// up in one group.
func GroupByTickerDate(rows []Row) ([]ComboKey, map[ComboKey][]Row) {
	grouped := map[ComboKey][]Row{}
	for _, row := range rows {
		sym := row.Underlying
		if sym == "" {
			if fields := strings.Fields(row.Symbol); len(fields) > 0 {
				sym = fields[0]
			}
		}
		key := ComboKey{Date: row.Date, Underlying: options.NormalizeTicker(sym)}
		grouped[key] = append(grouped[key], row)
	}

	keys := make([]ComboKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].Underlying < keys[j].Underlying
	})
	return keys, grouped
}

// IsRollCandidate reports whether an order mixes closing and opening
// legs, the signature of a roll.
func IsRollCandidate(rows []Row) bool {
	var hasClose, hasOpen bool
	for _, row := range rows {
		if strings.Contains(row.Action, "CLOSE") {
			hasClose = true
		}
		if strings.Contains(row.Action, "OPEN") {
			hasOpen = true
		}
	}
	return hasClose && hasOpen
}
