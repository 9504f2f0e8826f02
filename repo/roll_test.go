package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optrack/options"
	"optrack/transactions"
)

func rollRows() []transactions.Row {
	return []transactions.Row{
		{
			Date: "2025-04-04", Action: "BUY_TO_CLOSE", CallOrPut: "PUT",
			RootSymbol: "SPY", Strike: 450, Expiration: "2025-03-28",
			Quantity: 1, AveragePrice: -300, Value: -300, Fees: 1.20, OrderID: 2002,
		},
		{
			Date: "2025-04-04", Action: "SELL_TO_OPEN", CallOrPut: "PUT",
			RootSymbol: "SPY", Strike: 450, Expiration: "2025-04-25",
			Quantity: 1, AveragePrice: 400, Value: 400, Fees: 1.20, OrderID: 2002,
		},
	}
}

func TestApplyRoll(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	file, err := r.Create(sampleTrade())
	require.NoError(t, err)

	require.NoError(t, r.ApplyRoll(file, rollRows()))

	got, err := r.Load(file)
	require.NoError(t, err)

	assert.Equal(t, 1, got.RollCount)
	assert.True(t, got.HasTag("rolled"))
	assert.Contains(t, got.Notes, "Rolled on 2025-04-04 (order #2002)")
	assert.Contains(t, got.OrderIDs, int64(2002))
	// original credit 127.60 plus roll credit |400-300| - 2.40
	assert.InDelta(t, 225.20, got.InitialCredit, 1e-9)

	// the rolled-away short is closed, the new short is active
	require.Len(t, got.Legs, 3)
	assert.Equal(t, options.LegClosed, got.Legs[0].Status)
	active := got.ActiveLegs()
	require.Len(t, active, 2)
	assert.Equal(t, "2025-04-25", active[1].Expiry)
}

func TestApplyRollTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	file, err := r.Create(sampleTrade())
	require.NoError(t, err)

	require.NoError(t, r.ApplyRoll(file, rollRows()))
	require.NoError(t, r.ApplyRoll(file, rollRows()))

	got, err := r.Load(file)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RollCount)
	assert.Len(t, got.Legs, 3)
	assert.InDelta(t, 225.20, got.InitialCredit, 1e-9)
}

func TestApplyRollClosedTrade(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	tr := sampleTrade()
	file, err := r.Create(tr)
	require.NoError(t, err)

	tr.Status = options.StatusClosed
	tr.Closed = "2025-04-02"
	require.NoError(t, r.Archive(file, tr))

	err = r.ApplyRoll(file, rollRows())
	assert.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestApplyExpirations(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	tr := &options.Trade{
		Strategy: options.StrategyShortPut,
		Ticker:   "SPY",
		Opened:   "2025-03-01",
		Status:   options.StatusOpen,
		Legs: []options.Leg{
			{Type: options.Put, Ticker: "SPY", Side: options.Short, Strike: 450, Expiry: "2025-03-28", Contracts: 1, EntryPrice: 2.50},
		},
	}
	file, err := r.Create(tr)
	require.NoError(t, err)

	rows := []transactions.Row{{
		Type: "Receive Deliver", SubType: "Expiration",
		CallOrPut: "PUT", Strike: 450, Expiration: "2025-03-28", Quantity: 1,
	}}

	res, err := r.ApplyExpirations(rows)
	require.NoError(t, err)
	assert.Empty(t, res.Updated)
	assert.Equal(t, []string{file}, res.Archived)

	got, err := r.LoadArchived(file)
	require.NoError(t, err)
	assert.Equal(t, options.StatusClosed, got.Status)
	assert.Equal(t, "2025-03-28", got.Closed)
	assert.Contains(t, got.Notes, "Expired worthless: PUT 450 (2025-03-28)")
	assert.Contains(t, got.Notes, "Closed via expiration on 2025-03-28")
}

func TestApplyExpirationsPartial(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	file, err := r.Create(sampleTrade())
	require.NoError(t, err)

	// only the short 450 expires; the long 440 stays on
	rows := []transactions.Row{{
		Type: "Receive Deliver", SubType: "Expiration",
		CallOrPut: "PUT", Strike: 450, Expiration: "2025-03-28", Quantity: 1,
	}}

	res, err := r.ApplyExpirations(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, res.Updated)
	assert.Empty(t, res.Archived)

	got, err := r.Load(file)
	require.NoError(t, err)
	assert.Equal(t, options.StatusOpen, got.Status)
	assert.Len(t, got.ActiveLegs(), 1)
}
