package tracker

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optrack/options"
)

func writePositions(t *testing.T, rows ...string) string {
	t.Helper()

	header := `Symbol,Underlying,Strike Price,Call/Put,Exp Date,Delta,β Delta,Theta,IV Rank,PoP,Ext`
	content := header + "\n" + strings.Join(rows, "\n") + "\n"
	path := filepath.Join(t.TempDir(), "positions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPositions(t *testing.T) {
	t.Parallel()

	path := writePositions(t,
		`SPY 250328P450,"590.50",450,Put,Mar 28,-0.30,-0.28,0.15,"42.5",65%,120.00`,
		`SPY,"590.50",,,,1.00,0.95,,,,"0"`, // share row, no strike
		`SPY 250328P440,"590.50",440,Put,Mar 28,0.10,0.09,-0.05,"42.5",--,-45.00`,
	)

	positions, err := LoadPositions(path)
	require.NoError(t, err)
	require.Len(t, positions, 2)

	p := positions[0]
	assert.Equal(t, 450.0, p.Strike)
	assert.Equal(t, "Put", p.CallPut)
	assert.InDelta(t, -0.30, p.Delta, 1e-9)
	assert.InDelta(t, 65.0, p.PoP, 1e-9)
	assert.InDelta(t, 590.50, p.Underlying, 1e-9)
	assert.InDelta(t, 120.0, p.Ext, 1e-9)

	assert.True(t, math.IsNaN(positions[1].PoP))
}

func TestMatchLegs(t *testing.T) {
	t.Parallel()

	tr := &options.Trade{
		Status: options.StatusOpen,
		Legs: []options.Leg{
			{Type: options.Put, Side: options.Short, Strike: 450, Expiry: "2025-03-28"},
			{Type: options.Put, Side: options.Long, Strike: 440, Expiry: "2025-03-28", Status: options.LegClosed},
			{Type: options.Call, Side: options.Short, Strike: 470, Expiry: "2025-03-28"},
		},
	}
	positions := []Position{
		{Strike: 450, CallPut: "Put", ExpDate: "Mar 28"},
		{Strike: 440, CallPut: "Put", ExpDate: "Mar 28"},
	}

	matched := MatchLegs(tr, positions)
	// closed 440 is skipped, the 470 call has no position
	require.Len(t, matched, 1)
	assert.Equal(t, 450.0, matched[0].Strike)
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	tr := &options.Trade{InitialCredit: 200}
	matched := []Position{
		{Delta: -0.30, BetaDelta: -0.28, Theta: 0.15, IVRank: 42.5, PoP: 65, Underlying: 590.5, Ext: 120},
		{Delta: 0.10, BetaDelta: 0.09, Theta: -0.05, IVRank: 42.5, PoP: 60, Underlying: 590.5, Ext: -45},
	}

	now := time.Date(2025, 3, 28, 15, 0, 0, 0, time.UTC)
	row := Snapshot(tr, matched, now)

	assert.Equal(t, "2025-03-28", row.Date)
	assert.InDelta(t, -0.20, row.Delta, 1e-9)
	assert.InDelta(t, -0.19, row.BetaDelta, 1e-9)
	assert.InDelta(t, 0.10, row.Theta, 1e-9)
	assert.InDelta(t, 75.0, row.PnL, 1e-9)
	assert.InDelta(t, 42.5, row.IVRank, 1e-9)
	assert.InDelta(t, 65.0, row.PoP, 1e-9)
	// 75 / 200 * 100
	assert.InDelta(t, 37.5, row.PctOfMaxProfit, 1e-9)
}

func TestSnapshotNoCredit(t *testing.T) {
	t.Parallel()

	tr := &options.Trade{}
	row := Snapshot(tr, []Position{{Ext: 10}}, time.Now())
	assert.True(t, math.IsNaN(row.PctOfMaxProfit))
}

func TestAppendLogHeaderOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "spy_2025-03-28.csv")
	row := LogRow{Date: "2025-03-28", Underlying: 590.5, PnL: 75, PctOfMaxProfit: 37.5, IVRank: math.NaN(), PoP: math.NaN()}

	require.NoError(t, AppendLog(path, row))
	row.Date = "2025-03-29"
	require.NoError(t, AppendLog(path, row))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, logHeader, records[0])
	assert.Equal(t, "2025-03-28", records[1][0])
	assert.Equal(t, "2025-03-29", records[2][0])
	assert.Equal(t, "", records[1][5]) // NaN IV Rank renders empty
}
