package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/provider"
)

func newTestLedger(startingCash float64, mock *provider.MockFetcher) *Ledger {
	return NewLedger(startingCash, mock, analysis.New(mock))
}

func TestAddAndSummary(t *testing.T) {
	mock := &provider.MockFetcher{Price: 50, Bars: provider.GenerateBars(50, 120)}
	l := newTestLedger(100000, mock)

	out := l.Add(" aapl ", 100, 40)
	require.Empty(t, out.Error)
	assert.Equal(t, "Added 100 shares of AAPL at $40.00", out.Success)

	s := l.Summary()
	assert.Equal(t, 96000.0, s.Cash)
	require.Len(t, s.Positions, 1)

	p := s.Positions[0]
	assert.Equal(t, "AAPL", p.Ticker)
	assert.Equal(t, 100.0, p.Shares)
	assert.Equal(t, 40.0, p.EntryPrice)
	assert.Equal(t, 50.0, p.CurrentPrice)
	assert.Equal(t, 5000.0, p.MarketValue)
	assert.Equal(t, 1000.0, p.UnrealizedPnL)
	assert.Equal(t, 25.0, p.UnrealizedPnLPct)
	assert.NotEmpty(t, p.Signal)

	assert.Equal(t, 5000.0, s.TotalPositionValue)
	assert.Equal(t, 101000.0, s.TotalPortfolioValue)
	assert.Equal(t, 1000.0, s.TotalUnrealizedPnL)
	// 1000 gain over 96000 cash + 4000 cost basis
	assert.Equal(t, 1.0, s.TotalUnrealizedPnLPct)
	assert.Equal(t, 1, s.PositionCount)
}

func TestSummaryPnLPctUsesAccountBasis(t *testing.T) {
	mock := &provider.MockFetcher{Price: 60, Bars: provider.GenerateBars(60, 120)}
	l := newTestLedger(50000, mock)
	require.Empty(t, l.Add("AAPL", 100, 50).Error)

	s := l.Summary()
	assert.Equal(t, 1000.0, s.TotalUnrealizedPnL)
	// per-position pct is against its own cost, the account pct against
	// cash plus cost basis: 1000 / (45000 + 5000)
	assert.Equal(t, 20.0, s.Positions[0].UnrealizedPnLPct)
	assert.Equal(t, 2.0, s.TotalUnrealizedPnLPct)
}

func TestAddMergesAtAverageCost(t *testing.T) {
	mock := &provider.MockFetcher{Price: 50}
	l := newTestLedger(100000, mock)

	require.Empty(t, l.Add("AAPL", 100, 40).Error)
	require.Empty(t, l.Add("AAPL", 100, 60).Error)

	s := l.Summary()
	require.Len(t, s.Positions, 1)
	assert.Equal(t, 200.0, s.Positions[0].Shares)
	assert.Equal(t, 50.0, s.Positions[0].EntryPrice)
	assert.Equal(t, 90000.0, s.Cash)
}

func TestAddInsufficientCash(t *testing.T) {
	l := newTestLedger(1000, &provider.MockFetcher{Price: 50})
	out := l.Add("AAPL", 100, 50)
	assert.Equal(t, "Insufficient cash. Need $5000.00, have $1000.00", out.Error)
	assert.Empty(t, out.Success)
	assert.Equal(t, 1000.0, l.Summary().Cash)
}

func TestAddUsesLastCloseWhenPriceOmitted(t *testing.T) {
	l := newTestLedger(10000, &provider.MockFetcher{Price: 123.45})
	out := l.Add("AAPL", 10, 0)
	require.Empty(t, out.Error)
	assert.Equal(t, "Added 10 shares of AAPL at $123.45", out.Success)
}

func TestAddNoPriceAvailable(t *testing.T) {
	l := newTestLedger(10000, &provider.MockFetcher{Err: assert.AnError})
	out := l.Add("AAPL", 10, 0)
	assert.Equal(t, "Could not get current price for AAPL", out.Error)
}

func TestRemove(t *testing.T) {
	mock := &provider.MockFetcher{Price: 50}
	l := newTestLedger(100000, mock)
	require.Empty(t, l.Add("AAPL", 100, 40).Error)

	// partial sale at the current price
	qty := 50.0
	out := l.Remove("AAPL", &qty)
	require.Empty(t, out.Error)
	assert.Equal(t, "Sold 50 shares of AAPL for $2500.00, PnL: $500.00", out.Success)

	// the remainder, sold whole
	out = l.Remove("AAPL", nil)
	require.Empty(t, out.Error)
	assert.Equal(t, "Sold all 50 shares of AAPL for $2500.00, PnL: $500.00", out.Success)

	s := l.Summary()
	assert.Empty(t, s.Positions)
	assert.Equal(t, 101000.0, s.Cash)
}

func TestRemoveMoreThanHeldClosesPosition(t *testing.T) {
	l := newTestLedger(100000, &provider.MockFetcher{Price: 50})
	require.Empty(t, l.Add("AAPL", 10, 50).Error)

	qty := 500.0
	out := l.Remove("AAPL", &qty)
	assert.Equal(t, "Sold all 10 shares of AAPL for $500.00, PnL: $0.00", out.Success)
	assert.Equal(t, 0, l.Summary().PositionCount)
}

func TestRemoveNoPosition(t *testing.T) {
	l := newTestLedger(100000, &provider.MockFetcher{Price: 50})
	out := l.Remove("MSFT", nil)
	assert.Equal(t, "No position in MSFT", out.Error)
}

func TestRemoveFallsBackToEntryPrice(t *testing.T) {
	mock := &provider.MockFetcher{Price: 50}
	l := newTestLedger(100000, mock)
	require.Empty(t, l.Add("AAPL", 10, 40).Error)

	// price feed breaks; the sale settles at entry price with zero PnL
	mock.Err = assert.AnError
	out := l.Remove("AAPL", nil)
	assert.Equal(t, "Sold all 10 shares of AAPL for $400.00, PnL: $0.00", out.Success)
}
