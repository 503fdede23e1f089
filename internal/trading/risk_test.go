package trading

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/provider"
)

func fp(v float64) *float64 { return &v }

func TestRiskMetricsFromItemsEmpty(t *testing.T) {
	risk := RiskMetricsFromItems(nil)
	assert.Zero(t, risk.AvgMove)
	assert.Zero(t, risk.MaxMove)
	assert.Zero(t, risk.Volatility)
	assert.Zero(t, risk.WinRate)
	assert.Zero(t, risk.SampleSize)
}

func TestRiskMetricsFromItems(t *testing.T) {
	items := []model.ReactionItem{
		{NextDayReturnPct: fp(2)},
		{NextDayReturnPct: fp(-4)},
		{NextDayReturnPct: fp(6)},
		{}, // no data, skipped
	}
	risk := RiskMetricsFromItems(items)

	assert.InDelta(t, 4.0, risk.AvgMove, 1e-9)
	assert.InDelta(t, 6.0, risk.MaxMove, 1e-9)
	// population stddev of |2|, |-4|, |6|
	assert.InDelta(t, math.Sqrt(8.0/3.0), risk.Volatility, 1e-9)
	assert.InDelta(t, 2.0/3.0, risk.WinRate, 1e-9)
	assert.Equal(t, 3, risk.SampleSize)
}

func TestRiskMetricsZeroReturnIsNotAWin(t *testing.T) {
	items := []model.ReactionItem{
		{NextDayReturnPct: fp(0)},
		{NextDayReturnPct: fp(1)},
	}
	risk := RiskMetricsFromItems(items)
	assert.InDelta(t, 0.5, risk.WinRate, 1e-9)
	assert.Equal(t, 2, risk.SampleSize)
}

func TestAlerts(t *testing.T) {
	soon := model.NewDate(time.Now().UTC().AddDate(0, 0, 3))
	mock := &provider.MockFetcher{
		Bars: provider.GenerateBars(100, 60),
		Events: []model.EarningsEvent{
			{ReportDate: soon, EPSEstimate: fp(1.5)},
		},
		InfoMap: map[string]any{
			"trailingPE":    10.0,
			"profitMargins": 0.3,
			"currentPrice":  100.0,
		},
	}
	svc := NewService(analysis.New(mock))

	alerts := svc.Alerts([]string{"AAPL"})
	require.NotEmpty(t, alerts)

	types := map[string]model.Alert{}
	for _, a := range alerts {
		types[a.Type] = a
		assert.Equal(t, "AAPL", a.Ticker)
	}
	assert.Contains(t, types, AlertValueOpportunity)
	assert.Contains(t, types, AlertEarningsSoon)
	assert.NotContains(t, types, AlertHighVolatility)
	assert.Contains(t, types[AlertEarningsSoon].Message, "Earnings in 3 days")
}

func TestAlertsSkipsFailingTickers(t *testing.T) {
	svc := NewService(analysis.New(&provider.MockFetcher{Err: assert.AnError}))
	assert.Empty(t, svc.Alerts([]string{"AAPL", "MSFT"}))
}

func TestExport(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1e6}
	}
	mock := &provider.MockFetcher{
		Bars: bars,
		Events: []model.EarningsEvent{
			{ReportDate: model.NewDate(start.AddDate(0, 0, 40)), EPSSurprisePct: fp(3), RevenueSurprisePct: fp(2)},
			{ReportDate: model.NewDate(start.AddDate(0, 0, 20)), EPSSurprisePct: fp(-7)},
		},
	}
	svc := NewService(analysis.New(mock))

	rows := svc.Export([]string{"aapl"})
	require.Len(t, rows, 2)

	assert.Equal(t, "AAPL", rows[0].Ticker)
	assert.Equal(t, "STRONG_BUY", rows[0].Signal)
	assert.Equal(t, "SELL", rows[1].Signal)
	require.NotNil(t, rows[0].NextDayReturnPct)
	assert.InDelta(t, (141.0/140.0-1)*100, *rows[0].NextDayReturnPct, 1e-9)
	assert.Greater(t, rows[0].AvgVolatility, 0.0)
	assert.Equal(t, rows[0].WinRate, rows[1].WinRate)
}

func TestExportSkipsFailingTickers(t *testing.T) {
	svc := NewService(analysis.New(&provider.MockFetcher{Err: assert.AnError}))
	assert.Empty(t, svc.Export([]string{"AAPL"}))
}
