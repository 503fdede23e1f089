package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/provider"
)

func fp(v float64) *float64 { return &v }

func flatBars(start time.Time, closes []float64) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1e6}
	}
	return bars
}

func newEngine(mock *provider.MockFetcher) *Engine {
	return NewEngine(mock, analysis.New(mock))
}

func TestEarningsAlwaysLong(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110}
	// event on day index 4; entry = close of day 3 (100), exit = close of day 5 (110)
	event := model.EarningsEvent{ReportDate: model.NewDate(start.AddDate(0, 0, 4))}

	e := newEngine(&provider.MockFetcher{
		Bars:   flatBars(start, closes),
		Events: []model.EarningsEvent{event},
	})
	result, err := e.Earnings("AAPL", StrategyAlwaysLong, 365)
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if result.TotalTrades != 1 {
		t.Fatalf("total_trades = %d, want 1", result.TotalTrades)
	}
	tr := result.Trades[0]
	if tr.EntryPrice != 100 || tr.ExitPrice != 110 || tr.Position != 1 {
		t.Errorf("trade = %+v, want entry 100 exit 110 long", tr)
	}
	if math.Abs(tr.PnLPct-10) > 1e-9 {
		t.Errorf("pnl = %v, want 10", tr.PnLPct)
	}
	if result.WinRate != 1 || math.Abs(result.AvgReturnPct-10) > 1e-9 {
		t.Errorf("totals = %+v", result.BacktestTotals)
	}
	if tr.Signal != StrategyAlwaysLong {
		t.Errorf("signal = %q, want %q", tr.Signal, StrategyAlwaysLong)
	}
}

func TestEarningsSurpriseStrategy(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 - float64(i) // steady decline, shorts win
	}
	events := []model.EarningsEvent{
		// double beat: long into a falling tape loses
		{ReportDate: model.NewDate(start.AddDate(0, 0, 30)), EPSSurprisePct: fp(4), RevenueSurprisePct: fp(1)},
		// big miss: short wins
		{ReportDate: model.NewDate(start.AddDate(0, 0, 20)), EPSSurprisePct: fp(-8)},
		// hold: no trade
		{ReportDate: model.NewDate(start.AddDate(0, 0, 10)), EPSSurprisePct: fp(-1)},
	}
	e := newEngine(&provider.MockFetcher{Bars: flatBars(start, closes), Events: events})

	result, err := e.Earnings("AAPL", StrategySurprise, 365)
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if result.TotalTrades != 2 {
		t.Fatalf("total_trades = %d, want 2 (hold event skipped)", result.TotalTrades)
	}
	var long, short *model.EarningsTrade
	for i := range result.Trades {
		switch result.Trades[i].Position {
		case 1:
			long = &result.Trades[i]
		case -1:
			short = &result.Trades[i]
		}
	}
	if long == nil || short == nil {
		t.Fatalf("trades = %+v, want one long and one short", result.Trades)
	}
	if long.Signal != "STRONG_BUY" {
		t.Errorf("long signal = %q, want STRONG_BUY", long.Signal)
	}
	if short.Signal != "SELL" {
		t.Errorf("short signal = %q, want SELL", short.Signal)
	}
	if long.PnLPct >= 0 {
		t.Errorf("long pnl = %v, want negative in a decline", long.PnLPct)
	}
	if short.PnLPct <= 0 {
		t.Errorf("short pnl = %v, want positive in a decline", short.PnLPct)
	}
	if result.WinRate != 0.5 {
		t.Errorf("win_rate = %v, want 0.5", result.WinRate)
	}
}

func TestEarningsVolatilityStrategy(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	events := []model.EarningsEvent{
		{ReportDate: model.NewDate(start.AddDate(0, 0, 30)), EPSSurprisePct: fp(-3)}, // |surprise| > 2: trade
		{ReportDate: model.NewDate(start.AddDate(0, 0, 20)), EPSSurprisePct: fp(1)},  // too small: skip
		{ReportDate: model.NewDate(start.AddDate(0, 0, 10))},                         // unknown: skip
	}
	e := newEngine(&provider.MockFetcher{Bars: flatBars(start, closes), Events: events})

	result, err := e.Earnings("AAPL", StrategyVolatility, 365)
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if result.TotalTrades != 1 {
		t.Errorf("total_trades = %d, want 1", result.TotalTrades)
	}
	if result.Trades[0].Position != 1 {
		t.Errorf("position = %d, want long", result.Trades[0].Position)
	}
}

func TestEarningsErrors(t *testing.T) {
	e := newEngine(&provider.MockFetcher{Bars: provider.GenerateBars(100, 60)})
	if _, err := e.Earnings("AAPL", StrategyAlwaysLong, 365); err == nil || err.Error() != "No earnings events found" {
		t.Errorf("err = %v, want No earnings events found", err)
	}

	event := model.EarningsEvent{ReportDate: model.NewDate(time.Now())}
	e = newEngine(&provider.MockFetcher{
		Bars:   []model.PriceBar{},
		Events: []model.EarningsEvent{event},
	})
	if _, err := e.Earnings("AAPL", StrategyAlwaysLong, 365); err == nil || err.Error() != "No price data" {
		t.Errorf("err = %v, want No price data", err)
	}

	// event far outside the price series yields no alignable trades
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	e = newEngine(&provider.MockFetcher{
		Bars:   flatBars(start, []float64{100, 100, 100}),
		Events: []model.EarningsEvent{{ReportDate: model.NewDate(start.AddDate(0, 0, 60))}},
	})
	if _, err := e.Earnings("AAPL", StrategyAlwaysLong, 365); err == nil || err.Error() != "No valid trades found" {
		t.Errorf("err = %v, want No valid trades found", err)
	}
}

func TestEarningsTradesCappedAtTen(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 400)
	for i := range closes {
		closes[i] = 100 + 0.1*float64(i)
	}
	events := make([]model.EarningsEvent, 14)
	for i := range events {
		events[i] = model.EarningsEvent{ReportDate: model.NewDate(start.AddDate(0, 0, 380-i*25))}
	}
	e := newEngine(&provider.MockFetcher{Bars: flatBars(start, closes), Events: events})

	result, err := e.Earnings("AAPL", StrategyAlwaysLong, 730)
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if result.TotalTrades != 14 {
		t.Errorf("total_trades = %d, want 14", result.TotalTrades)
	}
	if len(result.Trades) != 10 {
		t.Errorf("trades payload = %d, want capped at 10", len(result.Trades))
	}
}
