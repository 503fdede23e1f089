package analysis

import (
	"reflect"
	"testing"
	"time"

	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/provider"
)

func dailyBars(start time.Time, closes []float64) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}

func TestTechnicalSnapshot(t *testing.T) {
	a := New(&provider.MockFetcher{Bars: provider.GenerateBars(100, 250)})

	snap, err := a.TechnicalSnapshot("  aapl ", "")
	if err != nil {
		t.Fatalf("TechnicalSnapshot: %v", err)
	}
	if snap.Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", snap.Ticker)
	}
	if snap.CurrentPrice <= 0 {
		t.Errorf("current price = %v, want positive", snap.CurrentPrice)
	}
	if snap.RSI == nil || *snap.RSI < 0 || *snap.RSI > 100 {
		t.Errorf("rsi = %v, want within [0,100]", snap.RSI)
	}
	if snap.MA200 == nil {
		t.Error("ma_200 should be present with 250 bars")
	}
	if snap.OverallSignal == "" {
		t.Error("overall signal missing")
	}
	if snap.Support == nil || snap.Resistance == nil {
		t.Error("support/resistance missing")
	}
	if *snap.Support > *snap.Resistance {
		t.Errorf("support %v above resistance %v", *snap.Support, *snap.Resistance)
	}
}

func TestTechnicalSnapshotIdempotent(t *testing.T) {
	a := New(&provider.MockFetcher{Bars: provider.GenerateBars(100, 120)})
	first, err := a.TechnicalSnapshot("MSFT", "6mo")
	if err != nil {
		t.Fatalf("TechnicalSnapshot: %v", err)
	}
	second, err := a.TechnicalSnapshot("MSFT", "6mo")
	if err != nil {
		t.Fatalf("TechnicalSnapshot: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same input should yield an identical snapshot")
	}
}

func TestTechnicalSnapshotShortSeries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a := New(&provider.MockFetcher{Bars: dailyBars(start, []float64{100})})
	if _, err := a.TechnicalSnapshot("AAPL", ""); err == nil {
		t.Error("expected error with a single bar")
	}

	a = New(&provider.MockFetcher{Bars: []model.PriceBar{}})
	if _, err := a.TechnicalSnapshot("AAPL", ""); err == nil {
		t.Error("expected error with no bars")
	}

	// two bars is the minimum; long-window fields degrade to nil
	a = New(&provider.MockFetcher{Bars: dailyBars(start, []float64{100, 101})})
	snap, err := a.TechnicalSnapshot("AAPL", "")
	if err != nil {
		t.Fatalf("TechnicalSnapshot: %v", err)
	}
	if snap.MA20 != nil || snap.RSI != nil {
		t.Error("long-window indicators should be nil with two bars")
	}
	if snap.PriceChange1D == 0 {
		t.Error("one-day change should be computed")
	}
}

func TestMultiTimeframe(t *testing.T) {
	a := New(&provider.MockFetcher{Bars: provider.GenerateBars(100, 120)})
	out := a.MultiTimeframe("NVDA")
	for _, label := range []string{"Short Term", "Medium Term", "Long Term"} {
		tf, ok := out[label]
		if !ok {
			t.Errorf("missing timeframe %q", label)
			continue
		}
		if tf.Trend != "UP" && tf.Trend != "DOWN" {
			t.Errorf("%s trend = %q", label, tf.Trend)
		}
		if tf.Signal == "" {
			t.Errorf("%s signal missing", label)
		}
	}
}

func TestMultiTimeframeOmitsFailedWindows(t *testing.T) {
	a := New(&provider.MockFetcher{Bars: []model.PriceBar{}})
	if out := a.MultiTimeframe("NVDA"); len(out) != 0 {
		t.Errorf("windows = %v, want none when data is missing", out)
	}
}
