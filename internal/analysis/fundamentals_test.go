package analysis

import (
	"errors"
	"testing"

	"github.com/sitshu/stock-analyst/internal/provider"
)

func TestProfile(t *testing.T) {
	mock := &provider.MockFetcher{
		InfoMap: map[string]any{
			"shortName":       "Apple Inc.",
			"sector":          "Technology",
			"industry":        "Consumer Electronics",
			"currentPrice":    190.0,
			"marketCap":       2.9e12,
			"trailingPE":      29.5,
			"profitMargins":   0.25,
			"grossMargins":    0.45,
			"freeCashflow":    1.0e11,
			"ebitda":          1.3e11,
			"enterpriseValue": 3.0e12,
		},
	}
	a := New(mock)

	p, err := a.Profile("aapl")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Ticker != "AAPL" {
		t.Errorf("ticker = %q", p.Ticker)
	}
	if p.Name == nil || *p.Name != "Apple Inc." {
		t.Errorf("name = %v", p.Name)
	}
	if p.Price == nil || *p.Price != 190 {
		t.Errorf("price = %v", p.Price)
	}
	if p.PE == nil || *p.PE != 29.5 {
		t.Errorf("pe = %v", p.PE)
	}
	if p.PFCF == nil || *p.PFCF != 29 {
		t.Errorf("p_fcf = %v, want 29", p.PFCF)
	}
	if p.EVEBITDA == nil {
		t.Error("ev_ebitda missing")
	}
}

func TestProfilePriceFallsBackToLastClose(t *testing.T) {
	mock := &provider.MockFetcher{
		Price:   101.5,
		InfoMap: map[string]any{"sharesOutstanding": 2.0e9},
	}
	a := New(mock)

	p, err := a.Profile("MSFT")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Price == nil || *p.Price != 101.5 {
		t.Errorf("price = %v, want last close", p.Price)
	}
	// market cap derives from shares x price when absent
	if p.MarketCap == nil || *p.MarketCap != 2.0e9*101.5 {
		t.Errorf("market cap = %v", p.MarketCap)
	}
}

func TestProfilePEFallsBackToForward(t *testing.T) {
	a := New(&provider.MockFetcher{InfoMap: map[string]any{"forwardPE": 18.0}})
	p, err := a.Profile("NVDA")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.PE == nil || *p.PE != 18 {
		t.Errorf("pe = %v, want forward 18", p.PE)
	}
}

func TestProfileDegradesToBareTicker(t *testing.T) {
	a := New(&provider.MockFetcher{Err: errors.New("provider down")})
	p, err := a.Profile("AAPL")
	if err != nil {
		t.Fatalf("Profile should not fail on provider faults: %v", err)
	}
	if p.Ticker != "AAPL" {
		t.Errorf("ticker = %q", p.Ticker)
	}
	if p.Name != nil || p.Price != nil || p.PE != nil {
		t.Error("degraded profile should carry only the ticker")
	}
}
