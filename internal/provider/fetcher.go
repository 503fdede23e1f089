package provider

import (
	"time"

	"github.com/sitshu/stock-analyst/internal/model"
)

// HistoryQuery selects a price-history window. When Start or End is set the
// explicit range wins; otherwise Period is used.
type HistoryQuery struct {
	Start    time.Time
	End      time.Time
	Period   string // "1mo", "3mo", "6mo", "1y", "2y"
	Interval string // defaults to "1d"
}

// Fetcher is the market-data provider contract. Implementations return bars
// in ascending date order and may return empty results when the upstream
// source is degraded; callers treat empty as missing data, not as a fault.
type Fetcher interface {
	PriceHistory(ticker string, q HistoryQuery) ([]model.PriceBar, error)
	EarningsDates(ticker string, limit int) ([]model.EarningsEvent, error)
	Info(ticker string) (map[string]any, error)
	LastClose(ticker string) (float64, error)
	Name() string
}
