package model

import "time"

// TickerProfile is a best-effort fundamentals snapshot. Every field besides
// the ticker may be missing when the provider is degraded.
type TickerProfile struct {
	Ticker       string   `json:"ticker"`
	Name         *string  `json:"name"`
	Sector       *string  `json:"sector"`
	Industry     *string  `json:"industry"`
	MarketCap    *float64 `json:"market_cap"`
	Price        *float64 `json:"price"`
	PE           *float64 `json:"pe"`
	PFCF         *float64 `json:"pfcf"`
	EVEBITDA     *float64 `json:"ev_ebitda"`
	GrossMargin  *float64 `json:"gross_margin"`
	ProfitMargin *float64 `json:"profit_margin"`
	Description  *string  `json:"description"`
}

// NewsItem is one RSS headline.
type NewsItem struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published"`
	Source    string     `json:"source"`
	Summary   string     `json:"summary"`
}
