package model

// CalendarEvent is one upcoming earnings entry, enriched with historical
// reaction risk metrics.
type CalendarEvent struct {
	Ticker          string   `json:"ticker"`
	ReportDate      Date     `json:"report_date"`
	DaysUntil       int      `json:"days_until"`
	EPSEstimate     *float64 `json:"eps_estimate"`
	RevenueEstimate *float64 `json:"revenue_estimate"`
	AvgMovePct      float64  `json:"avg_move_pct"`
	MaxMovePct      float64  `json:"max_move_pct"`
	WinRate         float64  `json:"win_rate"`
	Volatility      float64  `json:"volatility"`
}

// PeerStats is one row of a sector comparison.
type PeerStats struct {
	Ticker       string  `json:"ticker"`
	IsTarget     bool    `json:"is_target"`
	AvgMovePct   float64 `json:"avg_move_pct"`
	MaxMovePct   float64 `json:"max_move_pct"`
	WinRate      float64 `json:"win_rate"`
	Volatility   float64 `json:"volatility"`
	SampleSize   int     `json:"sample_size"`
	NextEarnings *Date   `json:"next_earnings"`
}

// SectorAverages holds peer averages excluding the target ticker.
type SectorAverages struct {
	AvgMovePct float64 `json:"avg_move_pct"`
	MaxMovePct float64 `json:"max_move_pct"`
	WinRate    float64 `json:"win_rate"`
	Volatility float64 `json:"volatility"`
}

// SectorComparison compares a ticker against its sector peers.
type SectorComparison struct {
	TargetTicker   string         `json:"target_ticker"`
	ComparisonData []PeerStats    `json:"comparison_data"`
	SectorAverages SectorAverages `json:"sector_averages"`
	PeerCount      int            `json:"peer_count"`
}

// Alert is a watchlist trading alert.
type Alert struct {
	Ticker  string `json:"ticker"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ExportRow is one flattened earnings/reaction record for external systems.
type ExportRow struct {
	Ticker             string   `json:"ticker"`
	Date               Date     `json:"date"`
	EPSActual          *float64 `json:"eps_actual"`
	EPSEstimate        *float64 `json:"eps_estimate"`
	EPSSurprisePct     *float64 `json:"eps_surprise_pct"`
	RevenueActual      *float64 `json:"revenue_actual"`
	RevenueEstimate    *float64 `json:"revenue_estimate"`
	RevenueSurprisePct *float64 `json:"revenue_surprise_pct"`
	NextDayReturnPct   *float64 `json:"next_day_return_pct"`
	FiveDayReturnPct   *float64 `json:"five_day_return_pct"`
	Signal             string   `json:"signal"`
	AvgVolatility      float64  `json:"avg_volatility"`
	WinRate            float64  `json:"win_rate"`
}
