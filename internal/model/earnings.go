package model

// EarningsEvent is one reported (or scheduled) earnings release.
// Numeric fields are pointers because the provider frequently omits them.
type EarningsEvent struct {
	FiscalQuarter      *string  `json:"fiscal_quarter"`
	ReportDate         Date     `json:"report_date"`
	EPSActual          *float64 `json:"eps_actual"`
	EPSEstimate        *float64 `json:"eps_estimate"`
	EPSSurprisePct     *float64 `json:"eps_surprise_pct"`
	RevenueActual      *float64 `json:"revenue_actual"`
	RevenueEstimate    *float64 `json:"revenue_estimate"`
	RevenueSurprisePct *float64 `json:"revenue_surprise_pct"`
}

// ReactionItem captures the price move following a single earnings event.
// Fields are absent when the price series could not supply enough bars.
type ReactionItem struct {
	ReportDate            Date     `json:"report_date"`
	NextDayReturnPct      *float64 `json:"next_day_return_pct"`
	FiveDayReturnPct      *float64 `json:"five_day_return_pct"`
	BaselineVolatilityPct *float64 `json:"baseline_volatility_pct"`
}

// ReactionSummary aggregates a ticker's reaction items. A nil field means
// "no evidence", which is deliberately distinct from zero.
type ReactionSummary struct {
	AverageUpsidePct   *float64 `json:"average_upside_pct"`
	AverageDownsidePct *float64 `json:"average_downside_pct"`
	AverageAbsMovePct  *float64 `json:"average_abs_move_pct"`
	BeatsCount         *int     `json:"beats_count"`
	MissesCount        *int     `json:"misses_count"`
}

// ReactionReport is the full earnings-reaction response for one ticker.
type ReactionReport struct {
	Ticker  string          `json:"ticker"`
	Items   []ReactionItem  `json:"items"`
	Summary ReactionSummary `json:"summary"`
}

// RiskMetrics summarizes historical earnings moves for position sizing.
// Unlike ReactionSummary, empty input yields zeros, not nulls; callers
// depend on that shape.
type RiskMetrics struct {
	AvgMove    float64 `json:"avg_move"`
	MaxMove    float64 `json:"max_move"`
	Volatility float64 `json:"volatility"`
	WinRate    float64 `json:"win_rate"`
	SampleSize int     `json:"sample_size,omitempty"`
}
