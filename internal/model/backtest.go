package model

// EarningsTrade is one simulated round trip around an earnings event.
type EarningsTrade struct {
	Date       Date    `json:"date"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	Position   int     `json:"position"`
	PnLPct     float64 `json:"pnl_pct"`
	Signal     string  `json:"signal"`
}

// TechnicalTrade is one simulated trade from the rule-based engine.
type TechnicalTrade struct {
	EntryDate  Date    `json:"entry_date"`
	ExitDate   Date    `json:"exit_date"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	PnLPct     float64 `json:"pnl_pct"`
}

// BacktestTotals are computed over the full trade set, not the capped
// trades list included in the payload.
type BacktestTotals struct {
	TotalTrades    int     `json:"total_trades"`
	WinRate        float64 `json:"win_rate"`
	TotalReturnPct float64 `json:"total_return_pct"`
	AvgReturnPct   float64 `json:"avg_return_pct"`
	BestTradePct   float64 `json:"best_trade_pct"`
	WorstTradePct  float64 `json:"worst_trade_pct"`
}

// EarningsBacktest is the earnings-driven engine's report. Trades holds at
// most the last 10 trades.
type EarningsBacktest struct {
	Ticker   string `json:"ticker"`
	Strategy string `json:"strategy"`
	BacktestTotals
	Trades []EarningsTrade `json:"trades"`
}

// TechnicalBacktest is the rule-based engine's report. Trades holds at most
// the last 5 trades.
type TechnicalBacktest struct {
	Ticker   string `json:"ticker"`
	Strategy string `json:"strategy"`
	BacktestTotals
	Trades []TechnicalTrade `json:"trades"`
}
