package model

// TechnicalSnapshot is the dense indicator record at the most recent bar.
// Pointer fields are absent when the series is too short for the window.
type TechnicalSnapshot struct {
	Ticker        string   `json:"ticker"`
	CurrentPrice  float64  `json:"current_price"`
	PriceChange1D float64  `json:"price_change_1d"`
	PriceChange5D *float64 `json:"price_change_5d"`
	PriceChange20 *float64 `json:"price_change_20d"`

	MA5   *float64 `json:"ma_5"`
	MA10  *float64 `json:"ma_10"`
	MA20  *float64 `json:"ma_20"`
	MA50  *float64 `json:"ma_50"`
	MA100 *float64 `json:"ma_100"`
	MA200 *float64 `json:"ma_200"`
	EMA12 *float64 `json:"ema_12"`
	EMA26 *float64 `json:"ema_26"`

	RSI           *float64 `json:"rsi"`
	MACD          *float64 `json:"macd"`
	MACDSignal    *float64 `json:"macd_signal"`
	MACDHistogram *float64 `json:"macd_histogram"`

	BBUpper    *float64 `json:"bb_upper"`
	BBMiddle   *float64 `json:"bb_middle"`
	BBLower    *float64 `json:"bb_lower"`
	BBPosition *float64 `json:"bb_position"`
	BBSqueeze  bool     `json:"bb_squeeze"`

	StochK *float64 `json:"stoch_k"`
	StochD *float64 `json:"stoch_d"`

	ATR       *float64 `json:"atr"`
	WilliamsR *float64 `json:"williams_r"`
	CCI       *float64 `json:"cci"`

	Resistance *float64 `json:"resistance"`
	Support    *float64 `json:"support"`

	VolumeRatio float64 `json:"volume_ratio"`
	AvgVolume20 *int64  `json:"avg_volume_20"`

	PriceVsMA20 *float64 `json:"price_vs_ma20"`
	PriceVsMA50 *float64 `json:"price_vs_ma50"`

	Signals       []string `json:"signals"`
	OverallSignal string   `json:"overall_signal"`
	StrengthScore int      `json:"strength_score"`
}

// TimeframeSignal is the condensed per-window view of the snapshot.
type TimeframeSignal struct {
	Signal string   `json:"signal"`
	RSI    *float64 `json:"rsi"`
	Trend  string   `json:"trend"`
}
