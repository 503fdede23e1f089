package signal

import "github.com/sitshu/stock-analyst/internal/model"

// Overall recommendation labels.
const (
	StrongBuy  = "STRONG_BUY"
	Buy        = "BUY"
	Hold       = "HOLD"
	Sell       = "SELL"
	StrongSell = "STRONG_SELL"
	WeakBuy    = "WEAK_BUY"
)

// Inputs are the latest indicator values feeding the synthesizer. Pointer
// fields are nil when the series was too short for the window; rules with a
// missing input simply do not fire.
type Inputs struct {
	Price       float64
	MA5         *float64
	MA10        *float64
	MA20        *float64
	MA50        *float64
	RSI         *float64
	MACD        *float64
	MACDSignal  *float64
	MACDHist    *float64
	BBPosition  *float64
	BBSqueeze   bool
	StochK      *float64
	StochD      *float64
	WilliamsR   *float64
	CCI         *float64
	VolumeRatio float64
}

// Result is the synthesized signal set.
type Result struct {
	Signals       []string
	StrengthScore int
	Overall       string
}

// Synthesize combines indicator extremes into tagged signals and a scalar
// strength score, then maps the score to an overall recommendation. The
// weights and thresholds are a fixed hand-tuned heuristic; they must stay
// byte-stable because downstream consumers key off the exact tags.
func Synthesize(in Inputs) Result {
	signals := []string{}
	score := 0

	// Trend alignment
	switch {
	case in.MA5 != nil && in.MA10 != nil && in.MA20 != nil && in.MA50 != nil &&
		in.Price > *in.MA5 && *in.MA5 > *in.MA10 && *in.MA10 > *in.MA20 && *in.MA20 > *in.MA50:
		signals = append(signals, "STRONG_UPTREND")
		score += 3
	case in.MA20 != nil && in.MA50 != nil && in.Price > *in.MA20 && *in.MA20 > *in.MA50:
		signals = append(signals, "UPTREND")
		score += 2
	case in.MA5 != nil && in.MA10 != nil && in.MA20 != nil && in.MA50 != nil &&
		in.Price < *in.MA5 && *in.MA5 < *in.MA10 && *in.MA10 < *in.MA20 && *in.MA20 < *in.MA50:
		signals = append(signals, "STRONG_DOWNTREND")
		score -= 3
	case in.MA20 != nil && in.MA50 != nil && in.Price < *in.MA20 && *in.MA20 < *in.MA50:
		signals = append(signals, "DOWNTREND")
		score -= 2
	}

	// RSI extremes
	if in.RSI != nil {
		switch {
		case *in.RSI < 20:
			signals = append(signals, "EXTREMELY_OVERSOLD")
			score += 2
		case *in.RSI < 30:
			signals = append(signals, "OVERSOLD")
			score += 1
		case *in.RSI > 80:
			signals = append(signals, "EXTREMELY_OVERBOUGHT")
			score -= 2
		case *in.RSI > 70:
			signals = append(signals, "OVERBOUGHT")
			score -= 1
		}
	}

	// MACD cross state
	if in.MACD != nil && in.MACDSignal != nil && in.MACDHist != nil {
		if *in.MACD > *in.MACDSignal && *in.MACDHist > 0 {
			signals = append(signals, "MACD_BULLISH")
			score += 1
		} else if *in.MACD < *in.MACDSignal && *in.MACDHist < 0 {
			signals = append(signals, "MACD_BEARISH")
			score -= 1
		}
	}

	// Bollinger band position (tag only)
	if in.BBPosition != nil {
		if *in.BBPosition > 0.8 {
			signals = append(signals, "BB_OVERBOUGHT")
		} else if *in.BBPosition < 0.2 {
			signals = append(signals, "BB_OVERSOLD")
		}
	}
	if in.BBSqueeze {
		signals = append(signals, "BB_SQUEEZE")
	}

	// Stochastic extremes (tag only)
	if in.StochK != nil && in.StochD != nil {
		if *in.StochK < 20 && *in.StochD < 20 {
			signals = append(signals, "STOCH_OVERSOLD")
		} else if *in.StochK > 80 && *in.StochD > 80 {
			signals = append(signals, "STOCH_OVERBOUGHT")
		}
	}

	// Volume extremes
	if in.VolumeRatio > 2 {
		signals = append(signals, "HIGH_VOLUME")
		score += 1
	} else if in.VolumeRatio < 0.5 {
		signals = append(signals, "LOW_VOLUME")
	}

	// Williams %R extremes (tag only)
	if in.WilliamsR != nil {
		if *in.WilliamsR < -80 {
			signals = append(signals, "WILLIAMS_OVERSOLD")
		} else if *in.WilliamsR > -20 {
			signals = append(signals, "WILLIAMS_OVERBOUGHT")
		}
	}

	// CCI extremes (tag only)
	if in.CCI != nil {
		if *in.CCI > 100 {
			signals = append(signals, "CCI_OVERBOUGHT")
		} else if *in.CCI < -100 {
			signals = append(signals, "CCI_OVERSOLD")
		}
	}

	return Result{
		Signals:       signals,
		StrengthScore: score,
		Overall:       mapOverall(score),
	}
}

// mapOverall maps a strength score to the overall recommendation.
func mapOverall(score int) string {
	switch {
	case score >= 4:
		return StrongBuy
	case score >= 2:
		return Buy
	case score <= -4:
		return StrongSell
	case score <= -2:
		return Sell
	default:
		return Hold
	}
}

// Surprise derives a trading signal from an earnings event's surprises:
// beats on both EPS and revenue are a strong buy, a single beat a weak buy,
// and an EPS miss worse than -5% a sell.
func Surprise(e model.EarningsEvent) string {
	epsBeat := e.EPSSurprisePct != nil && *e.EPSSurprisePct > 0
	revBeat := e.RevenueSurprisePct != nil && *e.RevenueSurprisePct > 0

	switch {
	case epsBeat && revBeat:
		return StrongBuy
	case epsBeat || revBeat:
		return WeakBuy
	case e.EPSSurprisePct != nil && *e.EPSSurprisePct < -5:
		return Sell
	default:
		return Hold
	}
}
