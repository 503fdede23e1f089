package analysis

import (
	"errors"

	"github.com/sitshu/stock-analyst/internal/indicator"
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/provider"
	"github.com/sitshu/stock-analyst/internal/signal"
)

func roundTo(v float64, places int) float64 { return indicator.Round(v, places) }

// TechnicalSnapshot fetches price history for the period and computes the
// full indicator record plus synthesized signals at the most recent bar.
// The same immutable input always yields identical output.
func (a *Analyzer) TechnicalSnapshot(ticker, period string) (*model.TechnicalSnapshot, error) {
	ticker = normalizeTicker(ticker)
	if period == "" {
		period = "6mo"
	}
	bars, err := a.Fetcher.PriceHistory(ticker, provider.HistoryQuery{Period: period, Interval: "1d"})
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, errors.New("No price data")
	}
	if len(bars) < 2 {
		return nil, errors.New("not enough price data")
	}
	return a.snapshotFromBars(ticker, bars), nil
}

func (a *Analyzer) snapshotFromBars(ticker string, bars []model.PriceBar) *model.TechnicalSnapshot {
	closes := indicator.Closes(bars)
	highs := indicator.Highs(bars)
	lows := indicator.Lows(bars)
	volumes := indicator.Volumes(bars)

	n := len(closes)
	current := closes[n-1]

	snap := &model.TechnicalSnapshot{
		Ticker:        ticker,
		CurrentPrice:  roundTo(current, 2),
		PriceChange1D: roundTo((current-closes[n-2])/closes[n-2]*100, 2),
	}
	if n >= 6 {
		snap.PriceChange5D = ptr(roundTo((current-closes[n-6])/closes[n-6]*100, 2))
	}
	if n >= 21 {
		snap.PriceChange20 = ptr(roundTo((current-closes[n-21])/closes[n-21]*100, 2))
	}

	// Raw values feed the synthesizer; rounded copies go into the payload.
	sma := func(period int) *float64 {
		v, err := indicator.SMA(closes, period)
		if err != nil {
			return nil
		}
		return ptr(v)
	}
	ma5, ma10, ma20, ma50 := sma(5), sma(10), sma(20), sma(50)
	ma100, ma200 := sma(100), sma(200)

	snap.MA5 = roundPtr(ma5, 2)
	snap.MA10 = roundPtr(ma10, 2)
	snap.MA20 = roundPtr(ma20, 2)
	snap.MA50 = roundPtr(ma50, 2)
	snap.MA100 = roundPtr(ma100, 2)
	snap.MA200 = roundPtr(ma200, 2)

	if v, err := indicator.EMA(closes, 12); err == nil {
		snap.EMA12 = ptr(roundTo(v, 2))
	}
	if v, err := indicator.EMA(closes, 26); err == nil {
		snap.EMA26 = ptr(roundTo(v, 2))
	}

	var rsi *float64
	if v, err := indicator.RSI(closes, 14); err == nil {
		rsi = ptr(v)
		snap.RSI = ptr(roundTo(v, 2))
	}

	var macd, macdSignal, macdHist *float64
	if m, err := indicator.MACD(closes, 12, 26, 9); err == nil {
		macd, macdSignal, macdHist = ptr(m.MACD), ptr(m.Signal), ptr(m.Histogram)
		snap.MACD = ptr(roundTo(m.MACD, 4))
		snap.MACDSignal = ptr(roundTo(m.Signal, 4))
		snap.MACDHistogram = ptr(roundTo(m.Histogram, 4))
	}

	var bbPosition *float64
	if bb, err := indicator.Bollinger(closes, 20, 2); err == nil {
		bbPosition = ptr(bb.Position)
		snap.BBUpper = ptr(roundTo(bb.Upper, 2))
		snap.BBMiddle = ptr(roundTo(bb.Middle, 2))
		snap.BBLower = ptr(roundTo(bb.Lower, 2))
		snap.BBPosition = ptr(roundTo(bb.Position, 3))
		snap.BBSqueeze = bb.Squeeze
	}

	var stochK, stochD *float64
	if k, d, err := indicator.Stochastic(highs, lows, closes, 14, 3); err == nil {
		stochK, stochD = ptr(k), ptr(d)
		snap.StochK = ptr(roundTo(k, 2))
		snap.StochD = ptr(roundTo(d, 2))
	}

	if v, err := indicator.ATR(highs, lows, closes, 14); err == nil {
		snap.ATR = ptr(roundTo(v, 2))
	}

	var williams *float64
	if v, err := indicator.WilliamsR(highs, lows, closes, 14); err == nil {
		williams = ptr(v)
		snap.WilliamsR = ptr(roundTo(v, 2))
	}

	var cci *float64
	if v, err := indicator.CCI(highs, lows, closes, 20); err == nil {
		cci = ptr(v)
		snap.CCI = ptr(roundTo(v, 2))
	}

	if resistance, support, err := indicator.SupportResistance(closes, 20); err == nil {
		snap.Resistance = ptr(roundTo(resistance, 2))
		snap.Support = ptr(roundTo(support, 2))
	}

	volumeRatio := 1.0
	if avg, err := indicator.SMA(volumes, 20); err == nil && avg > 0 {
		volumeRatio = volumes[n-1] / avg
		avgInt := int64(avg)
		snap.AvgVolume20 = &avgInt
	}
	snap.VolumeRatio = roundTo(volumeRatio, 2)

	if ma20 != nil {
		snap.PriceVsMA20 = ptr(roundTo((current-*ma20)/(*ma20)*100, 2))
	}
	if ma50 != nil {
		snap.PriceVsMA50 = ptr(roundTo((current-*ma50)/(*ma50)*100, 2))
	}

	res := signal.Synthesize(signal.Inputs{
		Price:       current,
		MA5:         ma5,
		MA10:        ma10,
		MA20:        ma20,
		MA50:        ma50,
		RSI:         rsi,
		MACD:        macd,
		MACDSignal:  macdSignal,
		MACDHist:    macdHist,
		BBPosition:  bbPosition,
		BBSqueeze:   snap.BBSqueeze,
		StochK:      stochK,
		StochD:      stochD,
		WilliamsR:   williams,
		CCI:         cci,
		VolumeRatio: volumeRatio,
	})
	snap.Signals = res.Signals
	snap.OverallSignal = res.Overall
	snap.StrengthScore = res.StrengthScore

	return snap
}

// timeframes maps the lookback window to its display label.
var timeframes = []struct {
	period string
	label  string
}{
	{"1mo", "Short Term"},
	{"3mo", "Medium Term"},
	{"1y", "Long Term"},
}

// MultiTimeframe runs the snapshot independently over three lookback
// windows and reports the condensed view per window. Windows that fail to
// produce a snapshot are omitted.
func (a *Analyzer) MultiTimeframe(ticker string) map[string]model.TimeframeSignal {
	out := make(map[string]model.TimeframeSignal, len(timeframes))
	for _, tf := range timeframes {
		snap, err := a.TechnicalSnapshot(ticker, tf.period)
		if err != nil {
			continue
		}
		trend := "DOWN"
		if snap.MA20 != nil && snap.CurrentPrice > *snap.MA20 {
			trend = "UP"
		}
		out[tf.label] = model.TimeframeSignal{
			Signal: snap.OverallSignal,
			RSI:    snap.RSI,
			Trend:  trend,
		}
	}
	return out
}
