package indicator

import "errors"

// MACDResult holds the MACD line, its signal line, and the histogram.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes the moving average convergence divergence at the latest bar:
// EMA(fast) − EMA(slow), a signalSpan-period EMA of that difference, and
// histogram = MACD − signal.
func MACD(closes []float64, fast, slow, signalSpan int) (MACDResult, error) {
	if len(closes) == 0 {
		return MACDResult{}, errors.New("no data for MACD calculation")
	}
	emaFast := EMASeries(closes, fast)
	emaSlow := EMASeries(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signal := EMASeries(line, signalSpan)
	last := len(closes) - 1
	return MACDResult{
		MACD:      line[last],
		Signal:    signal[last],
		Histogram: line[last] - signal[last],
	}, nil
}
