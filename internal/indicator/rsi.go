package indicator

import (
	"errors"
	"math"
)

// RSI computes the relative strength index at the latest bar using rolling
// means of gains and losses over the last period price changes. A zero
// average loss saturates the index at 100 instead of producing NaN.
func RSI(closes []float64, period int) (float64, error) {
	s := RSISeries(closes, period)
	if len(s) == 0 || math.IsNaN(s[len(s)-1]) {
		return 0, errors.New("not enough data for RSI calculation")
	}
	return s[len(s)-1], nil
}

// RSISeries computes the rolling-mean RSI for every bar. The first period
// positions hold NaN.
func RSISeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(closes) < period+1 {
		return out
	}
	for i := period; i < len(closes); i++ {
		var gain, loss float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gain += change
			} else {
				loss -= change
			}
		}
		avgGain := gain / float64(period)
		avgLoss := loss / float64(period)
		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out
}
