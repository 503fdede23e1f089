package indicator

import (
	"errors"
	"math"
)

// Stochastic computes the stochastic oscillator at the latest bar:
// %K = 100·(close − lowest low)/(highest high − lowest low) over kPeriod,
// %D = dPeriod-bar mean of %K.
func Stochastic(high, low, close []float64, kPeriod, dPeriod int) (k, d float64, err error) {
	n := len(close)
	if n < kPeriod+dPeriod-1 || len(high) != n || len(low) != n {
		return 0, 0, errors.New("not enough data for stochastic calculation")
	}
	kValues := make([]float64, dPeriod)
	for j := 0; j < dPeriod; j++ {
		end := n - 1 - j
		hh := math.Inf(-1)
		ll := math.Inf(1)
		for i := end - kPeriod + 1; i <= end; i++ {
			if high[i] > hh {
				hh = high[i]
			}
			if low[i] < ll {
				ll = low[i]
			}
		}
		if hh == ll {
			kValues[dPeriod-1-j] = 50.0
		} else {
			kValues[dPeriod-1-j] = 100.0 * (close[end] - ll) / (hh - ll)
		}
	}
	return kValues[dPeriod-1], mean(kValues), nil
}

// ATR computes the average true range at the latest bar: the period-bar mean
// of max(high−low, |high−prev close|, |low−prev close|). The first bar's
// true range falls back to high−low.
func ATR(high, low, close []float64, period int) (float64, error) {
	n := len(close)
	if n < period || len(high) != n || len(low) != n {
		return 0, errors.New("not enough data for ATR calculation")
	}
	sum := 0.0
	for i := n - period; i < n; i++ {
		tr := high[i] - low[i]
		if i > 0 {
			if v := math.Abs(high[i] - close[i-1]); v > tr {
				tr = v
			}
			if v := math.Abs(low[i] - close[i-1]); v > tr {
				tr = v
			}
		}
		sum += tr
	}
	return sum / float64(period), nil
}

// WilliamsR computes Williams %R at the latest bar:
// −100·(highest high − close)/(highest high − lowest low) over period bars.
func WilliamsR(high, low, close []float64, period int) (float64, error) {
	n := len(close)
	if n < period || len(high) != n || len(low) != n {
		return 0, errors.New("not enough data for Williams %R calculation")
	}
	hh := math.Inf(-1)
	ll := math.Inf(1)
	for i := n - period; i < n; i++ {
		if high[i] > hh {
			hh = high[i]
		}
		if low[i] < ll {
			ll = low[i]
		}
	}
	if hh == ll {
		return -50.0, nil
	}
	return -100.0 * (hh - close[n-1]) / (hh - ll), nil
}

// CCI computes the commodity channel index at the latest bar over period
// typical prices: (tp − SMA(tp)) / (0.015 · mean absolute deviation).
func CCI(high, low, close []float64, period int) (float64, error) {
	n := len(close)
	if n < period || len(high) != n || len(low) != n {
		return 0, errors.New("not enough data for CCI calculation")
	}
	tp := make([]float64, period)
	for j := 0; j < period; j++ {
		i := n - period + j
		tp[j] = (high[i] + low[i] + close[i]) / 3.0
	}
	m := mean(tp)
	mad := 0.0
	for _, v := range tp {
		mad += math.Abs(v - m)
	}
	mad /= float64(period)
	if mad == 0 {
		return 0, nil
	}
	return (tp[period-1] - m) / (0.015 * mad), nil
}
