package indicator

import "errors"

// BollingerResult holds the band triple plus the derived position and
// squeeze flag.
type BollingerResult struct {
	Upper    float64
	Middle   float64
	Lower    float64
	Position float64
	Squeeze  bool
}

// Bollinger computes Bollinger bands at the latest bar: middle = SMA(period),
// upper/lower = middle ± k·stddev. Position is 0 at the lower band and 1 at
// the upper band, deliberately unclamped so breakouts read outside [0,1].
// Squeeze means band width below 10% of the middle band.
func Bollinger(closes []float64, period int, k float64) (BollingerResult, error) {
	if len(closes) < period {
		return BollingerResult{}, errors.New("not enough data for Bollinger calculation")
	}
	window := closes[len(closes)-period:]
	middle := mean(window)
	std := stddevSample(window)
	upper := middle + k*std
	lower := middle - k*std

	price := closes[len(closes)-1]
	position := 0.5
	if upper != lower {
		position = (price - lower) / (upper - lower)
	}
	squeeze := false
	if middle != 0 {
		squeeze = (upper-lower)/middle < 0.10
	}
	return BollingerResult{
		Upper:    upper,
		Middle:   middle,
		Lower:    lower,
		Position: position,
		Squeeze:  squeeze,
	}, nil
}
