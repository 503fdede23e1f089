package indicator

import (
	"errors"
	"math"
)

// SupportResistance returns the trailing-window high and low of the close
// series. Shorter series are accepted silently, scanning what exists.
func SupportResistance(closes []float64, window int) (resistance, support float64, err error) {
	if len(closes) == 0 {
		return 0, 0, errors.New("no closes provided")
	}
	start := len(closes) - window
	if start < 0 {
		start = 0
	}
	resistance = math.Inf(-1)
	support = math.Inf(1)
	for i := start; i < len(closes); i++ {
		if closes[i] > resistance {
			resistance = closes[i]
		}
		if closes[i] < support {
			support = closes[i]
		}
	}
	return resistance, support, nil
}

// AnnualizedVolSeries computes the rolling window-bar standard deviation of
// daily returns, annualized by √252 and expressed as a percentage. Positions
// without a full window of returns hold NaN.
func AnnualizedVolSeries(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) < 2 {
		return out
	}
	returns := make([]float64, len(closes))
	returns[0] = math.NaN()
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			returns[i] = math.NaN()
		} else {
			returns[i] = closes[i]/closes[i-1] - 1.0
		}
	}
	for i := window; i < len(closes); i++ {
		w := returns[i+1-window : i+1]
		valid := true
		for _, r := range w {
			if math.IsNaN(r) {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		out[i] = stddevSample(w) * math.Sqrt(252) * 100.0
	}
	return out
}
