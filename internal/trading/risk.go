package trading

import (
	"math"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/model"
)

// Service derives trading-oriented views (risk metrics, alerts, export
// rows) from the analysis pipeline.
type Service struct {
	Analyzer *analysis.Analyzer
}

// NewService creates a trading Service on top of the analyzer.
func NewService(a *analysis.Analyzer) *Service {
	return &Service{Analyzer: a}
}

// RiskMetrics summarizes a ticker's historical earnings moves for position
// sizing. With no valid moves every field is zero, not null; the calendar
// and comparison payloads rely on that exact shape.
func (s *Service) RiskMetrics(ticker string) (model.RiskMetrics, error) {
	reaction, err := s.Analyzer.Reaction(ticker, 0)
	if err != nil {
		return model.RiskMetrics{}, err
	}
	return RiskMetricsFromItems(reaction.Items), nil
}

// RiskMetricsFromItems computes the risk metrics from reaction items.
func RiskMetricsFromItems(items []model.ReactionItem) model.RiskMetrics {
	var moves []float64
	positive := 0
	for _, it := range items {
		if it.NextDayReturnPct == nil {
			continue
		}
		moves = append(moves, math.Abs(*it.NextDayReturnPct))
		if *it.NextDayReturnPct > 0 {
			positive++
		}
	}
	if len(moves) == 0 {
		return model.RiskMetrics{}
	}

	sum, maxMove := 0.0, 0.0
	for _, m := range moves {
		sum += m
		if m > maxMove {
			maxMove = m
		}
	}
	avg := sum / float64(len(moves))

	// population stddev, not sample: the move set is the whole history
	variance := 0.0
	for _, m := range moves {
		d := m - avg
		variance += d * d
	}
	variance /= float64(len(moves))

	return model.RiskMetrics{
		AvgMove:    avg,
		MaxMove:    maxMove,
		Volatility: math.Sqrt(variance),
		WinRate:    float64(positive) / float64(len(moves)),
		SampleSize: len(moves),
	}
}
