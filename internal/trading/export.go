package trading

import (
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/signal"
)

// exportEventLimit bounds how many events each ticker contributes.
const exportEventLimit = 8

// Export flattens recent earnings history into rows for external tooling,
// joining each event with its price reaction and the ticker's risk metrics.
// Tickers that fail any lookup are skipped.
func (s *Service) Export(tickers []string) []model.ExportRow {
	rows := []model.ExportRow{}

	for _, ticker := range tickers {
		events, err := s.Analyzer.EarningsEvents(ticker, exportEventLimit)
		if err != nil || len(events) == 0 {
			continue
		}
		reaction, err := s.Analyzer.Reaction(ticker, 0)
		if err != nil {
			continue
		}
		risk := RiskMetricsFromItems(reaction.Items)

		byDate := make(map[string]model.ReactionItem, len(reaction.Items))
		for _, it := range reaction.Items {
			byDate[it.ReportDate.String()] = it
		}

		for _, e := range events {
			row := model.ExportRow{
				Ticker:             reaction.Ticker,
				Date:               e.ReportDate,
				EPSActual:          e.EPSActual,
				EPSEstimate:        e.EPSEstimate,
				EPSSurprisePct:     e.EPSSurprisePct,
				RevenueActual:      e.RevenueActual,
				RevenueEstimate:    e.RevenueEstimate,
				RevenueSurprisePct: e.RevenueSurprisePct,
				Signal:             signal.Surprise(e),
				AvgVolatility:      risk.AvgMove,
				WinRate:            risk.WinRate,
			}
			if it, ok := byDate[e.ReportDate.String()]; ok {
				row.NextDayReturnPct = it.NextDayReturnPct
				row.FiveDayReturnPct = it.FiveDayReturnPct
			}
			rows = append(rows, row)
		}
	}
	return rows
}
