package trading

import (
	"fmt"
	"time"

	"github.com/sitshu/stock-analyst/internal/model"
)

// Alert types emitted by the watchlist scan.
const (
	AlertValueOpportunity = "VALUE_OPPORTUNITY"
	AlertHighVolatility   = "HIGH_VOLATILITY"
	AlertEarningsSoon     = "EARNINGS_SOON"
)

// Alerts scans the watchlist and reports actionable conditions. A ticker
// that fails any lookup is skipped; one bad symbol never empties the scan.
func (s *Service) Alerts(watchlist []string) []model.Alert {
	alerts := []model.Alert{}
	today := dayOf(time.Now().UTC())

	for _, ticker := range watchlist {
		profile, err := s.Analyzer.Profile(ticker)
		if err != nil {
			continue
		}
		risk, err := s.RiskMetrics(ticker)
		if err != nil {
			continue
		}
		events, err := s.Analyzer.EarningsEvents(ticker, 1)
		if err != nil {
			continue
		}

		if profile.PE != nil && *profile.PE < 15 &&
			profile.ProfitMargin != nil && *profile.ProfitMargin > 0.2 {
			alerts = append(alerts, model.Alert{
				Ticker: profile.Ticker,
				Type:   AlertValueOpportunity,
				Message: fmt.Sprintf("Undervalued: P/E %.1f, Margin %.1f%%",
					*profile.PE, *profile.ProfitMargin*100),
			})
		}

		if risk.AvgMove > 8 {
			alerts = append(alerts, model.Alert{
				Ticker:  profile.Ticker,
				Type:    AlertHighVolatility,
				Message: fmt.Sprintf("High earnings volatility: %.1f%% avg move", risk.AvgMove),
			})
		}

		if len(events) > 0 {
			days := int(dayOf(events[0].ReportDate.Time).Sub(today).Hours() / 24)
			if days >= 0 && days <= 5 {
				alerts = append(alerts, model.Alert{
					Ticker:  profile.Ticker,
					Type:    AlertEarningsSoon,
					Message: fmt.Sprintf("Earnings in %d days, avg move: %.1f%%", days, risk.AvgMove),
				})
			}
		}
	}
	return alerts
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
