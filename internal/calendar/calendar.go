package calendar

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/trading"
)

// DefaultWatchlist is scanned when the caller supplies no tickers.
var DefaultWatchlist = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA",
	"META", "NVDA", "NFLX", "CRM", "ORCL",
}

// eventsPerTicker caps how many upcoming events one ticker contributes.
const eventsPerTicker = 4

// Service builds earnings-calendar and peer-comparison views.
type Service struct {
	Analyzer  *analysis.Analyzer
	Trading   *trading.Service
	Watchlist []string
}

// NewService creates a calendar Service. An empty watchlist falls back to
// DefaultWatchlist.
func NewService(a *analysis.Analyzer, t *trading.Service, watchlist []string) *Service {
	if len(watchlist) == 0 {
		watchlist = DefaultWatchlist
	}
	return &Service{Analyzer: a, Trading: t, Watchlist: watchlist}
}

// Upcoming lists earnings events due within daysAhead days, enriched with
// each ticker's historical risk metrics and sorted soonest first. Tickers
// that fail any lookup are skipped.
func (s *Service) Upcoming(daysAhead int, tickers []string) []model.CalendarEvent {
	if daysAhead <= 0 {
		daysAhead = 14
	}
	if len(tickers) == 0 {
		tickers = s.Watchlist
	}
	today := dayOf(time.Now().UTC())
	out := []model.CalendarEvent{}

	for _, ticker := range tickers {
		events, err := s.Analyzer.EarningsEvents(ticker, eventsPerTicker)
		if err != nil {
			continue
		}
		risk, err := s.Trading.RiskMetrics(ticker)
		if err != nil {
			continue
		}
		for _, e := range events {
			days := int(dayOf(e.ReportDate.Time).Sub(today).Hours() / 24)
			if days < 0 || days > daysAhead {
				continue
			}
			out = append(out, model.CalendarEvent{
				Ticker:          strings.ToUpper(strings.TrimSpace(ticker)),
				ReportDate:      e.ReportDate,
				DaysUntil:       days,
				EPSEstimate:     e.EPSEstimate,
				RevenueEstimate: e.RevenueEstimate,
				AvgMovePct:      risk.AvgMove,
				MaxMovePct:      risk.MaxMove,
				WinRate:         risk.WinRate,
				Volatility:      risk.Volatility,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	return out
}

// HighVolatility filters the upcoming calendar down to names whose average
// historical earnings move meets the threshold (inclusive), biggest movers
// first.
func (s *Service) HighVolatility(minAvgMove float64, daysAhead int) []model.CalendarEvent {
	if minAvgMove <= 0 {
		minAvgMove = 5.0
	}
	events := s.Upcoming(daysAhead, nil)
	out := []model.CalendarEvent{}
	for _, e := range events {
		if e.AvgMovePct >= minAvgMove {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgMovePct > out[j].AvgMovePct })
	return out
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sectorPeers maps well-covered tickers to their comparison group.
var sectorPeers = map[string][]string{
	"AAPL":  {"MSFT", "GOOGL", "META", "AMZN"},
	"MSFT":  {"AAPL", "GOOGL", "META", "ORCL"},
	"GOOGL": {"AAPL", "MSFT", "META", "AMZN"},
	"TSLA":  {"F", "GM", "RIVN", "LCID"},
	"NVDA":  {"AMD", "INTC", "QCOM", "AVGO"},
}

// Comparison ranks a ticker's earnings risk profile against its sector
// peers. Unknown tickers compare against SPY. Peers that fail any lookup
// are skipped; with no usable rows at all it reports an error.
func (s *Service) Comparison(ticker string, peers []string) (*model.SectorComparison, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if len(peers) == 0 {
		if mapped, ok := sectorPeers[ticker]; ok {
			peers = mapped
		} else {
			peers = []string{"SPY"}
		}
	}

	today := dayOf(time.Now().UTC())
	rows := []model.PeerStats{}
	for _, t := range append([]string{ticker}, peers...) {
		row, err := s.peerRow(t, t == ticker, today)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("No comparison data available")
	}

	var avg model.SectorAverages
	peerCount := 0
	for _, r := range rows {
		if r.IsTarget {
			continue
		}
		avg.AvgMovePct += r.AvgMovePct
		avg.MaxMovePct += r.MaxMovePct
		avg.WinRate += r.WinRate
		avg.Volatility += r.Volatility
		peerCount++
	}
	if peerCount > 0 {
		n := float64(peerCount)
		avg.AvgMovePct /= n
		avg.MaxMovePct /= n
		avg.WinRate /= n
		avg.Volatility /= n
	}

	return &model.SectorComparison{
		TargetTicker:   ticker,
		ComparisonData: rows,
		SectorAverages: avg,
		PeerCount:      peerCount,
	}, nil
}

func (s *Service) peerRow(ticker string, isTarget bool, today time.Time) (model.PeerStats, error) {
	risk, err := s.Trading.RiskMetrics(ticker)
	if err != nil {
		return model.PeerStats{}, err
	}
	row := model.PeerStats{
		Ticker:     strings.ToUpper(strings.TrimSpace(ticker)),
		IsTarget:   isTarget,
		AvgMovePct: risk.AvgMove,
		MaxMovePct: risk.MaxMove,
		WinRate:    risk.WinRate,
		Volatility: risk.Volatility,
		SampleSize: risk.SampleSize,
	}
	if events, err := s.Analyzer.EarningsEvents(ticker, 1); err == nil && len(events) > 0 {
		// only a still-upcoming report date is worth showing
		if !dayOf(events[0].ReportDate.Time).Before(today) {
			d := events[0].ReportDate
			row.NextEarnings = &d
		}
	}
	return row, nil
}
