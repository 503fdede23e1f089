package backtest

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/provider"
	"github.com/sitshu/stock-analyst/internal/signal"
)

// Earnings strategy names.
const (
	StrategySurprise   = "surprise"
	StrategyAlwaysLong = "always_long"
	StrategyVolatility = "volatility"
)

// Engine replays trading strategies over historical data.
type Engine struct {
	Fetcher  provider.Fetcher
	Analyzer *analysis.Analyzer
}

// NewEngine creates a backtest Engine.
func NewEngine(fetcher provider.Fetcher, analyzer *analysis.Analyzer) *Engine {
	return &Engine{Fetcher: fetcher, Analyzer: analyzer}
}

// Earnings simulates entering the close before each earnings report and
// exiting the close after it. Events without an entry or exit bar are
// skipped. The response keeps at most the 10 most recent trades.
func (e *Engine) Earnings(ticker, strategy string, lookbackDays int) (*model.EarningsBacktest, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if lookbackDays <= 0 {
		lookbackDays = 365
	}
	events, err := e.Analyzer.EarningsEvents(ticker, 20)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errors.New("No earnings events found")
	}

	start := time.Now().UTC().AddDate(0, 0, -lookbackDays)
	bars, err := e.Fetcher.PriceHistory(ticker, provider.HistoryQuery{Start: start, Interval: "1d"})
	if err != nil || len(bars) == 0 {
		return nil, errors.New("No price data")
	}

	var trades []model.EarningsTrade
	for _, ev := range events {
		entryIdx := lastBarOnOrBefore(bars, ev.ReportDate.Time.AddDate(0, 0, -1))
		exitIdx := firstBarOnOrAfter(bars, ev.ReportDate.Time.AddDate(0, 0, 1))
		if entryIdx < 0 || exitIdx < 0 {
			continue
		}

		position, label := positionFor(strategy, ev)
		if position == 0 {
			continue
		}

		entry := bars[entryIdx].Close
		exit := bars[exitIdx].Close
		if entry == 0 {
			continue
		}
		trades = append(trades, model.EarningsTrade{
			Date:       ev.ReportDate,
			EntryPrice: entry,
			ExitPrice:  exit,
			Position:   position,
			PnLPct:     float64(position) * (exit - entry) / entry * 100,
			Signal:     label,
		})
	}
	if len(trades) == 0 {
		return nil, errors.New("No valid trades found")
	}

	result := &model.EarningsBacktest{
		Ticker:         ticker,
		Strategy:       strategy,
		BacktestTotals: totals(pnls(trades)),
		Trades:         lastN(trades, 10),
	}
	return result, nil
}

// positionFor maps an event to a position under the strategy: +1 long,
// -1 short, 0 no trade.
func positionFor(strategy string, ev model.EarningsEvent) (int, string) {
	switch strategy {
	case StrategySurprise:
		sig := signal.Surprise(ev)
		switch sig {
		case signal.StrongBuy, signal.WeakBuy:
			return 1, sig
		case signal.Sell:
			return -1, sig
		}
		return 0, sig
	case StrategyAlwaysLong:
		return 1, strategy
	case StrategyVolatility:
		if ev.EPSSurprisePct != nil && math.Abs(*ev.EPSSurprisePct) > 2 {
			return 1, strategy
		}
		return 0, strategy
	}
	return 0, strategy
}

func lastBarOnOrBefore(bars []model.PriceBar, t time.Time) int {
	idx := sort.Search(len(bars), func(i int) bool {
		return dayOf(bars[i].Date).After(dayOf(t))
	})
	return idx - 1
}

func firstBarOnOrAfter(bars []model.PriceBar, t time.Time) int {
	idx := sort.Search(len(bars), func(i int) bool {
		return !dayOf(bars[i].Date).Before(dayOf(t))
	})
	if idx == len(bars) {
		return -1
	}
	return idx
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pnls(trades []model.EarningsTrade) []float64 {
	out := make([]float64, len(trades))
	for i, t := range trades {
		out[i] = t.PnLPct
	}
	return out
}

// totals aggregates per-trade returns across ALL trades, not just the
// truncated tail returned to the caller.
func totals(returns []float64) model.BacktestTotals {
	t := model.BacktestTotals{TotalTrades: len(returns)}
	if len(returns) == 0 {
		return t
	}
	wins := 0
	best, worst := returns[0], returns[0]
	for _, r := range returns {
		t.TotalReturnPct += r
		if r > 0 {
			wins++
		}
		if r > best {
			best = r
		}
		if r < worst {
			worst = r
		}
	}
	t.WinRate = float64(wins) / float64(len(returns))
	t.AvgReturnPct = t.TotalReturnPct / float64(len(returns))
	t.BestTradePct = best
	t.WorstTradePct = worst
	return t
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
