package backtest

import (
	"errors"
	"strings"
	"time"

	"github.com/sitshu/stock-analyst/internal/indicator"
	"github.com/sitshu/stock-analyst/internal/model"
	"github.com/sitshu/stock-analyst/internal/provider"
)

// Technical strategy names.
const (
	StrategyRSIOversold = "rsi_oversold"
	StrategyMACrossover = "ma_crossover"
)

// warmupBars is skipped before any entry so the slowest indicator (MA50)
// is fully formed.
const warmupBars = 50

// Technical replays a rule-based long-only strategy bar by bar. A position
// opens when the entry rule fires and closes only on a 5% stop-loss breach
// or at the final bar. The response keeps at most the 5 most recent trades.
func (e *Engine) Technical(ticker, strategy string, lookbackDays int) (*model.TechnicalBacktest, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if lookbackDays <= 0 {
		lookbackDays = 365
	}
	start := time.Now().UTC().AddDate(0, 0, -lookbackDays)
	bars, err := e.Fetcher.PriceHistory(ticker, provider.HistoryQuery{Start: start, Interval: "1d"})
	if err != nil || len(bars) == 0 {
		return nil, errors.New("No price data")
	}

	closes := indicator.Closes(bars)
	rsi := indicator.RSISeries(closes, 14)
	ma20 := indicator.SMASeries(closes, 20)
	ma50 := indicator.SMASeries(closes, 50)

	var trades []model.TechnicalTrade
	inPosition := false
	entryPrice := 0.0

	for i := warmupBars; i < len(bars); i++ {
		if !inPosition {
			entered := false
			switch strategy {
			case StrategyRSIOversold:
				entered = rsi[i] < 30 // NaN compares false during warm-up
			case StrategyMACrossover:
				entered = ma20[i] > ma50[i] && ma20[i-1] <= ma50[i-1]
			}
			if entered {
				inPosition = true
				entryPrice = closes[i]
			}
			continue
		}

		stopped := closes[i]/entryPrice-1 < -0.05
		if stopped || i == len(bars)-1 {
			trades = append(trades, model.TechnicalTrade{
				EntryDate:  model.NewDate(bars[i-5].Date),
				ExitDate:   model.NewDate(bars[i].Date),
				EntryPrice: entryPrice,
				ExitPrice:  closes[i],
				PnLPct:     (closes[i] - entryPrice) / entryPrice * 100,
			})
			inPosition = false
		}
	}
	if len(trades) == 0 {
		return nil, errors.New("No trades generated")
	}

	returns := make([]float64, len(trades))
	for i, t := range trades {
		returns[i] = t.PnLPct
	}
	result := &model.TechnicalBacktest{
		Ticker:         ticker,
		Strategy:       strategy,
		BacktestTotals: totals(returns),
		Trades:         lastN(trades, 5),
	}
	return result, nil
}
