package portfolio

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/indicator"
	"github.com/sitshu/stock-analyst/internal/provider"
	"github.com/sitshu/stock-analyst/internal/signal"
)

// position is one open holding. Money amounts stay decimal until they are
// rendered into a view.
type position struct {
	shares     decimal.Decimal
	entryPrice decimal.Decimal
	entryDate  time.Time
}

// Ledger is an in-memory paper-trading account. All operations are safe
// for concurrent use.
type Ledger struct {
	mu        sync.Mutex
	cash      decimal.Decimal
	positions map[string]*position

	fetcher  provider.Fetcher
	analyzer *analysis.Analyzer
}

// NewLedger creates a Ledger with the given starting cash.
func NewLedger(startingCash float64, fetcher provider.Fetcher, analyzer *analysis.Analyzer) *Ledger {
	return &Ledger{
		cash:      decimal.NewFromFloat(startingCash),
		positions: make(map[string]*position),
		fetcher:   fetcher,
		analyzer:  analyzer,
	}
}

// Outcome reports the result of a ledger mutation.
type Outcome struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Add buys shares. A zero or negative price is replaced with the last
// traded close. Buying into an existing position merges at average cost.
func (l *Ledger) Add(ticker string, shares, price float64) Outcome {
	ticker = normalize(ticker)
	if shares <= 0 {
		return Outcome{Error: "shares must be positive"}
	}
	if price <= 0 {
		last, err := l.fetcher.LastClose(ticker)
		if err != nil || last <= 0 {
			return Outcome{Error: fmt.Sprintf("Could not get current price for %s", ticker)}
		}
		price = last
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	qty := decimal.NewFromFloat(shares)
	px := decimal.NewFromFloat(price)
	cost := qty.Mul(px)
	if cost.GreaterThan(l.cash) {
		return Outcome{Error: fmt.Sprintf("Insufficient cash. Need $%s, have $%s",
			cost.StringFixed(2), l.cash.StringFixed(2))}
	}

	if pos, ok := l.positions[ticker]; ok {
		totalShares := pos.shares.Add(qty)
		totalCost := pos.shares.Mul(pos.entryPrice).Add(cost)
		pos.entryPrice = totalCost.Div(totalShares)
		pos.shares = totalShares
	} else {
		l.positions[ticker] = &position{
			shares:     qty,
			entryPrice: px,
			entryDate:  time.Now().UTC(),
		}
	}
	l.cash = l.cash.Sub(cost)

	return Outcome{Success: fmt.Sprintf("Added %s shares of %s at $%s",
		qty.String(), ticker, px.StringFixed(2))}
}

// Remove sells shares at the current price, or the whole position when
// shares is nil. Selling more than held closes the position.
func (l *Ledger) Remove(ticker string, shares *float64) Outcome {
	ticker = normalize(ticker)

	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.positions[ticker]
	if !ok {
		return Outcome{Error: fmt.Sprintf("No position in %s", ticker)}
	}

	price := pos.entryPrice
	if last, err := l.fetcher.LastClose(ticker); err == nil && last > 0 {
		price = decimal.NewFromFloat(last)
	}

	qty := pos.shares
	if shares != nil {
		requested := decimal.NewFromFloat(*shares)
		if requested.LessThanOrEqual(decimal.Zero) {
			return Outcome{Error: "shares must be positive"}
		}
		if requested.LessThan(qty) {
			qty = requested
		}
	}

	proceeds := qty.Mul(price)
	pnl := qty.Mul(price.Sub(pos.entryPrice))
	l.cash = l.cash.Add(proceeds)

	if qty.Equal(pos.shares) {
		delete(l.positions, ticker)
		return Outcome{Success: fmt.Sprintf("Sold all %s shares of %s for $%s, PnL: $%s",
			qty.String(), ticker, proceeds.StringFixed(2), pnl.StringFixed(2))}
	}
	pos.shares = pos.shares.Sub(qty)
	return Outcome{Success: fmt.Sprintf("Sold %s shares of %s for $%s, PnL: $%s",
		qty.String(), ticker, proceeds.StringFixed(2), pnl.StringFixed(2))}
}

// PositionView is one holding in the summary payload.
type PositionView struct {
	Ticker           string  `json:"ticker"`
	Shares           float64 `json:"shares"`
	EntryPrice       float64 `json:"entry_price"`
	EntryDate        string  `json:"entry_date"`
	CurrentPrice     float64 `json:"current_price"`
	MarketValue      float64 `json:"market_value"`
	UnrealizedPnL    float64 `json:"unrealized_pnl"`
	UnrealizedPnLPct float64 `json:"unrealized_pnl_pct"`
	Signal           string  `json:"signal"`
}

// Summary is the full account view.
type Summary struct {
	Cash                  float64        `json:"cash"`
	TotalPositionValue    float64        `json:"total_position_value"`
	TotalPortfolioValue   float64        `json:"total_portfolio_value"`
	TotalUnrealizedPnL    float64        `json:"total_unrealized_pnl"`
	TotalUnrealizedPnLPct float64        `json:"total_unrealized_pnl_pct"`
	PositionCount         int            `json:"position_count"`
	Positions             []PositionView `json:"positions"`
}

// Summary refreshes every position with the latest price and a short-term
// technical signal. Price lookups that fail fall back to the entry price;
// signal lookups that fail report HOLD.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := Summary{
		Positions:     []PositionView{},
		PositionCount: len(l.positions),
	}

	tickers := make([]string, 0, len(l.positions))
	for t := range l.positions {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	totalValue := decimal.Zero
	totalCost := decimal.Zero
	for _, ticker := range tickers {
		pos := l.positions[ticker]

		price := pos.entryPrice
		if last, err := l.fetcher.LastClose(ticker); err == nil && last > 0 {
			price = decimal.NewFromFloat(last)
		}

		sig := signal.Hold
		if snap, err := l.analyzer.TechnicalSnapshot(ticker, "1mo"); err == nil {
			sig = snap.OverallSignal
		}

		value := pos.shares.Mul(price)
		cost := pos.shares.Mul(pos.entryPrice)
		pnl := value.Sub(cost)
		pnlPct := 0.0
		if !cost.IsZero() {
			pnlPct, _ = pnl.Div(cost).Mul(decimal.NewFromInt(100)).Float64()
		}

		totalValue = totalValue.Add(value)
		totalCost = totalCost.Add(cost)

		shares, _ := pos.shares.Float64()
		entryPrice, _ := pos.entryPrice.Round(2).Float64()
		currentPrice, _ := price.Round(2).Float64()
		marketValue, _ := value.Round(2).Float64()
		pnlF, _ := pnl.Round(2).Float64()

		out.Positions = append(out.Positions, PositionView{
			Ticker:           ticker,
			Shares:           shares,
			EntryPrice:       entryPrice,
			EntryDate:        pos.entryDate.Format("2006-01-02"),
			CurrentPrice:     currentPrice,
			MarketValue:      marketValue,
			UnrealizedPnL:    pnlF,
			UnrealizedPnLPct: round2(pnlPct),
			Signal:           sig,
		})
	}

	totalPnL := totalValue.Sub(totalCost)
	portfolioValue := l.cash.Add(totalValue)
	out.Cash, _ = l.cash.Round(2).Float64()
	out.TotalPositionValue, _ = totalValue.Round(2).Float64()
	out.TotalPortfolioValue, _ = portfolioValue.Round(2).Float64()
	out.TotalUnrealizedPnL, _ = totalPnL.Round(2).Float64()
	// the account-level pct is taken against cash plus cost basis, not the
	// cost basis alone
	if basis := portfolioValue.Sub(totalPnL); !basis.IsZero() {
		pct, _ := totalPnL.Div(basis).Mul(decimal.NewFromInt(100)).Float64()
		out.TotalUnrealizedPnLPct = round2(pct)
	}
	return out
}

func round2(v float64) float64 { return indicator.Round(v, 2) }

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
