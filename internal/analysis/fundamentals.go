package analysis

import "github.com/sitshu/stock-analyst/internal/model"

// Profile builds a best-effort fundamentals profile. Provider access may be
// degraded; every missing field degrades to nil and the price falls back to
// the last traded close.
func (a *Analyzer) Profile(ticker string) (*model.TickerProfile, error) {
	ticker = normalizeTicker(ticker)

	info, err := a.Fetcher.Info(ticker)
	if err != nil || info == nil {
		info = map[string]any{}
	}

	p := &model.TickerProfile{Ticker: ticker}

	p.Name = firstString(info, "shortName", "longName")
	p.Sector = infoString(info, "sector")
	p.Industry = infoString(info, "industry")
	p.Description = infoString(info, "longBusinessSummary")
	p.GrossMargin = infoFloat(info, "grossMargins")
	p.ProfitMargin = infoFloat(info, "profitMargins")

	p.Price = infoFloat(info, "currentPrice")
	if p.Price == nil {
		if last, err := a.Fetcher.LastClose(ticker); err == nil && last != 0 {
			p.Price = ptr(last)
		}
	}

	p.MarketCap = infoFloat(info, "marketCap")
	if p.MarketCap == nil {
		if shares := infoFloat(info, "sharesOutstanding"); shares != nil && p.Price != nil {
			p.MarketCap = ptr(*shares * *p.Price)
		}
	}

	p.PE = infoFloat(info, "trailingPE")
	if p.PE == nil {
		p.PE = infoFloat(info, "forwardPE")
	}

	if fcf := infoFloat(info, "freeCashflow"); fcf != nil && *fcf > 0 && p.MarketCap != nil {
		p.PFCF = ptr(*p.MarketCap / *fcf)
	}
	if ebitda := infoFloat(info, "ebitda"); ebitda != nil && *ebitda > 0 {
		if ev := infoFloat(info, "enterpriseValue"); ev != nil {
			p.EVEBITDA = ptr(*ev / *ebitda)
		}
	}

	return p, nil
}

func infoFloat(info map[string]any, key string) *float64 {
	switch v := info[key].(type) {
	case float64:
		return ptr(v)
	case int:
		return ptr(float64(v))
	default:
		return nil
	}
}

func infoString(info map[string]any, key string) *string {
	if s, ok := info[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func firstString(info map[string]any, keys ...string) *string {
	for _, k := range keys {
		if s := infoString(info, k); s != nil {
			return s
		}
	}
	return nil
}
