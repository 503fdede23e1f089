package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/sitshu/stock-analyst/internal/model"
)

const defaultRateLimit = 5 // requests per second

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client  *http.Client
	limiter *rate.Limiter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support and a client-side rate limiter.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateLimit),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// SetRate adjusts the client-side request rate limit.
func (f *YahooFetcher) SetRate(perSec float64) {
	if perSec > 0 {
		f.limiter.SetLimit(rate.Limit(perSec))
	}
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// rawValue is Yahoo's {raw, fmt} numeric wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// yahooQuoteSummary covers the quoteSummary modules this fetcher reads.
type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile *struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			Price *struct {
				ShortName          string    `json:"shortName"`
				LongName           string    `json:"longName"`
				RegularMarketPrice *rawValue `json:"regularMarketPrice"`
				MarketCap          *rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail *struct {
				TrailingPE *rawValue `json:"trailingPE"`
				ForwardPE  *rawValue `json:"forwardPE"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				EnterpriseValue   *rawValue `json:"enterpriseValue"`
				SharesOutstanding *rawValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				FreeCashflow  *rawValue `json:"freeCashflow"`
				EBITDA        *rawValue `json:"ebitda"`
				GrossMargins  *rawValue `json:"grossMargins"`
				ProfitMargins *rawValue `json:"profitMargins"`
			} `json:"financialData"`
			EarningsHistory *struct {
				History []struct {
					Quarter         *rawValue `json:"quarter"`
					EPSActual       *rawValue `json:"epsActual"`
					EPSEstimate     *rawValue `json:"epsEstimate"`
					SurprisePercent *rawValue `json:"surprisePercent"`
					Period          string    `json:"period"`
				} `json:"history"`
			} `json:"earningsHistory"`
			CalendarEvents *struct {
				Earnings struct {
					EarningsDate []rawValue `json:"earningsDate"`
					EPSEstimate  *rawValue  `json:"earningsAverage"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) getJSON(u string, out interface{}) error {
	if err := f.limiter.Wait(context.Background()); err != nil {
		return err
	}
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (f *YahooFetcher) fetchChart(ticker string, q HistoryQuery) ([]model.PriceBar, error) {
	interval := q.Interval
	if interval == "" {
		interval = "1d"
	}
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s",
		url.PathEscape(ticker), interval)
	if !q.Start.IsZero() || !q.End.IsZero() {
		start := q.Start
		end := q.End
		if end.IsZero() {
			end = time.Now()
		}
		u += fmt.Sprintf("&period1=%d&period2=%d", start.Unix(), end.Unix())
	} else {
		period := q.Period
		if period == "" {
			period = "1y"
		}
		u += "&range=" + period
	}

	var chart yahooChart
	if err := f.getJSON(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil // no data, not a fault
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.PriceBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.PriceBar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// PriceHistory fetches daily bars for the requested window.
func (f *YahooFetcher) PriceHistory(ticker string, q HistoryQuery) ([]model.PriceBar, error) {
	return f.fetchChart(ticker, q)
}

func (f *YahooFetcher) quoteSummary(ticker string, modules string) (*yahooQuoteSummary, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=%s",
		url.PathEscape(ticker), modules)
	var qs yahooQuoteSummary
	if err := f.getJSON(u, &qs); err != nil {
		return nil, err
	}
	if qs.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", qs.QuoteSummary.Error.Description)
	}
	return &qs, nil
}

// EarningsDates returns earnings events newest first: the next scheduled
// report (if any) followed by reported quarters.
func (f *YahooFetcher) EarningsDates(ticker string, limit int) ([]model.EarningsEvent, error) {
	qs, err := f.quoteSummary(ticker, "earningsHistory,calendarEvents")
	if err != nil {
		return nil, err
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return nil, nil
	}
	r := qs.QuoteSummary.Result[0]

	events := []model.EarningsEvent{}
	if r.CalendarEvents != nil && len(r.CalendarEvents.Earnings.EarningsDate) > 0 {
		if ts := r.CalendarEvents.Earnings.EarningsDate[0].Raw; ts != nil {
			ev := model.EarningsEvent{
				ReportDate: model.NewDate(time.Unix(int64(*ts), 0).UTC()),
			}
			if est := r.CalendarEvents.Earnings.EPSEstimate; est != nil {
				ev.EPSEstimate = est.Raw
			}
			events = append(events, ev)
		}
	}
	if r.EarningsHistory != nil {
		// history arrives oldest first; walk backwards for newest-first order
		h := r.EarningsHistory.History
		for i := len(h) - 1; i >= 0; i-- {
			if h[i].Quarter == nil || h[i].Quarter.Raw == nil {
				continue
			}
			ev := model.EarningsEvent{
				ReportDate:  model.NewDate(time.Unix(int64(*h[i].Quarter.Raw), 0).UTC()),
				EPSActual:   rawPtr(h[i].EPSActual),
				EPSEstimate: rawPtr(h[i].EPSEstimate),
			}
			if sp := rawPtr(h[i].SurprisePercent); sp != nil {
				pct := *sp * 100.0 // Yahoo reports a fraction
				ev.EPSSurprisePct = &pct
			}
			if h[i].Period != "" {
				p := h[i].Period
				ev.FiscalQuarter = &p
			}
			events = append(events, ev)
		}
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Info returns a flat map of fundamental fields, empty when Yahoo refuses
// the quoteSummary request. Callers must tolerate total absence.
func (f *YahooFetcher) Info(ticker string) (map[string]any, error) {
	qs, err := f.quoteSummary(ticker, "assetProfile,price,summaryDetail,defaultKeyStatistics,financialData")
	if err != nil {
		return map[string]any{}, nil // degraded provider, not a fault
	}
	info := map[string]any{}
	if len(qs.QuoteSummary.Result) == 0 {
		return info, nil
	}
	r := qs.QuoteSummary.Result[0]
	if ap := r.AssetProfile; ap != nil {
		putString(info, "sector", ap.Sector)
		putString(info, "industry", ap.Industry)
		putString(info, "longBusinessSummary", ap.LongBusinessSummary)
	}
	if p := r.Price; p != nil {
		putString(info, "shortName", p.ShortName)
		putString(info, "longName", p.LongName)
		putRaw(info, "currentPrice", p.RegularMarketPrice)
		putRaw(info, "marketCap", p.MarketCap)
	}
	if sd := r.SummaryDetail; sd != nil {
		putRaw(info, "trailingPE", sd.TrailingPE)
		putRaw(info, "forwardPE", sd.ForwardPE)
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		putRaw(info, "enterpriseValue", ks.EnterpriseValue)
		putRaw(info, "sharesOutstanding", ks.SharesOutstanding)
	}
	if fd := r.FinancialData; fd != nil {
		putRaw(info, "freeCashflow", fd.FreeCashflow)
		putRaw(info, "ebitda", fd.EBITDA)
		putRaw(info, "grossMargins", fd.GrossMargins)
		putRaw(info, "profitMargins", fd.ProfitMargins)
	}
	return info, nil
}

// LastClose returns the most recent daily close.
func (f *YahooFetcher) LastClose(ticker string) (float64, error) {
	bars, err := f.fetchChart(ticker, HistoryQuery{Period: "5d", Interval: "1d"})
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("yahoo: no price data for %s", ticker)
	}
	return bars[len(bars)-1].Close, nil
}

func rawPtr(v *rawValue) *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

func putString(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

func putRaw(m map[string]any, key string, v *rawValue) {
	if v != nil && v.Raw != nil {
		m[key] = *v.Raw
	}
}
