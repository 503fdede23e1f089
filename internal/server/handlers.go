package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sitshu/stock-analyst/internal/backtest"
	"github.com/sitshu/stock-analyst/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.analyzer.Profile(r.PathValue("ticker"))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	events, err := s.analyzer.EarningsEvents(ticker, queryInt(r, "limit", 0))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Ticker string                `json:"ticker"`
		Events []model.EarningsEvent `json:"events"`
	}{strings.ToUpper(strings.TrimSpace(ticker)), events})
}

func (s *Server) handleReaction(w http.ResponseWriter, r *http.Request) {
	report, err := s.analyzer.Reaction(r.PathValue("ticker"), queryInt(r, "limit", 0))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := r.PathValue("ticker")
	items, err := s.news.Headlines(r.Context(), ticker, queryInt(r, "limit", 0))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Ticker string           `json:"ticker"`
		Items  []model.NewsItem `json:"items"`
	}{strings.ToUpper(strings.TrimSpace(ticker)), items})
}

func (s *Server) handleTechnical(w http.ResponseWriter, r *http.Request) {
	snap, err := s.analyzer.TechnicalSnapshot(r.PathValue("ticker"), r.URL.Query().Get("period"))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleMultiTimeframe(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	writeJSON(w, http.StatusOK, struct {
		Ticker     string                           `json:"ticker"`
		Timeframes map[string]model.TimeframeSignal `json:"timeframes"`
	}{ticker, s.analyzer.MultiTimeframe(ticker)})
}

func (s *Server) handleRiskMetrics(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	risk, err := s.trading.RiskMetrics(ticker)
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Ticker      string            `json:"ticker"`
		RiskMetrics model.RiskMetrics `json:"risk_metrics"`
	}{ticker, risk})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	tickers := queryList(r, "tickers")
	if len(tickers) == 0 {
		tickers = s.calendar.Watchlist
	}
	rows := s.trading.Export(tickers)
	writeJSON(w, http.StatusOK, struct {
		Count int               `json:"count"`
		Rows  []model.ExportRow `json:"rows"`
	}{len(rows), rows})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	watchlist := queryList(r, "watchlist")
	if len(watchlist) == 0 {
		watchlist = s.calendar.Watchlist
	}
	alerts := s.trading.Alerts(watchlist)
	writeJSON(w, http.StatusOK, struct {
		Count  int           `json:"count"`
		Alerts []model.Alert `json:"alerts"`
	}{len(alerts), alerts})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	events := s.calendar.Upcoming(queryInt(r, "days_ahead", 0), queryList(r, "tickers"))
	writeJSON(w, http.StatusOK, struct {
		Count  int                   `json:"count"`
		Events []model.CalendarEvent `json:"events"`
	}{len(events), events})
}

func (s *Server) handleHighVolatility(w http.ResponseWriter, r *http.Request) {
	events := s.calendar.HighVolatility(queryFloat(r, "min_avg_move", 0), queryInt(r, "days_ahead", 0))
	writeJSON(w, http.StatusOK, struct {
		Count  int                   `json:"count"`
		Events []model.CalendarEvent `json:"events"`
	}{len(events), events})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.calendar.Comparison(r.PathValue("ticker"), queryList(r, "peers"))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleBacktestEarnings(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = backtest.StrategySurprise
	}
	result, err := s.backtest.Earnings(r.PathValue("ticker"), strategy, queryInt(r, "lookback_days", 365))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBacktestTechnical(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = backtest.StrategyRSIOversold
	}
	result, err := s.backtest.Technical(r.PathValue("ticker"), strategy, queryInt(r, "lookback_days", 365))
	if err != nil {
		writeFault(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Summary())
}

func (s *Server) handlePortfolioAdd(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		writeBadRequest(w, "ticker is required")
		return
	}
	shares, err := strconv.ParseFloat(r.URL.Query().Get("shares"), 64)
	if err != nil || shares <= 0 {
		writeBadRequest(w, "shares must be a positive number")
		return
	}
	price := queryFloat(r, "price", 0)

	outcome := s.ledger.Add(ticker, shares, price)
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handlePortfolioRemove(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		writeBadRequest(w, "ticker is required")
		return
	}
	var shares *float64
	if raw := r.URL.Query().Get("shares"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			writeBadRequest(w, "shares must be a positive number")
			return
		}
		shares = &v
	}

	outcome := s.ledger.Remove(ticker, shares)
	writeJSON(w, http.StatusOK, outcome)
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func queryList(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
