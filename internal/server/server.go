package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/backtest"
	"github.com/sitshu/stock-analyst/internal/calendar"
	"github.com/sitshu/stock-analyst/internal/metrics"
	"github.com/sitshu/stock-analyst/internal/news"
	"github.com/sitshu/stock-analyst/internal/portfolio"
	"github.com/sitshu/stock-analyst/internal/trading"
)

// Server is the HTTP front end over the analytic services.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger

	analyzer *analysis.Analyzer
	trading  *trading.Service
	backtest *backtest.Engine
	calendar *calendar.Service
	ledger   *portfolio.Ledger
	news     *news.Client
}

// New assembles the server and its route table.
func New(addr string, log zerolog.Logger, a *analysis.Analyzer, t *trading.Service,
	b *backtest.Engine, c *calendar.Service, l *portfolio.Ledger, n *news.Client) *Server {

	s := &Server{
		log:      log.With().Str("component", "http").Logger(),
		analyzer: a,
		trading:  t,
		backtest: b,
		calendar: c,
		ledger:   l,
		news:     n,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /profile/{ticker}", s.handleProfile)
	mux.HandleFunc("GET /earnings/{ticker}", s.handleEarnings)
	mux.HandleFunc("GET /reaction/{ticker}", s.handleReaction)
	mux.HandleFunc("GET /news/{ticker}", s.handleNews)
	mux.HandleFunc("GET /technical/{ticker}", s.handleTechnical)
	mux.HandleFunc("GET /technical/multi-timeframe/{ticker}", s.handleMultiTimeframe)
	mux.HandleFunc("GET /trading/risk-metrics/{ticker}", s.handleRiskMetrics)
	mux.HandleFunc("GET /trading/export", s.handleExport)
	mux.HandleFunc("GET /trading/alerts", s.handleAlerts)
	mux.HandleFunc("GET /calendar/earnings", s.handleCalendar)
	mux.HandleFunc("GET /calendar/high-volatility", s.handleHighVolatility)
	mux.HandleFunc("GET /sector/comparison/{ticker}", s.handleComparison)
	mux.HandleFunc("GET /backtest/earnings/{ticker}", s.handleBacktestEarnings)
	mux.HandleFunc("GET /backtest/technical/{ticker}", s.handleBacktestTechnical)
	mux.HandleFunc("GET /portfolio", s.handlePortfolio)
	mux.HandleFunc("POST /portfolio/add", s.handlePortfolioAdd)
	mux.HandleFunc("POST /portfolio/remove", s.handlePortfolioRemove)
	mux.Handle("GET /metrics", metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withLogging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
