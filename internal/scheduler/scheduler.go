package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/sitshu/stock-analyst/internal/metrics"
	"github.com/sitshu/stock-analyst/internal/trading"
)

// Scheduler runs the periodic watchlist alert scan.
type Scheduler struct {
	Cron      *cron.Cron
	Trading   *trading.Service
	Watchlist []string
	Log       zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(t *trading.Service, watchlist []string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Trading:   t,
		Watchlist: watchlist,
		Log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Register wires the alert scan onto the cron spec.
func (s *Scheduler) Register(alertsCron string) error {
	if _, err := s.Cron.AddFunc(alertsCron, s.scanAlerts); err != nil {
		return fmt.Errorf("register alert scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the alert scan immediately (for manual trigger).
func (s *Scheduler) RunScanNow() {
	s.scanAlerts()
}

func (s *Scheduler) scanAlerts() {
	metrics.AlertScansTotal.Inc()
	s.Log.Info().Int("watchlist", len(s.Watchlist)).Msg("running alert scan")

	alerts := s.Trading.Alerts(s.Watchlist)
	for _, a := range alerts {
		s.Log.Info().
			Str("ticker", a.Ticker).
			Str("type", a.Type).
			Str("message", a.Message).
			Msg("alert")
	}
	if len(alerts) == 0 {
		s.Log.Info().Msg("no alerts")
	}
}
