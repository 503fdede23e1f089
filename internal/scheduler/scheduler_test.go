package scheduler

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/provider"
	"github.com/sitshu/stock-analyst/internal/trading"
)

func newTestScheduler() *Scheduler {
	analyzer := analysis.New(&provider.MockFetcher{Bars: provider.GenerateBars(100, 60)})
	return NewScheduler(trading.NewService(analyzer), []string{"AAPL"}, zerolog.Nop())
}

func TestRegister(t *testing.T) {
	s := newTestScheduler()
	if err := s.Register("0 0 13 * * 1-5"); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestRegisterBadSpec(t *testing.T) {
	s := newTestScheduler()
	if err := s.Register("not a cron spec"); err == nil {
		t.Error("expected error for malformed cron spec")
	}
}

func TestRunScanNow(t *testing.T) {
	s := newTestScheduler()
	// a scan over healthy mock data must complete without firing cron
	s.RunScanNow()
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler()
	if err := s.Register("0 0 13 * * 1-5"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s.Start()
	s.Stop()
}
