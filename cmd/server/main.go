package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sitshu/stock-analyst/internal/analysis"
	"github.com/sitshu/stock-analyst/internal/backtest"
	"github.com/sitshu/stock-analyst/internal/cache"
	"github.com/sitshu/stock-analyst/internal/calendar"
	"github.com/sitshu/stock-analyst/internal/config"
	"github.com/sitshu/stock-analyst/internal/logging"
	"github.com/sitshu/stock-analyst/internal/news"
	"github.com/sitshu/stock-analyst/internal/portfolio"
	"github.com/sitshu/stock-analyst/internal/provider"
	"github.com/sitshu/stock-analyst/internal/scheduler"
	"github.com/sitshu/stock-analyst/internal/server"
	"github.com/sitshu/stock-analyst/internal/trading"
)

func main() {
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot := logging.New("info")
		boot.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		boot := logging.New("info")
		boot.Fatal().Err(err).Msg("config validation")
	}

	log := logging.New(cfg.LogLevel)
	log.Info().Msg("stock-analyst starting")

	// Init fetcher, with a sqlite response cache in front of Yahoo
	yahoo := provider.NewYahooFetcher(cfg.DataSource.Proxy)
	yahoo.SetRate(cfg.DataSource.RatePerSec)

	var fetcher provider.Fetcher = yahoo
	store, err := cache.Open(cfg.DataSource.CachePath)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, fetching uncached")
	} else {
		defer store.Close()
		ttl := time.Duration(cfg.DataSource.CacheTTLMins) * time.Minute
		fetcher = provider.NewCachedFetcher(yahoo, store, ttl)
	}
	log.Info().Str("data_source", fetcher.Name()).Msg("provider ready")

	// Services
	analyzer := analysis.New(fetcher)
	trader := trading.NewService(analyzer)
	engine := backtest.NewEngine(fetcher, analyzer)
	cal := calendar.NewService(analyzer, trader, cfg.Watchlist)
	ledger := portfolio.NewLedger(cfg.Portfolio.StartingCash, fetcher, analyzer)
	newsClient := news.NewClient()

	// Scheduler
	sched := scheduler.NewScheduler(trader, cal.Watchlist, log)
	if err := sched.Register(cfg.Schedule.AlertsCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing alert scan now")
		go sched.RunScanNow()
	}

	// HTTP server
	srv := server.New(cfg.Server.Addr, log, analyzer, trader, engine, cal, ledger, newsClient)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stock-analyst stopped")
}
