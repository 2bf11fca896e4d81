package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shaktinet/wifidash/internal/config"
	"github.com/shaktinet/wifidash/internal/eventlog"
	"github.com/shaktinet/wifidash/internal/httpapi"
	"github.com/shaktinet/wifidash/internal/logging"
	"github.com/shaktinet/wifidash/internal/metrics"
	"github.com/shaktinet/wifidash/internal/probe"
	"github.com/shaktinet/wifidash/internal/scheduler"
	"github.com/shaktinet/wifidash/internal/speedtest"
	"github.com/shaktinet/wifidash/internal/state"
	"github.com/shaktinet/wifidash/internal/wifi"
)

// speedtestRPM bounds how often one client can trigger a bandwidth
// measurement; each run ties up the uplink for tens of seconds.
const speedtestRPM = 6

func main() {
	cfg := config.FromEnv()
	if err := cfg.LoadTargets(); err != nil {
		log.Fatal(err) // malformed target set is fatal at startup only
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store := state.NewStore(cfg.Targets, cfg.HistoryLen)
	m := metrics.New(prometheus.DefaultRegisterer)
	events := eventlog.New(cfg.EventLog)
	defer func() { _ = events.Close() }()

	mon := scheduler.NewMonitor(
		logger,
		store,
		probe.New(cfg.Pinger, cfg.PingTimeout),
		cfg.Interval,
		cfg.Concurrency,
		events,
		m,
	)

	gw := speedtest.NewGateway(logger, speedtest.NewNetRunner(), wifi.CurrentSSID, m)
	api := httpapi.NewServer(logger, store, gw, cfg.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go mon.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(promhttp.Handler(), speedtestRPM),
	}
	go func() {
		logger.Info("api_listen",
			zap.String("addr", cfg.Addr),
			zap.Int("targets", len(cfg.Targets)),
			zap.Duration("interval", cfg.Interval),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_serve_error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
