package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shaktinet/wifidash/internal/eventlog"
	"github.com/shaktinet/wifidash/internal/metrics"
	"github.com/shaktinet/wifidash/internal/probe"
	"github.com/shaktinet/wifidash/internal/state"
)

// Monitor drives the probe loop: every Interval it probes all targets with
// bounded concurrency and applies the results to the store.
type Monitor struct {
	Logger      *zap.Logger
	Store       *state.Store
	Pinger      probe.Pinger
	Interval    time.Duration
	Concurrency int
	Events      *eventlog.Writer
	Metrics     *metrics.Metrics
}

func NewMonitor(
	logger *zap.Logger,
	store *state.Store,
	pinger probe.Pinger,
	interval time.Duration,
	concurrency int,
	events *eventlog.Writer,
	m *metrics.Metrics,
) *Monitor {
	if interval <= 0 {
		interval = 8 * time.Second
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Monitor{
		Logger:      logger,
		Store:       store,
		Pinger:      pinger,
		Interval:    interval,
		Concurrency: concurrency,
		Events:      events,
		Metrics:     m,
	}
}

// Run starts the loop: an immediate pass, then one per tick until ctx is
// cancelled. Ticks never overlap; when a pass outlasts the interval the
// next one starts right after it finishes (the pending tick fires
// immediately), so a slow pass degrades cadence instead of stacking passes.
func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.Interval)
	defer t.Stop()

	m.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("monitor_stopped")
			return
		case <-t.C:
			m.runOnce(ctx)
		}
	}
}

// runOnce probes every target once. A failing target is recorded as Down
// and never aborts the tick for the others; runOnce has no error path.
func (m *Monitor) runOnce(ctx context.Context) {
	targets := m.Store.Targets()
	if len(targets) == 0 {
		return
	}
	start := time.Now()

	sem := make(chan struct{}, m.Concurrency)
	var wg sync.WaitGroup

	for _, tgt := range targets {
		t := tgt
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			res := m.Pinger.Ping(ctx, t.Address)
			now := time.Now()

			m.Store.Apply(t.Name, res.Reachable, res.LatencyMS, now)
			m.Events.Record(now, t.Name, res.Reachable, res.LatencyMS)
			m.Metrics.ObserveProbe(t.Name, res.Reachable, res.LatencyMS)

			if res.Reachable {
				m.Logger.Debug("probe_ok",
					zap.String("target", t.Name),
					zap.String("address", t.Address),
					zap.Float64p("latency_ms", res.LatencyMS),
				)
			} else {
				m.Logger.Debug("probe_failed",
					zap.String("target", t.Name),
					zap.String("address", t.Address),
				)
			}
		}()
	}

	wg.Wait()

	m.Logger.Debug("monitor_tick",
		zap.Int("targets", len(targets)),
		zap.Duration("took", time.Since(start)),
	)
}
