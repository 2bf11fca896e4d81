// Package speedtest wraps the external bandwidth-measurement routine and
// classifies its result.
package speedtest

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shaktinet/wifidash/internal/domain"
	"github.com/shaktinet/wifidash/internal/metrics"
)

// Measurement is the raw output of one bandwidth run.
type Measurement struct {
	DownloadMbps float64
	UploadMbps   float64
	PingMS       float64
}

// Runner performs the actual measurement: server discovery, a download
// test, an upload test and a latency sample. It may take tens of seconds
// and has no enforced timeout; callers set their own expectations.
type Runner interface {
	Run(ctx context.Context) (Measurement, error)
}

// SSIDFunc resolves the current wireless network name. It never fails;
// the sentinel "Unknown" covers every error case.
type SSIDFunc func() string

// Gateway serializes measurement runs and turns their outcome into a
// SpeedResult. It holds no store locks, so a run in flight never blocks
// the monitor loop or status readers.
type Gateway struct {
	mu      sync.Mutex
	logger  *zap.Logger
	runner  Runner
	ssid    SSIDFunc
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewGateway(logger *zap.Logger, runner Runner, ssid SSIDFunc, m *metrics.Metrics) *Gateway {
	return &Gateway{
		logger:  logger,
		runner:  runner,
		ssid:    ssid,
		metrics: m,
		now:     time.Now,
	}
}

// Measure runs one bandwidth measurement. Any runner failure collapses to
// an all-nil result with HealthUnknown; the absent download figure is the
// failure signal the API layer renders. Rounding happens here, once, not
// at render time.
func (g *Gateway) Measure(ctx context.Context) domain.SpeedResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := domain.SpeedResult{
		SSID:       g.ssid(),
		MeasuredAt: g.now(),
	}

	m, err := g.runner.Run(ctx)
	if err != nil {
		g.logger.Warn("speedtest_failed", zap.Error(err))
		res.Health = domain.HealthUnknown
		g.metrics.ObserveSpeedtest(res)
		return res
	}

	dl := round2(m.DownloadMbps)
	ul := round2(m.UploadMbps)
	ping := round1(m.PingMS)
	res.DownloadMbps = &dl
	res.UploadMbps = &ul
	res.PingMS = &ping
	res.Health = domain.ComputeHealth(res.DownloadMbps)

	g.logger.Info("speedtest_done",
		zap.String("ssid", res.SSID),
		zap.Float64("download_mbps", dl),
		zap.Float64("upload_mbps", ul),
		zap.Float64("ping_ms", ping),
		zap.String("health", string(res.Health)),
	)
	g.metrics.ObserveSpeedtest(res)
	return res
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
