// Package metrics registers Prometheus collectors for the monitor loop and
// the speedtest gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shaktinet/wifidash/internal/domain"
)

type Metrics struct {
	ProbesTotal    *prometheus.CounterVec
	TargetUp       *prometheus.GaugeVec
	ProbeLatencyMS *prometheus.GaugeVec

	SpeedtestsTotal       *prometheus.CounterVec
	SpeedtestDownloadMbps prometheus.Gauge
	SpeedtestUploadMbps   prometheus.Gauge
	SpeedtestPingMS       prometheus.Gauge
}

// New creates and registers all collectors against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProbesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wifidash_probes_total",
				Help: "Probe attempts by target and outcome",
			},
			[]string{"target", "outcome"},
		),
		TargetUp: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wifidash_target_up",
				Help: "1 when the most recent probe of the target succeeded",
			},
			[]string{"target"},
		),
		ProbeLatencyMS: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wifidash_probe_latency_ms",
				Help: "Latency of the most recent successful probe in milliseconds",
			},
			[]string{"target"},
		),
		SpeedtestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wifidash_speedtests_total",
				Help: "Speedtest runs by outcome",
			},
			[]string{"outcome"},
		),
		SpeedtestDownloadMbps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wifidash_speedtest_download_mbps",
			Help: "Download speed of the most recent successful speedtest",
		}),
		SpeedtestUploadMbps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wifidash_speedtest_upload_mbps",
			Help: "Upload speed of the most recent successful speedtest",
		}),
		SpeedtestPingMS: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wifidash_speedtest_ping_ms",
			Help: "Ping of the most recent successful speedtest",
		}),
	}
}

// ObserveProbe records one probe outcome. Nil-safe so wiring metrics stays
// optional.
func (m *Metrics) ObserveProbe(target string, reachable bool, latencyMS *float64) {
	if m == nil {
		return
	}
	outcome := "down"
	up := 0.0
	if reachable {
		outcome = "up"
		up = 1
	}
	m.ProbesTotal.WithLabelValues(target, outcome).Inc()
	m.TargetUp.WithLabelValues(target).Set(up)
	if latencyMS != nil {
		m.ProbeLatencyMS.WithLabelValues(target).Set(*latencyMS)
	}
}

// ObserveSpeedtest records one gateway measurement.
func (m *Metrics) ObserveSpeedtest(res domain.SpeedResult) {
	if m == nil {
		return
	}
	if res.DownloadMbps == nil {
		m.SpeedtestsTotal.WithLabelValues("failure").Inc()
		return
	}
	m.SpeedtestsTotal.WithLabelValues("success").Inc()
	m.SpeedtestDownloadMbps.Set(*res.DownloadMbps)
	if res.UploadMbps != nil {
		m.SpeedtestUploadMbps.Set(*res.UploadMbps)
	}
	if res.PingMS != nil {
		m.SpeedtestPingMS.Set(*res.PingMS)
	}
}
