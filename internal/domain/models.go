package domain

import "time"

// TargetState is the reachability state of a monitored target.
type TargetState string

const (
	StateUnknown TargetState = "Unknown"
	StateUp      TargetState = "UP"
	StateDown    TargetState = "DOWN"
)

// Target is one monitored network endpoint. The set is static for the
// lifetime of the process.
type Target struct {
	Name    string `yaml:"name" json:"name"`
	Address string `yaml:"address" json:"address"`
}

// StatusRecord is the current projection of one target. It is replaced
// wholesale on every scheduler tick, never mutated field by field.
//
// State==StateUp means the probe succeeded on the most recent tick.
// LatencyMS is nil when the probe failed, or when it succeeded without a
// parseable latency figure.
type StatusRecord struct {
	Address       string      `json:"address"`
	State         TargetState `json:"state"`
	LastCheckedAt *time.Time  `json:"last_checked_at"`
	LatencyMS     *float64    `json:"latency_ms"`
}

// HistorySample is one timestamped probe outcome in a target's history ring.
type HistorySample struct {
	At        time.Time `json:"time"`
	Reachable bool      `json:"reachable"`
	LatencyMS *float64  `json:"latency"`
}

// SpeedResult is one bandwidth measurement. It is created fresh per request
// and never persisted. All three numeric fields are nil when the underlying
// measurement failed; the absence of a download figure is the failure signal.
type SpeedResult struct {
	SSID         string      `json:"ssid"`
	DownloadMbps *float64    `json:"download_mbps"`
	UploadMbps   *float64    `json:"upload_mbps"`
	PingMS       *float64    `json:"ping_ms"`
	Health       HealthLabel `json:"health"`
	MeasuredAt   time.Time   `json:"measured_at"`
}
