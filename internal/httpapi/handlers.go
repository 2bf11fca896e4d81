package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shaktinet/wifidash/internal/domain"
)

// apiTimeLayout matches what the dashboard renders verbatim.
const apiTimeLayout = "2006-01-02 15:04:05"

// statusEntry is the wire shape of one target's current status.
type statusEntry struct {
	IP      string   `json:"ip"`
	Status  string   `json:"status"`
	Last    *string  `json:"last"`
	Latency *float64 `json:"latency"`
}

func statusPayload(records map[string]domain.StatusRecord) map[string]statusEntry {
	out := make(map[string]statusEntry, len(records))
	for name, rec := range records {
		e := statusEntry{
			IP:      rec.Address,
			Status:  string(rec.State),
			Latency: rec.LatencyMS,
		}
		if rec.LastCheckedAt != nil {
			last := rec.LastCheckedAt.Format(apiTimeLayout)
			e.Last = &last
		}
		out[name] = e
	}
	return out
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusPayload(s.Store.SnapshotAll()))
}

type historyEntry struct {
	Time      string   `json:"time"`
	Reachable bool     `json:"reachable"`
	Latency   *float64 `json:"latency"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	samples, ok := s.Store.History(name)
	if !ok {
		http.Error(w, "unknown target", http.StatusNotFound)
		return
	}

	out := make([]historyEntry, len(samples))
	for i, sm := range samples {
		out[i] = historyEntry{
			Time:      sm.At.Format(apiTimeLayout),
			Reachable: sm.Reachable,
			Latency:   sm.LatencyMS,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type speedtestPayload struct {
	SSID         string   `json:"ssid"`
	DownloadMbps *float64 `json:"download_mbps"`
	UploadMbps   *float64 `json:"upload_mbps"`
	PingMS       *float64 `json:"ping_ms"`
	Health       string   `json:"health"`
	HealthColor  string   `json:"health_color"`
	Time         string   `json:"time"`
}

// handleSpeedtest runs the measurement synchronously; it can take tens of
// seconds. The gateway serializes runs and never touches the store lock, so
// status requests and the monitor keep flowing meanwhile.
func (s *Server) handleSpeedtest(w http.ResponseWriter, r *http.Request) {
	res := s.Gateway.Measure(r.Context())

	s.Logger.Info("speedtest_served",
		zap.String("ssid", res.SSID),
		zap.String("health", string(res.Health)),
	)

	writeJSON(w, http.StatusOK, speedtestPayload{
		SSID:         res.SSID,
		DownloadMbps: res.DownloadMbps,
		UploadMbps:   res.UploadMbps,
		PingMS:       res.PingMS,
		Health:       string(res.Health),
		HealthColor:  res.Health.Color(),
		Time:         res.MeasuredAt.Format(apiTimeLayout),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
