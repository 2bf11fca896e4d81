package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/shaktinet/wifidash/internal/httpapi/middleware"
	"github.com/shaktinet/wifidash/internal/speedtest"
	"github.com/shaktinet/wifidash/internal/state"
)

//go:embed static
var embeddedStatic embed.FS

// Server exposes the monitoring state and the speedtest gateway over HTTP,
// plus the embedded dashboard page that consumes them.
type Server struct {
	Logger   *zap.Logger
	Store    *state.Store
	Gateway  *speedtest.Gateway
	Interval time.Duration // websocket push cadence, mirrors the monitor
}

func NewServer(l *zap.Logger, store *state.Store, gw *speedtest.Gateway, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 8 * time.Second
	}
	return &Server{Logger: l, Store: store, Gateway: gw, Interval: interval}
}

// Router builds the HTTP surface. metricsHandler serves /metrics when
// non-nil; speedtestRPM rate-limits the speedtest route per client IP
// (0 disables).
func (s *Server) Router(metricsHandler http.Handler, speedtestRPM int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/status/{name}/history", s.handleHistory)
	r.Get("/api/ws", s.handleStatusWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(speedtestRPM, 2))
		r.Get("/api/speedtest", s.handleSpeedtest)
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err == nil {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			data, err := fs.ReadFile(staticFS, "index.html")
			if err != nil {
				http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(data)
		})
	}

	return r
}
