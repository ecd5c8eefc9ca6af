package rest

import (
	"net/http"

	"github.com/Xyon15/Hardware-Monitor/internal/config"
	"github.com/Xyon15/Hardware-Monitor/internal/metrics"
	"github.com/Xyon15/Hardware-Monitor/internal/transport/rest/middleware"
	"github.com/Xyon15/Hardware-Monitor/internal/transport/websocket"
)

type RouterDeps struct {
	Metrics *MetricsHandler
	Sensors *SensorsHandler
	WS      *websocket.Handler

	Reader *metrics.CachedReader
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))

	// HEALTH
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if !deps.Reader.Healthy() {
			status = "degraded"
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": status})
	})

	// METRICS
	mux.HandleFunc("GET /metrics", deps.Metrics.Latest)

	// DIAGNOSTICS
	mux.HandleFunc("GET /sensors", deps.Sensors.Index)

	// WEBSOCKET
	mux.HandleFunc("GET /ws", deps.WS.Serve)

	return globalMw.Apply(mux)
}
