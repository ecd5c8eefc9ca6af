// Package rest
package rest

import (
	"net/http"

	"github.com/Xyon15/Hardware-Monitor/internal/metrics"
)

type MetricsHandler struct {
	reader *metrics.CachedReader
}

func NewMetricsHandler(reader *metrics.CachedReader) *MetricsHandler {
	return &MetricsHandler{reader: reader}
}

// Latest serves the normalized snapshot. Sensor-level problems never reach
// this layer; worst case every field is null.
func (h *MetricsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reader.Get(r.Context()))
}
