package rest

import (
	"net/http"

	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
	"github.com/Xyon15/Hardware-Monitor/internal/logger"
	"github.com/Xyon15/Hardware-Monitor/internal/metrics"
)

type SensorsHandler struct {
	provider hardware.Provider
	log      logger.Logger
}

func NewSensorsHandler(provider hardware.Provider, log logger.Logger) *SensorsHandler {
	return &SensorsHandler{provider: provider, log: log}
}

// Index dumps the raw hardware tree, bypassing the cache: every request
// triggers a provider refresh unconditionally. A failed refresh still dumps
// whatever values the tree holds.
func (h *SensorsHandler) Index(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.Refresh(r.Context()); err != nil {
		h.log.Warn("diagnostic refresh failed, dumping stale values", "error", err)
	}

	writeJSONIndented(w, http.StatusOK, metrics.DumpSensors(h.provider.Enumerate()))
}
