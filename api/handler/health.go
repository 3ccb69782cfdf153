package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/alphadate/api/transport"
	"github.com/fastygo/alphadate/internal/infrastructure/monitor"
	"github.com/fastygo/alphadate/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	if status.LastCheck.IsZero() {
		status = h.monitor.Refresh()
	}
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"backend":   status.Backend,
		"services": map[string]interface{}{
			"remote": map[string]interface{}{
				"configured": status.RemoteConfigured,
				"online":     status.Remote,
			},
			"redis": map[string]interface{}{
				"configured": status.RedisConfigured,
				"online":     status.Redis,
			},
			"local": map[string]interface{}{
				"online": status.Local,
				"keys":   status.LocalKeys,
				"txs": map[string]interface{}{
					"read": status.LocalReadTxs,
					"open": status.LocalOpenTxs,
				},
			},
		},
	}

	if status.Healthy() {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
