package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/userbase/backend/api/transport"
	"github.com/userbase/backend/internal/infrastructure/monitor"
	"github.com/userbase/backend/internal/middleware"
	"github.com/userbase/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	appName string
	monitor *monitor.Monitor
}

func NewHealthHandler(appName string, mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		appName:     appName,
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"postgresql": status.PostgreSQL,
			"redis":      status.Redis,
		},
	}

	if status.PostgreSQL && status.Redis {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}

// @Summary Service banner
// @Tags health
// @Router / [get]
func (h *HealthHandler) Root(ctx *fasthttp.RequestCtx) {
	payload := map[string]interface{}{
		"app":  h.appName,
		"docs": "/health",
	}
	if user := middleware.UserFrom(ctx); user != nil {
		payload["user"] = user.Email
	}
	h.respondSuccess(ctx, http.StatusOK, payload)
}
