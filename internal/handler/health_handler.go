package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_console/internal/utils"
	"github.com/GTDGit/inventory_console/pkg/inventory"
)

var startTime = time.Now()

// healthProbeTimeout bounds the API reachability check.
const healthProbeTimeout = 3 * time.Second

// HealthHandler provides health endpoint.
type HealthHandler struct {
	api       *inventory.Client
	pingStore func(ctx context.Context) error
}

// NewHealthHandler creates a new HealthHandler. pingStore may be nil when the
// session backend has nothing to ping.
func NewHealthHandler(api *inventory.Client, pingStore func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{api: api, pingStore: pingStore}
}

// GetHealth responds with console, API and session store status. Any
// HTTP response from the API counts as reachable.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	apiStatus := "connected"
	if err := h.api.Auth.Validate(ctx); err != nil && inventory.IsNoResponse(err) {
		apiStatus = "disconnected"
	}

	storeStatus := "connected"
	if h.pingStore != nil {
		if err := h.pingStore(ctx); err != nil {
			storeStatus = "disconnected"
		}
	}

	code := http.StatusOK
	status := "healthy"
	if apiStatus != "connected" || storeStatus != "connected" {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}

	utils.Success(c, code, "Service is "+status, gin.H{
		"status":  status,
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"inventoryApi": gin.H{
			"status":  apiStatus,
			"baseUrl": h.api.BaseURL(),
		},
		"sessionStore": gin.H{
			"status": storeStatus,
		},
	})
}
