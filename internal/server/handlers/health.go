package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"starfield-server/internal/shared/response"
)

type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	SessionStore string `json:"session_store"`
	StoreStatus  string `json:"store_status"`
}

// StoreCheck pings the session store. A nil check reports the store as
// in-process.
type StoreCheck func(ctx context.Context) error

type HealthHandler struct {
	store string
	check StoreCheck
}

func NewHealthHandler(store string, check StoreCheck) *HealthHandler {
	return &HealthHandler{store: store, check: check}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	status := "healthy"
	storeStatus := "in_process"
	if h.check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		storeStatus = "connected"
		if err := h.check(ctx); err != nil {
			logger.Warn("Session store ping failed", "store", h.store, "error", err)
			storeStatus = "disconnected"
			status = "degraded"
		}
	}

	resp := HealthResponse{
		Status:       status,
		Timestamp:    time.Now().Format(time.RFC3339),
		SessionStore: h.store,
		StoreStatus:  storeStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
