package handlers

import (
	"log/slog"
	"net/http"

	"starfield-server/internal/shared/errors"
	"starfield-server/internal/shared/request"
	"starfield-server/internal/shared/response"
	"starfield-server/internal/space"
	"starfield-server/internal/system"
)

type SystemHandler struct {
	service *system.Service
}

func NewSystemHandler(service *system.Service) *SystemHandler {
	return &SystemHandler{service: service}
}

func (h *SystemHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	x, err := request.PathInt64(r, "x")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	y, err := request.PathInt64(r, "y")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	star, err := h.service.GetSystem(r.Context(), space.Cell{X: x, Y: y})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, star)
}
