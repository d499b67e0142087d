package handlers

import (
	"log/slog"
	"net/http"

	"starfield-server/internal/selection"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/shared/request"
	"starfield-server/internal/shared/response"
	"starfield-server/internal/space"
)

type SelectionResponse struct {
	Cell     space.Cell  `json:"cell"`
	Selected *space.Star `json:"selected"`
}

type SelectionHandler struct {
	service *selection.Service
}

func NewSelectionHandler(service *selection.Service) *SelectionHandler {
	return &SelectionHandler{service: service}
}

// GetSelection resolves a pointer given in sectors against a pan offset. An
// empty cell answers 200 with a null selection.
func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_selection")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var values [4]float64
	for i, name := range []string{"pointer_x", "pointer_y"} {
		v, err := request.RequiredQueryFloat(r, name)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		values[i] = v
	}
	for i, name := range []string{"pan_x", "pan_y"} {
		v, err := request.QueryFloat(r, name, 0)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		values[2+i] = v
	}

	pointer := space.Vec2{X: values[0], Y: values[1]}
	pan := space.Vec2{X: values[2], Y: values[3]}

	star, err := h.service.Resolve(r.Context(), pointer, pan)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	cell, _ := selection.Target(pointer, pan)
	response.Success(w, http.StatusOK, SelectionResponse{Cell: cell, Selected: star})
}
