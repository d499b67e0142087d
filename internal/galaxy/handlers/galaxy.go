package handlers

import (
	"log/slog"
	"net/http"

	"starfield-server/internal/galaxy"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/shared/request"
	"starfield-server/internal/shared/response"
	"starfield-server/internal/space"
)

type GalaxyResponse struct {
	Pan   space.Vec2   `json:"pan"`
	Grid  galaxy.Grid  `json:"grid"`
	Stars []space.Star `json:"stars"`
}

type GalaxyHandler struct {
	service *galaxy.Service
}

func NewGalaxyHandler(service *galaxy.Service) *GalaxyHandler {
	return &GalaxyHandler{service: service}
}

// GetGalaxy scans the viewport at the pan offset given by x and y.
func (h *GalaxyHandler) GetGalaxy(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_galaxy")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	x, err := request.QueryFloat(r, "x", 0)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	y, err := request.QueryFloat(r, "y", 0)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	pan := space.Vec2{X: x, Y: y}
	stars, err := h.service.View(r.Context(), pan)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if stars == nil {
		stars = []space.Star{}
	}

	response.Success(w, http.StatusOK, GalaxyResponse{
		Pan:   pan,
		Grid:  h.service.Grid(),
		Stars: stars,
	})
}
