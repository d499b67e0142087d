package handlers

import (
	"log/slog"
	"net/http"

	"starfield-server/internal/auth"
	"starfield-server/internal/middleware"
	"starfield-server/internal/session"
	"starfield-server/internal/shared/cookies"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/shared/request"
	"starfield-server/internal/shared/response"
	"starfield-server/internal/space"
	"starfield-server/internal/viewport"

	"github.com/google/uuid"
)

type AdvanceRequest struct {
	Up    bool    `json:"up"`
	Down  bool    `json:"down"`
	Left  bool    `json:"left"`
	Right bool    `json:"right"`
	DT    float64 `json:"dt"`
}

type SelectRequest struct {
	PointerX float64 `json:"pointer_x"`
	PointerY float64 `json:"pointer_y"`
}

type SessionHandler struct {
	service *session.Service
	tokens  *auth.TokenService
}

func NewSessionHandler(service *session.Service, tokens *auth.TokenService) *SessionHandler {
	return &SessionHandler{service: service, tokens: tokens}
}

// Create starts a viewer session and sets its cookie.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_session")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	sess, err := h.service.Create(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	token, err := h.tokens.Generate(sess.ID)
	if err != nil {
		response.ErrorWithMessage(w, r, logger, errors.WrapInternal("failed to sign session token", err), "failed to create session")
		return
	}

	cookies.SetSessionCookie(w, token, min(h.tokens.Expiration(), h.service.TTL()))
	response.Success(w, http.StatusCreated, sess)
}

func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "view_session")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, ok := sessionID(w, r, logger)
	if !ok {
		return
	}

	view, err := h.service.View(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, view)
}

func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "advance_session")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, ok := sessionID(w, r, logger)
	if !ok {
		return
	}

	var req AdvanceRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	dirs := viewport.Directions{Up: req.Up, Down: req.Down, Left: req.Left, Right: req.Right}
	view, err := h.service.Advance(r.Context(), id, dirs, req.DT)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, view)
}

func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "select_session")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, ok := sessionID(w, r, logger)
	if !ok {
		return
	}

	var req SelectRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	view, err := h.service.Select(r.Context(), id, space.Vec2{X: req.PointerX, Y: req.PointerY})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, view)
}

// Delete discards the session and clears its cookie.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_session")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, ok := sessionID(w, r, logger)
	if !ok {
		return
	}

	cookies.ClearSessionCookie(w)

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sessionID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	claims := middleware.GetSessionFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("session required"))
		return uuid.Nil, false
	}
	return claims.SessionID, true
}
