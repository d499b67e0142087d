package server

import (
	"log/slog"
	"net/http"

	"starfield-server/internal/auth"
	"starfield-server/internal/galaxy"
	galaxyHandlers "starfield-server/internal/galaxy/handlers"
	"starfield-server/internal/middleware"
	"starfield-server/internal/selection"
	selectionHandlers "starfield-server/internal/selection/handlers"
	serverHandlers "starfield-server/internal/server/handlers"
	"starfield-server/internal/session"
	sessionHandlers "starfield-server/internal/session/handlers"
	"starfield-server/internal/system"
	systemHandlers "starfield-server/internal/system/handlers"
)

type Routes struct {
	galaxyService    *galaxy.Service
	systemService    *system.Service
	selectionService *selection.Service
	sessionService   *session.Service
	tokens           *auth.TokenService
	health           *serverHandlers.HealthHandler
	logger           *slog.Logger
}

func NewRoutes(galaxyService *galaxy.Service, systemService *system.Service, selectionService *selection.Service, sessionService *session.Service, tokens *auth.TokenService, health *serverHandlers.HealthHandler, logger *slog.Logger) *Routes {
	return &Routes{
		galaxyService:    galaxyService,
		systemService:    systemService,
		selectionService: selectionService,
		sessionService:   sessionService,
		tokens:           tokens,
		health:           health,
		logger:           logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	galaxyHandler := galaxyHandlers.NewGalaxyHandler(r.galaxyService)
	systemHandler := systemHandlers.NewSystemHandler(r.systemService)
	selectionHandler := selectionHandlers.NewSelectionHandler(r.selectionService)
	sessionHandler := sessionHandlers.NewSessionHandler(r.sessionService, r.tokens)
	requireSession := middleware.RequireSession(r.tokens)

	// Public endpoints
	mux.Handle("/api/server/health", r.health)
	mux.HandleFunc("/api/galaxy", galaxyHandler.GetGalaxy)
	mux.HandleFunc("/api/systems/{x}/{y}", systemHandler.GetSystem)
	mux.HandleFunc("/api/selection", selectionHandler.GetSelection)
	mux.HandleFunc("POST /api/sessions", sessionHandler.Create)

	// Session endpoints
	mux.Handle("/api/sessions/view", requireSession(http.HandlerFunc(sessionHandler.View)))
	mux.Handle("/api/sessions/advance", requireSession(http.HandlerFunc(sessionHandler.Advance)))
	mux.Handle("/api/sessions/select", requireSession(http.HandlerFunc(sessionHandler.Select)))
	mux.Handle("DELETE /api/sessions", requireSession(http.HandlerFunc(sessionHandler.Delete)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/galaxy", "/api/systems/{x}/{y}", "/api/selection", "POST /api/sessions"},
		"session_endpoints", []string{"/api/sessions/view", "/api/sessions/advance", "/api/sessions/select", "DELETE /api/sessions"},
	)

	return mux
}
