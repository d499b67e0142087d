package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starfield-server/internal/auth"
	"starfield-server/internal/galaxy"
	galaxyHandlers "starfield-server/internal/galaxy/handlers"
	"starfield-server/internal/lehmer"
	"starfield-server/internal/selection"
	selectionHandlers "starfield-server/internal/selection/handlers"
	serverHandlers "starfield-server/internal/server/handlers"
	"starfield-server/internal/session"
	"starfield-server/internal/shared/cookies"
	"starfield-server/internal/space"
	"starfield-server/internal/system"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.Default()

	g, err := system.NewGenerator(space.DefaultPalette())
	require.NoError(t, err)
	scanner, err := galaxy.NewScanner(g, galaxy.Grid{Width: 50, Height: 37})
	require.NoError(t, err)
	tokens, err := auth.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	norm := lehmer.NormalizationParity
	resolver := selection.NewResolver(g)
	galaxyService := galaxy.NewService(scanner, norm, 4, logger)
	sessionService := session.NewService(session.NewMemoryRepository(logger), galaxyService, resolver, norm, 50, time.Hour, logger)

	routes := NewRoutes(
		galaxyService,
		system.NewService(g, norm, logger),
		selection.NewService(resolver, norm, logger),
		sessionService,
		tokens,
		serverHandlers.NewHealthHandler("memory", nil),
		logger,
	)

	srv := httptest.NewServer(routes.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestGalaxyEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/galaxy")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body galaxyHandlers.GalaxyResponse
	decode(t, resp, &body)
	assert.Len(t, body.Stars, 83)
	assert.Equal(t, galaxy.Grid{Width: 50, Height: 37}, body.Grid)
	assert.Equal(t, space.Cell{X: 0, Y: 34}, body.Stars[0].Cell)

	resp, err = http.Get(srv.URL + "/api/galaxy?x=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/galaxy", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSystemEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/systems/1/30")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var star space.Star
	decode(t, resp, &star)
	assert.Equal(t, space.Cell{X: 1, Y: 30}, star.Cell)
	assert.InDelta(t, 17.60732816420837, star.Diameter, 1e-9)
	require.Len(t, star.Planets(), 1)
	assert.Equal(t, space.PlanetTypeIce, star.Planets()[0].PlanetType)

	resp, err = http.Get(srv.URL + "/api/systems/5/7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/systems/five/7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelectionEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/selection?pointer_x=6.8&pointer_y=2.1&pan_x=0.5&pan_y=30")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body selectionHandlers.SelectionResponse
	decode(t, resp, &body)
	assert.Equal(t, space.Cell{X: 6, Y: 32}, body.Cell)
	require.NotNil(t, body.Selected)
	require.Len(t, body.Selected.Planets(), 1)
	assert.Len(t, body.Selected.Planets()[0].Children, 1)

	resp, err = http.Get(srv.URL + "/api/selection?pointer_x=5&pointer_y=7")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = selectionHandlers.SelectionResponse{}
	decode(t, resp, &body)
	assert.Nil(t, body.Selected)

	resp, err = http.Get(srv.URL + "/api/selection?pointer_y=7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	do := func(method, path, body string, cookie *http.Cookie) *http.Response {
		t.Helper()
		req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := do(http.MethodGet, "/api/sessions/view", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(http.MethodPost, "/api/sessions", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created session.Session
	decode(t, resp, &created)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == cookies.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	resp = do(http.MethodGet, "/api/sessions/view", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view session.View
	decode(t, resp, &view)
	assert.Equal(t, created.ID, view.SessionID)
	assert.Len(t, view.Stars, 83)

	resp = do(http.MethodPost, "/api/sessions/select", `{"pointer_x":19.5,"pointer_y":15.5}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = session.View{}
	decode(t, resp, &view)
	require.NotNil(t, view.Selected)
	assert.Equal(t, space.Cell{X: 19, Y: 15}, view.Selected.Cell)

	resp = do(http.MethodPost, "/api/sessions/advance", `{"right":true,"dt":0.1}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = session.View{}
	decode(t, resp, &view)
	assert.InDelta(t, 5.0, view.Pan.X, 1e-9)
	require.NotNil(t, view.Selected, "selection survives panning")
	assert.Equal(t, space.Cell{X: 19, Y: 15}, view.Selected.Cell)

	resp = do(http.MethodPost, "/api/sessions/advance", `{"dt":5}`, cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(http.MethodDelete, "/api/sessions", "", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(http.MethodGet, "/api/sessions/view", "", cookie)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
