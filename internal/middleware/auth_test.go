package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starfield-server/internal/auth"
	"starfield-server/internal/shared/cookies"
)

func TestRequireSession(t *testing.T) {
	tokens, err := auth.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	var seen uuid.UUID
	h := RequireSession(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetSessionFromContext(r)
		require.NotNil(t, claims)
		seen = claims.SessionID
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/view", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/view", nil)
	req.AddCookie(&http.Cookie{Name: cookies.SessionCookieName, Value: "garbage"})
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	id := uuid.New()
	token, err := tokens.Generate(id)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/sessions/view", nil)
	req.AddCookie(&http.Cookie{Name: cookies.SessionCookieName, Value: token})
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, id, seen)
}
