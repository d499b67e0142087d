package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"starfield-server/internal/auth"
	"starfield-server/internal/shared/cookies"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/shared/response"
)

type contextKey string

const SessionContextKey contextKey = "session"

// RequireSession rejects requests without a valid session cookie and puts
// the token claims on the request context.
func RequireSession(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "session",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing session token")

			cookie, err := r.Cookie(cookies.SessionCookieName)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("session required"))
				return
			}

			claims, err := tokens.Validate(cookie.Value)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid session token"))
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, claims)
			logger.Debug("Session token accepted", "session_id", claims.SessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSessionFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(SessionContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
