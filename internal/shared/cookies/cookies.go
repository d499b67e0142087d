package cookies

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"starfield-server/internal/shared/config"
)

// SessionCookieName carries the signed viewer session token.
const SessionCookieName = "starfield_session"

func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	cookie := createSessionCookie()
	cookie.Value = token
	cookie.MaxAge = int(ttl.Seconds())

	http.SetCookie(w, cookie)
}

func ClearSessionCookie(w http.ResponseWriter) {
	cookie := createSessionCookie()
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func createSessionCookie() *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if cfg := config.GlobalConfig; cfg != nil {
		cookie.Domain = extractDomain(cfg.Frontend.URL)
		cookie.Secure = cfg.Auth.CookieSecure
		cookie.SameSite = parseSameSite(cfg.Auth.CookieSameSite)
	}

	return cookie
}

func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := strings.Split(parsedURL.Host, ":")[0]
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}

	return host
}

func parseSameSite(sameSiteStr string) http.SameSite {
	switch sameSiteStr {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
