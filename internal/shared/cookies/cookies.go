package cookies

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const AuthCookieName = "auth_token"

// Settings describe how the auth cookie is scoped.
type Settings struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

func NewSettings(frontendURL string, secure bool, sameSite string, maxAge time.Duration) Settings {
	return Settings{
		Domain:   extractDomain(frontendURL),
		Secure:   secure,
		SameSite: parseSameSite(sameSite),
		MaxAge:   maxAge,
	}
}

func (s Settings) SetAuthCookie(w http.ResponseWriter, token string) {
	cookie := s.authCookie()
	cookie.Value = token
	cookie.MaxAge = int(s.MaxAge.Seconds())

	http.SetCookie(w, cookie)
}

func (s Settings) ClearAuthCookie(w http.ResponseWriter) {
	cookie := s.authCookie()
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func (s Settings) authCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Path:     "/",
		Domain:   s.Domain,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: s.SameSite,
	}
}

func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := parsedURL.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}

	return host
}

func parseSameSite(sameSite string) http.SameSite {
	switch strings.ToLower(sameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
