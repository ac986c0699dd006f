package middleware

import (
	"net/http"
	"strings"
)

// SessionCookieName is the cookie the web UI keeps its session token in
const SessionCookieName = "session"

// SessionToken returns the bearer token, falling back to the session cookie.
// The CLI sends the bearer form; browsers and the CLI event stream send the cookie.
func SessionToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
