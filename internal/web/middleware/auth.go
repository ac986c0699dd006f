package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/memorygame/internal/middleware"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/auth"
)

type contextKey string

const (
	playerContextKey contextKey = "player"

	// SessionCookieName is the cookie holding the session token
	SessionCookieName = middleware.SessionCookieName
)

// GetPlayer returns the signed-in player, or nil
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// Auth sends visitors without a session to the sign-in form on the home page,
// remembering where they were headed
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := sessionPlayer(r, authService)
			if player == nil {
				if r.Header.Get("HX-Request") == "true" {
					// A fragment request would swap the home page into the board
					w.Header().Set("HX-Redirect", "/")
					w.WriteHeader(http.StatusNoContent)
					return
				}
				http.Redirect(w, r, "/?next="+r.URL.Path, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the player when a session is present
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), playerContextKey, sessionPlayer(r, authService))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionPlayer(r *http.Request, authService *auth.Service) *model.Player {
	token := middleware.SessionToken(r)
	if token == "" {
		return nil
	}
	player, err := authService.GetPlayer(token)
	if err != nil {
		return nil
	}
	return player
}
