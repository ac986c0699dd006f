package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/memorygame/internal/api/apierr"
	"github.com/mcoot/memorygame/internal/middleware"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth rejects requests without a live session with 401 UNAUTHORIZED
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := middleware.SessionToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the session Auth attached, or nil
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// GetPlayer returns the player owning the request's session, or nil
func GetPlayer(ctx context.Context) *model.Player {
	if session := GetSession(ctx); session != nil {
		return &session.Player
	}
	return nil
}

// MustGetPlayer is GetPlayer for handlers mounted behind Auth
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("api: no session in context, Auth middleware not installed")
	}
	return player
}
