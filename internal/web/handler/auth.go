package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/memorygame/internal/services/auth"
	"github.com/mcoot/memorygame/internal/web/middleware"
)

// AuthHandler handles guest sign-in and logout
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CreateGuest handles guest player creation
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	displayName := r.FormValue("display_name")
	next := r.FormValue("next")

	session, err := h.authService.CreateGuestPlayer(r.Context(), displayName)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidDisplayName) {
			middleware.SetFlash(w, middleware.FlashError, "Display name must be at most 32 characters")
		} else {
			middleware.SetFlash(w, middleware.FlashError, "Failed to create guest player")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome, "+session.Player.DisplayName+"!")

	// Only follow local paths
	if next != "" && strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		http.Redirect(w, r, next, http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, middleware.FlashInfo, "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400, // Matches the default session duration
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
