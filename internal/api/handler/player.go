package handler

import (
	"net/http"

	"github.com/mcoot/memorygame/internal/api/middleware"
	"github.com/mcoot/memorygame/internal/api/request"
	"github.com/mcoot/memorygame/internal/api/response"
	"github.com/mcoot/memorygame/internal/services/auth"
)

// PlayerHandler serves guest sign-in and the caller's own player record
type PlayerHandler struct {
	authService *auth.Service
}

func NewPlayerHandler(authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{authService: authService}
}

// CreateGuest handles POST /api/v1/players/guest
// An empty body or display name signs in as "Guest".
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Logout handles DELETE /api/v1/players/me/session.
// Games the player left running keep ticking until the idle janitor evicts them.
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.InvalidateSession(middleware.GetSession(r.Context()).Token)
	response.NoContent(w)
}
