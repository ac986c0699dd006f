package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/memorygame/internal/api/middleware"
	"github.com/mcoot/memorygame/internal/api/request"
	"github.com/mcoot/memorygame/internal/api/response"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/session"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	sessions *session.Manager
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessions *session.Manager) *GameHandler {
	return &GameHandler{
		sessions: sessions,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
// Any game the player already has is discarded.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	snap, err := h.sessions.NewGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/games/"+string(snap.GameID), response.GameFromSnapshot(snap))
}

// Active handles GET /api/v1/games/active
func (h *GameHandler) Active(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	snap, err := h.sessions.ActiveGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	snap, err := h.sessions.Get(r.Context(), player.ID, gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Flip handles POST /api/v1/games/{id}/flip
// Clicks the rules ignore still succeed; the returned state shows the outcome.
func (h *GameHandler) Flip(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.FlipRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		WriteError(w, err)
		return
	}
	if req.CardID == "" {
		WriteError(w, NewInvalidRequestError("card_id is required"))
		return
	}

	snap, err := h.sessions.Click(r.Context(), player.ID, gameID(r), model.CardID(req.CardID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Restart handles POST /api/v1/games/{id}/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	snap, err := h.sessions.Restart(r.Context(), player.ID, gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.sessions.Close(r.Context(), player.ID, gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
