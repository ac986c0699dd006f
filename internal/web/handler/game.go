package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/session"
	"github.com/mcoot/memorygame/internal/web/middleware"
	"github.com/mcoot/memorygame/internal/web/sse"
	"github.com/mcoot/memorygame/internal/web/templates/components"
	"github.com/mcoot/memorygame/internal/web/templates/layout"
	"github.com/mcoot/memorygame/internal/web/templates/pages"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	sessions   *session.Manager
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(sessions *session.Manager, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		sessions:   sessions,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "web.game")),
	}
}

func gamePath(id model.GameID) string {
	return "/game/" + string(id)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect navigates the browser, using HX-Redirect for HTMX requests
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// gameError flashes a message for a failed game action and sends the player home
func (h *GameHandler) gameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		middleware.SetFlash(w, middleware.FlashError, "Game not found")
	case errors.Is(err, model.ErrNotGameOwner):
		middleware.SetFlash(w, middleware.FlashError, "That game belongs to another player")
	default:
		h.logger.Error("game action failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		middleware.SetFlash(w, middleware.FlashError, "Something went wrong")
	}
	redirect(w, r, "/")
}

// overlayFor derives what the end-of-game overlay shows for a full page render
func overlayFor(snap model.Snapshot) components.OverlayState {
	switch snap.State.Phase {
	case model.PhaseWon:
		return components.OverlayState{Visible: true, Image: model.VictoryAsset}
	case model.PhaseLost:
		return components.OverlayState{Visible: true, Image: model.DefeatAsset}
	}
	return components.OverlayState{}
}

// New starts a game for the player and opens it
func (h *GameHandler) New(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	snap, err := h.sessions.NewGame(r.Context(), player.ID)
	if err != nil {
		h.gameError(w, r, err)
		return
	}

	redirect(w, r, gamePath(snap.GameID))
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	snap, err := h.sessions.Get(r.Context(), player.ID, gameID)
	if err != nil {
		h.gameError(w, r, err)
		return
	}

	data := pages.GameData{
		PageData: layout.PageData{
			Title:  "Game",
			Player: player,
			Flash:  middleware.GetFlash(r.Context()),
		},
		Snapshot: snap,
		Overlay:  overlayFor(snap),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Game(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Flip clicks a card. The board changes arrive over SSE, so HTMX requests get
// an empty response.
func (h *GameHandler) Flip(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	vars := mux.Vars(r)
	gameID := model.GameID(vars["id"])
	cardID := model.CardID(vars["card"])

	_, err := h.sessions.Click(r.Context(), player.ID, gameID, cardID)
	if err != nil && !errors.Is(err, model.ErrCardNotFound) {
		h.gameError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
}

// Restart deals the game again
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	if _, err := h.sessions.Restart(r.Context(), player.ID, gameID); err != nil {
		h.gameError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, gamePath(gameID), http.StatusSeeOther)
}

// Quit ends the game and returns home
func (h *GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	if err := h.sessions.Close(r.Context(), player.ID, gameID); err != nil {
		h.gameError(w, r, err)
		return
	}

	middleware.SetFlash(w, middleware.FlashInfo, "Game ended")
	redirect(w, r, "/")
}

// Events streams a game's board changes
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	if _, err := h.sessions.Get(r.Context(), player.ID, gameID); err != nil {
		switch {
		case errors.Is(err, model.ErrNotGameOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			http.Error(w, "Game not found", http.StatusNotFound)
		}
		return
	}

	hub := h.hubManager.GetHub(gameID)
	if hub == nil {
		// Game is no longer live
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	sse.ServeSSE(w, r, hub, player.ID)
}
