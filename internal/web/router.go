package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"

	"github.com/mcoot/memorygame/internal/services/auth"
	"github.com/mcoot/memorygame/internal/services/session"
	"github.com/mcoot/memorygame/internal/web/handler"
	"github.com/mcoot/memorygame/internal/web/middleware"
	"github.com/mcoot/memorygame/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Sessions    *session.Manager
	HubManager  *sse.HubManager
	StaticDir   string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Sessions)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.Sessions, hubManager, cfg.Logger)

	// Static files, gzipped when the client accepts it
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(gzhttp.GzipHandler(staticHandler))
	}

	// Public routes (optional auth for showing player info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	// Auth actions (no auth required)
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(optionalAuthMiddleware)
	authRoutes.HandleFunc("/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)

	// Game routes
	protected.HandleFunc("/game", gameHandler.New).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}", gameHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/game/{id}/cards/{card}/flip", gameHandler.Flip).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/restart", gameHandler.Restart).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/quit", gameHandler.Quit).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	return r
}
