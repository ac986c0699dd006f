package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/memorygame/internal/middleware"
)

// Logging logs page, fragment and event stream requests under surface=web
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "web")))
}
