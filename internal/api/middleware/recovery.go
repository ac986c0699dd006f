package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/memorygame/internal/api/apierr"
	"github.com/mcoot/memorygame/internal/middleware"
)

// Recovery answers a panicking API handler with the INTERNAL_ERROR envelope.
// Install it inside Logging so the panic is logged with the request ID.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", "api")), func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
