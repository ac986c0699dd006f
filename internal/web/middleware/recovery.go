package middleware

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/mcoot/memorygame/internal/middleware"
)

// Recovery renders an HTML error page carrying the request ID.
// Install it inside Logging.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", "web")), webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	// HTMX requests swap the body into the board, so keep the page minimal
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Error</title></head>
<body>
<h1>Something went wrong</h1>
<p>The game hit an unexpected error. Reference: <code>%s</code></p>
<p><a href="/">Back to the table</a></p>
</body>
</html>`, html.EscapeString(middleware.RequestIDFrom(r.Context())))
}
