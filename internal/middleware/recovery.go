package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"strata/internal/httputil"
)

// Recovery turns a handler panic into a logged 500 instead of a dropped
// connection. It wraps the whole mux, so a bug in any one panel or arrange
// handler cannot take the server down.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
