package middleware

import (
	"net/http"
	"runtime/debug"

	httpctx "github.com/dtroode/basketd/internal/api/http/context"
	"github.com/dtroode/basketd/internal/logger"
)

// Recover turns a handler panic into a 500 response.
func Recover(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("HTTP handler panicked",
					"panic", rec,
					"path", r.URL.Path,
					"request_id", httpctx.RequestID(r.Context()),
					"stack", string(debug.Stack()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
