package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a panic in a handler into a logged stack trace and a
// generic JSON 500. http.ErrAbortHandler is re-raised so net/http can drop
// the connection as intended.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("client_ip", clientAddr(r)),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				writeFailure(w, http.StatusInternalServerError, "Internal server error.")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
