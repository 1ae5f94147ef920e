package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
)

// Recoverer turns a panic in a downstream handler into a 500 problem
// response. The panic value and stack are logged through the request logger
// and never reach the client. http.ErrAbortHandler is re-raised so net/http
// can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				// ALLOW-PANIC: net/http handles ErrAbortHandler itself
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("stack", string(debug.Stack())))

			shared.RespondWithErrorAndLog(w, r, shared.Problem{
				Kind:    shared.KindInternal,
				Message: "An unexpected error occurred",
				Status:  http.StatusInternalServerError,
			}, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFound answers requests that match no route with a problem payload.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithProblem(w, r, shared.Problem{
		Kind:    shared.KindNotFound,
		Message: "Resource not found",
		Status:  http.StatusNotFound,
	})
}

// MethodNotAllowed answers requests whose path matches a route but whose
// method does not.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithProblem(w, r, shared.Problem{
		Kind:    shared.KindMethodNotAllowed,
		Message: "Method not allowed",
		Status:  http.StatusMethodNotAllowed,
	})
}
