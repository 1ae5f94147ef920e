package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/redact"
)

// ProblemContentType is the media type of error responses.
const ProblemContentType = "application/problem+json"

// Problem kinds reported in error responses.
const (
	KindValidation       = "ValidationError"
	KindInvalidArgument  = "InvalidArgument"
	KindNotFound         = "NotFound"
	KindMethodNotAllowed = "MethodNotAllowed"
	KindConflict         = "Conflict"
	KindUnauthorized     = "Unauthorized"
	KindForbidden        = "Forbidden"
	KindInternal         = "Internal"
)

// Problem is the body of every error response.
type Problem struct {
	Kind    string              `json:"kind"`
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	TraceID string              `json:"trace_id,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for operational issues such as
// repeated authentication failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeJSON(w, r, "application/json", status, data)
}

// RespondNoContent writes an empty 204 response.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondWithProblem writes problem as the response body. The trace ID is
// filled in from the request context when missing.
func RespondWithProblem(w http.ResponseWriter, r *http.Request, problem Problem) {
	if problem.TraceID == "" {
		problem.TraceID = GetTraceID(r.Context())
	}
	writeJSON(w, r, ProblemContentType, problem.Status, problem)
}

// RespondWithErrorAndLog writes a problem response and logs the detailed error.
// Only the problem's safe message reaches the client; the raw error is
// redacted and logged.
//
// Log level strategy:
// - 5xx errors: ERROR
// - 4xx errors: DEBUG, or WARN with WithElevatedLogLevel
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	problem Problem,
	err error,
	opts ...ResponseOption,
) {
	if problem.TraceID == "" {
		problem.TraceID = GetTraceID(r.Context())
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", problem.TraceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", problem.Status),
		slog.String("kind", problem.Kind),
		slog.String("user_message", problem.Message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if problem.Status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if responseOpts.elevateLogLevel && problem.Status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithProblem(w, r, problem)
}

func writeJSON(w http.ResponseWriter, r *http.Request, contentType string, status int, data interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}
