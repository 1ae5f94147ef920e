package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service/auth"
)

// AuthMiddleware authenticates requests with HTTP Basic credentials or a
// bearer access token and attaches the resolved user to the request context.
type AuthMiddleware struct {
	authService auth.AuthenticationService
	realm       string
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService auth.AuthenticationService, realm string, log *slog.Logger) *AuthMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return &AuthMiddleware{
		authService: authService,
		realm:       realm,
		logger:      log.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate resolves the Authorization header to a user. Requests without
// valid credentials get a 401 with a WWW-Authenticate challenge and never
// reach next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			if isAuthFailure(err) {
				m.unauthorized(w, r, err)
				return
			}
			shared.RespondWithErrorAndLog(w, r, shared.Problem{
				Kind:    shared.KindInternal,
				Message: "Authentication error",
				Status:  http.StatusInternalServerError,
			}, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

func (m *AuthMiddleware) resolve(r *http.Request) (*domain.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, auth.ErrMissingCredentials
	}

	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return m.authService.AuthenticateToken(r.Context(), strings.TrimSpace(token))
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, fmt.Errorf("%w: unsupported authorization scheme", auth.ErrMissingCredentials)
	}
	return m.authService.Authenticate(r.Context(), username, password)
}

func isAuthFailure(err error) bool {
	return errors.Is(err, auth.ErrMissingCredentials) ||
		errors.Is(err, auth.ErrInvalidCredentials) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrTokenNotYetValid)
}

func (m *AuthMiddleware) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	message := "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		message = "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		message = "Invalid token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		message = "Invalid username or password"
	}

	w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", m.realm))

	var opts []shared.ResponseOption
	if !errors.Is(err, auth.ErrMissingCredentials) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, shared.Problem{
		Kind:    shared.KindUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}, err, opts...)
}

// RequireRole rejects authenticated users lacking role with 403. It must run
// after Authenticate; a request without a user gets 401.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := shared.UserFromContext(r.Context())
			if !ok {
				shared.RespondWithErrorAndLog(w, r, shared.Problem{
					Kind:    shared.KindUnauthorized,
					Message: "Authentication required",
					Status:  http.StatusUnauthorized,
				}, domain.ErrUnauthorized)
				return
			}

			if user.Role != role {
				shared.RespondWithErrorAndLog(w, r, shared.Problem{
					Kind:    shared.KindForbidden,
					Message: "You do not have permission to perform this action",
					Status:  http.StatusForbidden,
				}, fmt.Errorf("%w: user %d lacks role %s", domain.ErrForbidden, user.ID, role),
					shared.WithElevatedLogLevel())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
