package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/service/auth"
)

// AuthHandler issues bearer tokens to authenticated users.
type AuthHandler struct {
	tokenService auth.TokenService
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(tokenService auth.TokenService, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		tokenService: tokenService,
		logger:       log.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken godoc
// @Summary      Issue an access token
// @Description  Exchanges Basic credentials for a short-lived bearer token.
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  api.TokenResponse
// @Failure      401  {object}  shared.Problem
// @Router       /api/auth/token [post]
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	token, expiresAt, err := h.tokenService.GenerateToken(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("access token issued",
		slog.Int64("user_id", user.ID),
		slog.Time("expires_at", expiresAt))

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	})
}
