package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/platform/logger"
	"github.com/phrazzld/todolist-api/internal/store"
)

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthenticationService resolves request credentials to a user identity.
type AuthenticationService interface {
	// Authenticate checks a username and password pair.
	// Returns ErrInvalidCredentials when either is wrong.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// AuthenticateToken resolves a bearer access token to its user.
	AuthenticateToken(ctx context.Context, token string) (*domain.User, error)
}

type authenticationService struct {
	users    store.UserStore
	verifier PasswordVerifier
	tokens   TokenService
	logger   *slog.Logger
}

// NewAuthenticationService creates an AuthenticationService. tokens may be nil,
// in which case bearer tokens are always rejected.
func NewAuthenticationService(
	users store.UserStore,
	verifier PasswordVerifier,
	tokens TokenService,
	logger *slog.Logger,
) (AuthenticationService, error) {
	if users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if verifier == nil {
		return nil, errors.New("password verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authenticationService{
		users:    users,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "authentication_service")),
	}, nil
}

// Authenticate implements AuthenticationService.
func (s *authenticationService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			_ = s.verifier.Compare(dummyHash, password)
			log.Debug("authentication failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		log.Debug("authentication failed: password mismatch", slog.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// AuthenticateToken implements AuthenticationService.
func (s *authenticationService) AuthenticateToken(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.tokens == nil || token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("token subject no longer exists", slog.Int64("user_id", claims.UserID))
			return nil, ErrInvalidToken
		}
		log.Error("failed to load token subject", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}
