package mocks

import (
	"context"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service/auth"
)

// MockAuthenticationService implements auth.AuthenticationService for testing.
// Without function overrides it accepts exactly one username/password pair
// and one bearer token, both resolving to User.
type MockAuthenticationService struct {
	AuthenticateFn      func(ctx context.Context, username, password string) (*domain.User, error)
	AuthenticateTokenFn func(ctx context.Context, token string) (*domain.User, error)

	User     *domain.User
	Username string
	Password string
	Token    string

	AuthenticateCallCount int
}

var _ auth.AuthenticationService = (*MockAuthenticationService)(nil)

// Authenticate implements the auth.AuthenticationService interface
func (m *MockAuthenticationService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	m.AuthenticateCallCount++
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	if m.User != nil && username == m.Username && password == m.Password {
		return m.User, nil
	}
	return nil, auth.ErrInvalidCredentials
}

// AuthenticateToken implements the auth.AuthenticationService interface
func (m *MockAuthenticationService) AuthenticateToken(ctx context.Context, token string) (*domain.User, error) {
	if m.AuthenticateTokenFn != nil {
		return m.AuthenticateTokenFn(ctx, token)
	}
	if m.User != nil && m.Token != "" && token == m.Token {
		return m.User, nil
	}
	return nil, auth.ErrInvalidToken
}
