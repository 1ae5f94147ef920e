package auth

import (
	"context"
	"time"

	"github.com/phrazzld/todolist-api/internal/domain"
)

// TokenService issues and validates bearer access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for user and returns it
	// with its expiry time.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateToken checks signature and time claims and returns the claims
	// of a valid token.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	UserID    int64
	Role      domain.Role
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
