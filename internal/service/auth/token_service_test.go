package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/todolist-api/internal/config"
	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewTokenService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewTokenService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := newHMACTokenService(testSecret, time.Hour, fixedClock(issued))
	require.NoError(t, err)

	user := &domain.User{ID: 7, Role: domain.RoleAdmin}
	token, expiresAt, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, issued.Add(time.Hour), expiresAt)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := newHMACTokenService(testSecret, time.Hour, fixedClock(issued))
	require.NoError(t, err)
	token, _, err := issuer.GenerateToken(context.Background(), &domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		now     time.Time
		token   string
		wantErr error
	}{
		{
			name:    "expired",
			secret:  testSecret,
			now:     issued.Add(2 * time.Hour),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "not yet valid",
			secret:  testSecret,
			now:     issued.Add(-10 * time.Minute),
			token:   token,
			wantErr: ErrTokenNotYetValid,
		},
		{
			name:    "wrong secret",
			secret:  "another-secret-that-is-long-enough-for-testing",
			now:     issued,
			token:   token,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed",
			secret:  testSecret,
			now:     issued,
			token:   "not.a.jwt",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "within clock skew",
			secret:  testSecret,
			now:     issued.Add(time.Hour + 30*time.Second),
			token:   token,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			validator, err := newHMACTokenService(tt.secret, time.Hour, fixedClock(tt.now))
			require.NoError(t, err)

			_, err = validator.ValidateToken(context.Background(), tt.token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := newHMACTokenService(testSecret, time.Hour, fixedClock(now))
	require.NoError(t, err)

	claims := tokenClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RequiresUserID(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := newHMACTokenService(testSecret, time.Hour, fixedClock(now))
	require.NoError(t, err)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
