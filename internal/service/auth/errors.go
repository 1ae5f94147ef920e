package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingCredentials indicates no usable Authorization header was sent.
	ErrMissingCredentials = errors.New("authentication credentials are missing")

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
)
