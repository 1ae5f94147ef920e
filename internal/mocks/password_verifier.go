package mocks

import "errors"

// ErrPasswordMismatch is returned by MockPasswordVerifier when a comparison fails.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// Without CompareFn it accepts a password when hashedPassword equals
// PlainHashPrefix+password, which pairs with MockPasswordHasher.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// PlainHashPrefix marks the fake hashes produced by MockPasswordHasher.
const PlainHashPrefix = "hashed:"

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword == PlainHashPrefix+password {
		return nil
	}
	return ErrPasswordMismatch
}

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return PlainHashPrefix + password, nil
}
