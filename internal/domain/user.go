package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Role is the access level of a User.
type Role string

// Supported roles.
const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User field limits.
const (
	UserNameMinLength     = 3
	UserNameMaxLength     = 50
	UserPositionMaxLength = 100
	UsernameMinLength     = 3
	UsernameMaxLength     = 50
	PasswordMinLength     = 8
	PasswordMaxLength     = 72 // bcrypt ignores bytes past 72
)

// ErrEmptyHashedPassword is returned when a user is persisted without a password hash.
var ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

// User is an account that owns tasks and authenticates with a username and password.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Username     string    `json:"username"`
	Password     string    `json:"-"` // Plaintext, only set transiently before hashing
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser creates a User carrying the plaintext password.
// The caller must hash the password before the user is stored.
func NewUser(name, position, username, password string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}

	now := time.Now().UTC()
	user := &User{
		Name:      strings.TrimSpace(name),
		Position:  strings.TrimSpace(position),
		Username:  strings.TrimSpace(username),
		Password:  password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if user.Password == "" {
		return nil, NewValidationError("password", "is required")
	}
	return user, nil
}

// Validate checks the User's fields and reports all violations at once.
// A user must carry either a plaintext password (about to be hashed) or a hash.
func (u *User) Validate() error {
	verr := &ValidationError{}

	nameLen := utf8.RuneCountInString(strings.TrimSpace(u.Name))
	switch {
	case nameLen == 0:
		verr.Add("name", "is required")
	case nameLen < UserNameMinLength:
		verr.Add("name", "must be at least 3 characters")
	case nameLen > UserNameMaxLength:
		verr.Add("name", "must be at most 50 characters")
	}

	positionLen := utf8.RuneCountInString(strings.TrimSpace(u.Position))
	switch {
	case positionLen == 0:
		verr.Add("position", "is required")
	case positionLen > UserPositionMaxLength:
		verr.Add("position", "must be at most 100 characters")
	}

	usernameLen := utf8.RuneCountInString(u.Username)
	if usernameLen < UsernameMinLength || usernameLen > UsernameMaxLength {
		verr.Add("username", "must be between 3 and 50 characters")
	}

	if u.Password != "" {
		if len(u.Password) < PasswordMinLength || len(u.Password) > PasswordMaxLength {
			verr.Add("password", "must be between 8 and 72 characters")
		}
	} else if u.PasswordHash == "" && u.ID != 0 {
		verr.Add("password", ErrEmptyHashedPassword.Error())
	}

	if !u.Role.Valid() {
		verr.Add("role", "must be one of Admin, User")
	}

	return verr.OrNil()
}

// IsAdmin reports whether the user has the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
