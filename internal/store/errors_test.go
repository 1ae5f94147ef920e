package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrTaskNotFound", err: ErrTaskNotFound, expected: true},
		{name: "wrapped ErrUserNotFound", err: fmt.Errorf("lookup: %w", ErrUserNotFound), expected: true},
		{name: "duplicate is not not-found", err: ErrUsernameExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsConflictError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrUsernameExists", err: ErrUsernameExists, expected: true},
		{name: "ErrForeignKey", err: fmt.Errorf("delete user: %w", ErrForeignKey), expected: true},
		{name: "ErrNotFound", err: ErrNotFound, expected: false},
		{name: "ErrInvalidEntity", err: ErrInvalidEntity, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConflictError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	base := errors.New("connection reset")

	err := NewStoreError("task", "update", "failed to update task", base)
	assert.Equal(t, "update operation on task failed: failed to update task: connection reset", err.Error())
	assert.ErrorIs(t, err, base)

	noWrap := NewStoreError("user", "delete", "refused", nil)
	assert.Equal(t, "delete operation on user failed: refused", noWrap.Error())
	assert.Nil(t, noWrap.Unwrap())
}
