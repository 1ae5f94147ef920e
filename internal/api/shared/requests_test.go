package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Title       string `json:"title"`
	OwnerUserID int64  `json:"ownerUserId"`
	IsFinished  bool   `json:"isFinished"`
}

func fieldErrors(t *testing.T, err error) []domain.FieldError {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected *domain.ValidationError, got %T: %v", err, err)
	return verr.Fields
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{
			name:      "empty body",
			body:      "",
			wantField: "body",
			wantMsg:   "is required",
		},
		{
			name:      "malformed json",
			body:      `{"title": `,
			wantField: "body",
			wantMsg:   "must be valid JSON",
		},
		{
			name:      "wrong type",
			body:      `{"ownerUserId": "one"}`,
			wantField: "ownerUserId",
			wantMsg:   "must be an integer",
		},
		{
			name:      "wrong boolean type",
			body:      `{"isFinished": "yes"}`,
			wantField: "isFinished",
			wantMsg:   "must be a boolean",
		},
		{
			name:      "trailing data",
			body:      `{"title": "a"} {"title": "b"}`,
			wantField: "body",
			wantMsg:   "must contain a single JSON object",
		},
		{
			name:      "oversized body",
			body:      `{"title": "` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`,
			wantField: "body",
			wantMsg:   "must not exceed 1048576 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var target decodeTarget

			err := DecodeJSON(httptest.NewRecorder(), req, &target)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			fields := fieldErrors(t, err)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.wantField, fields[0].Field)
			assert.Equal(t, tt.wantMsg, fields[0].Message)
		})
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/",
			strings.NewReader(`{"title": "Buy milk", "ownerUserId": 3, "isFinished": true}`))
		var target decodeTarget

		require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &target))
		assert.Equal(t, decodeTarget{Title: "Buy milk", OwnerUserID: 3, IsFinished: true}, target)
	})
}

type taggedRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=10"`
	Name        string `json:"name" validate:"omitempty,min=3"`
	OwnerUserID int64  `json:"ownerUserId" validate:"gt=0"`
	Role        string `json:"role" validate:"omitempty,oneof=Admin User"`
}

type selfValidating struct{ err error }

func (s selfValidating) Validate() error { return s.err }

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(taggedRequest{Title: "ok", OwnerUserID: 1}))
	})

	t.Run("collects every failing field", func(t *testing.T) {
		err := ValidateStruct(taggedRequest{Name: "ab", Role: "Root"})
		require.Error(t, err)

		got := map[string]string{}
		for _, fe := range fieldErrors(t, err) {
			got[fe.Field] = fe.Message
		}
		assert.Equal(t, map[string]string{
			"title":       "is required",
			"name":        "must be at least 3 characters",
			"ownerUserId": "must be a positive integer",
			"role":        "must be one of Admin, User",
		}, got)
	})

	t.Run("blank and too long", func(t *testing.T) {
		fields := fieldErrors(t, ValidateStruct(taggedRequest{Title: "   ", OwnerUserID: 1}))
		require.Len(t, fields, 1)
		assert.Equal(t, domain.FieldError{Field: "title", Message: "must not be blank"}, fields[0])

		fields = fieldErrors(t, ValidateStruct(taggedRequest{Title: "eleven char", OwnerUserID: 1}))
		require.Len(t, fields, 1)
		assert.Equal(t, "must be at most 10 characters", fields[0].Message)
	})
}

func TestValidateRequest_PrefersValidateMethod(t *testing.T) {
	assert.NoError(t, ValidateRequest(selfValidating{}))

	want := domain.NewValidationError("title", "is required")
	assert.Same(t, want, ValidateRequest(selfValidating{err: want}))
}
