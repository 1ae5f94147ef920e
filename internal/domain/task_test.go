package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("  Buy milk ", "two litres", 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Title != "Buy milk" {
		t.Errorf("Expected trimmed title %q, got %q", "Buy milk", task.Title)
	}

	if task.IsFinished {
		t.Error("Expected new task to be unfinished")
	}

	if task.OwnerUserID != 1 {
		t.Errorf("Expected owner 1, got %d", task.OwnerUserID)
	}

	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name       string
		task       Task
		wantFields []string
	}{
		{
			name: "valid",
			task: Task{Title: "Buy milk", OwnerUserID: 1},
		},
		{
			name:       "empty title",
			task:       Task{Title: "   ", OwnerUserID: 1},
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			task:       Task{Title: strings.Repeat("a", TaskTitleMaxLength+1), OwnerUserID: 1},
			wantFields: []string{"title"},
		},
		{
			name: "title at max length",
			task: Task{Title: strings.Repeat("é", TaskTitleMaxLength), OwnerUserID: 1},
		},
		{
			name:       "description too long",
			task:       Task{Title: "ok", Description: strings.Repeat("d", TaskDescriptionMaxLength+1), OwnerUserID: 1},
			wantFields: []string{"description"},
		},
		{
			name:       "missing owner and title",
			task:       Task{},
			wantFields: []string{"title", "ownerUserId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected ErrValidation, got %v", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("Expected %d field errors, got %d (%v)", len(tt.wantFields), len(verr.Fields), verr.Fields)
			}
			for i, field := range tt.wantFields {
				if verr.Fields[i].Field != field {
					t.Errorf("Expected field %q at %d, got %q", field, i, verr.Fields[i].Field)
				}
			}
		})
	}
}


func TestValidateID(t *testing.T) {
	for _, id := range []int64{0, -1, -42} {
		if err := ValidateID(id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ValidateID(%d) = %v, want ErrInvalidID", id, err)
		}
	}
	if err := ValidateID(7); err != nil {
		t.Errorf("ValidateID(7) = %v, want nil", err)
	}
}
