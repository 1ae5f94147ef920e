package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Task length limits, mirrored by the tasks table column sizes.
const (
	TaskTitleMinLength       = 1
	TaskTitleMaxLength       = 100
	TaskDescriptionMaxLength = 1000
)

// Task is a unit of work owned by exactly one User.
//
// The owner is referenced by ID only; a user's tasks are looked up on demand
// rather than held as a back-reference, so the two entities never form a cycle.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsFinished  bool      `json:"isFinished"`
	OwnerUserID int64     `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask creates an unfinished Task for the given owner.
// Returns a *ValidationError if any field is invalid.
func NewTask(title, description string, ownerUserID int64) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		IsFinished:  false,
		OwnerUserID: ownerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the Task's fields and reports all violations at once.
// The ID is not checked because it is assigned by the store on insert.
func (t *Task) Validate() error {
	verr := &ValidationError{}

	titleLen := utf8.RuneCountInString(strings.TrimSpace(t.Title))
	switch {
	case titleLen < TaskTitleMinLength:
		verr.Add("title", "is required")
	case titleLen > TaskTitleMaxLength:
		verr.Add("title", "must be at most 100 characters")
	}

	if utf8.RuneCountInString(t.Description) > TaskDescriptionMaxLength {
		verr.Add("description", "must be at most 1000 characters")
	}

	if t.OwnerUserID <= 0 {
		verr.Add("ownerUserId", "must be a positive integer")
	}

	return verr.OrNil()
}
