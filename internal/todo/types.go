package todo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no task has the requested ID.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyDescription is returned for empty or whitespace-only descriptions.
	ErrEmptyDescription = errors.New("task description cannot be empty")
)

// Task represents a single task in the list.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// StatusLabel returns "Completed" or "Incomplete".
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "Incomplete"
}

// String formats the task the way listings print it.
func (t Task) String() string {
	return fmt.Sprintf("ID: %d, Description: %s, Status: %s", t.ID, t.Description, t.StatusLabel())
}

// Status filters tasks by completion.
type Status string

const (
	StatusAll        Status = "all"
	StatusIncomplete Status = "incomplete"
	StatusCompleted  Status = "completed"
)

// ParseStatus parses a status filter name. An empty string means StatusAll.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "incomplete", "open", "todo":
		return StatusIncomplete, nil
	case "completed", "done":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: all, incomplete, completed", s)
	}
}

// Matches reports whether t passes the filter.
func (s Status) Matches(t Task) bool {
	switch s {
	case StatusIncomplete:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// IDScheme selects how new task IDs are assigned.
type IDScheme string

const (
	// IDSchemeLength assigns len(tasks)+1.
	IDSchemeLength IDScheme = "length"
	// IDSchemeMax assigns max(id)+1.
	IDSchemeMax IDScheme = "max"
)

// ParseIDScheme parses an ID scheme name. An empty string means IDSchemeLength.
func ParseIDScheme(s string) (IDScheme, error) {
	switch IDScheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", IDSchemeLength:
		return IDSchemeLength, nil
	case IDSchemeMax:
		return IDSchemeMax, nil
	default:
		return "", fmt.Errorf("invalid id scheme %q, must be one of: length, max", s)
	}
}

// Next returns the ID the next created task receives.
func (s IDScheme) Next(tasks []Task) int {
	if s != IDSchemeMax {
		return len(tasks) + 1
	}
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}
