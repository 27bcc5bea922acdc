package domain

import "time"

// DateLayout is the wire format for due dates (ISO 8601 date, no time component).
const DateLayout = "2006-01-02"

// Status is a closed set of task states.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is a closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a member of the priority set.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the domain entity. It does not depend on Gin, Postgres or Redis.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Category    string
	DueDate     time.Time // date component only, UTC midnight

	CreatedAt time.Time
	UpdatedAt time.Time
}
