package models

import "time"

// Task statuses mirror the board columns of the external tracker.
const (
	TaskStatusBacklog    = "backlog"
	TaskStatusInProgress = "in_progress"
	TaskStatusBlocked    = "blocked"
	TaskStatusDone       = "done"
)

// Task is a task-board item synced from the external tracker. It lives next
// to the cards but is not part of the card/bundle model.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	ExternalRef string    `json:"external_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch carries a partial status/priority mutation.
type TaskPatch struct {
	Status   *string `json:"status,omitempty"`
	Priority *int    `json:"priority,omitempty"`
}

// ValidTaskStatus reports whether s is one of the recognized board columns.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return true
	}
	return false
}
