package entity

import (
	"strings"

	"taskflow-client/internal/apperror"
)

type TaskStatus string

// Wire values, including the space in "In Progress".
const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// ParseTaskStatus accepts the wire value or its compact spelling
// (InProgress, in-progress), case-insensitively.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	normalized := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.TrimSpace(s)))
	switch normalized {
	case "pending":
		return TaskStatusPending, true
	case "inprogress":
		return TaskStatusInProgress, true
	case "completed":
		return TaskStatusCompleted, true
	}
	return "", false
}

type Task struct {
	Id          string     `json:"_id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Status      TaskStatus `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
	ProjectId   string     `json:"projectId,omitempty"`
}

func (t Task) GetId() string {
	return t.Id
}

// SetField applies an edit to one named field of a task draft.
func (t *Task) SetField(name, value string) error {
	switch name {
	case "title":
		t.Title = value
	case "description":
		t.Description = value
	case "status":
		status, ok := ParseTaskStatus(value)
		if !ok {
			return apperror.Validation(apperror.FieldError{Field: "status", Message: "must be Pending, In Progress or Completed"})
		}
		t.Status = status
	default:
		return apperror.Validation(apperror.FieldError{Field: name, Message: "is not editable"})
	}
	return nil
}

type TaskStats struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
}

func SummarizeTasks(tasks []Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case TaskStatusCompleted:
			stats.Completed++
		case TaskStatusInProgress:
			stats.InProgress++
		case TaskStatusPending:
			stats.Pending++
		}
	}
	return stats
}
