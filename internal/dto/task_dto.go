package dto

import "taskflow-client/internal/entity"

// TaskDraft is what a task screen collects before the project id is bound.
type TaskDraft struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Status      entity.TaskStatus `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
}

type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Status      entity.TaskStatus `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	ProjectId   string            `json:"projectId" validate:"required"`
}

type UpdateTaskRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Status      entity.TaskStatus `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
}

func (d TaskDraft) ForProject(projectId string) CreateTaskRequest {
	status := d.Status
	if status == "" {
		status = entity.TaskStatusPending
	}
	return CreateTaskRequest{
		Title:       d.Title,
		Description: d.Description,
		Status:      status,
		ProjectId:   projectId,
	}
}

func UpdateTaskFrom(t entity.Task) UpdateTaskRequest {
	return UpdateTaskRequest{Title: t.Title, Description: t.Description, Status: t.Status}
}
