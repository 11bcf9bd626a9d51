package collection

import (
	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
)

// TaskStore is a task store bound to one project.
type TaskStore interface {
	Store[entity.Task, dto.TaskDraft]
	ProjectId() string
}

type TaskCollection struct {
	*Collection[entity.Task, dto.TaskDraft]
	projectId string
}

func NewTaskCollection(store TaskStore, opts ...Option) *TaskCollection {
	opts = append([]Option{WithName("tasks:" + store.ProjectId())}, opts...)
	return &TaskCollection{
		Collection: New[entity.Task, dto.TaskDraft](store, opts...),
		projectId:  store.ProjectId(),
	}
}

func (t *TaskCollection) ProjectId() string {
	return t.projectId
}

func (t *TaskCollection) Stats() entity.TaskStats {
	return entity.SummarizeTasks(t.Items())
}
