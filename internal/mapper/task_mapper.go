package mapper

import (
	"taskflow-client/internal/entity"
	"taskflow-client/internal/model"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.Task) *entity.Task {
	if t == nil {
		return nil
	}
	return &entity.Task{
		Id:          t.Id.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      entity.TaskStatus(t.Status),
		ProjectId:   t.ProjectId.String(),
	}
}

func (m *TaskMapper) ToModel(t *entity.Task) *model.Task {
	if t == nil {
		return nil
	}
	return &model.Task{
		Id:          parseId(t.Id),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		ProjectId:   parseId(t.ProjectId),
	}
}
