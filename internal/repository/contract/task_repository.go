package contract

import (
	"context"

	"taskflow-client/internal/entity"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) error
	DeleteAllByProject(ctx context.Context, projectId string) error
	FindById(ctx context.Context, id string) (*entity.Task, error)
	// FindAllByProject returns tasks in creation order.
	FindAllByProject(ctx context.Context, projectId string) ([]*entity.Task, error)
}
