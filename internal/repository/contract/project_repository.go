package contract

import (
	"context"

	"taskflow-client/internal/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) error
	FindById(ctx context.Context, id string) (*entity.Project, error)
	// FindAllByOwner returns projects in creation order.
	FindAllByOwner(ctx context.Context, ownerId string) ([]*entity.Project, error)
	CountByOwner(ctx context.Context, ownerId string) (int64, error)
}
