package unitofwork

import (
	"context"

	"taskflow-client/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	TaskRepository() contract.TaskRepository
}
