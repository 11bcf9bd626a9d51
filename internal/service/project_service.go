package service

import (
	"context"

	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/repository/unitofwork"
)

type IProjectService interface {
	List(ctx context.Context, ownerId string) ([]*entity.Project, error)
	Get(ctx context.Context, ownerId, id string) (*entity.Project, error)
	Create(ctx context.Context, ownerId string, req *dto.CreateProjectRequest) (*entity.Project, error)
	Update(ctx context.Context, ownerId, id string, req *dto.UpdateProjectRequest) (*entity.Project, error)
	Delete(ctx context.Context, ownerId, id string) error
}

type projectService struct {
	uowFactory  unitofwork.RepositoryFactory
	maxProjects int
	logger      logger.ILogger
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory, maxProjects int, l logger.ILogger) IProjectService {
	return &projectService{
		uowFactory:  uowFactory,
		maxProjects: maxProjects,
		logger:      l,
	}
}

func (s *projectService) List(ctx context.Context, ownerId string) ([]*entity.Project, error) {
	return s.uowFactory.NewUnitOfWork(ctx).ProjectRepository().FindAllByOwner(ctx, ownerId)
}

func (s *projectService) Get(ctx context.Context, ownerId, id string) (*entity.Project, error) {
	return ownedProject(ctx, s.uowFactory.NewUnitOfWork(ctx), ownerId, id)
}

func (s *projectService) Create(ctx context.Context, ownerId string, req *dto.CreateProjectRequest) (*entity.Project, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	count, err := uow.ProjectRepository().CountByOwner(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxProjects) {
		s.logger.Warn("PROJECT", "Project limit reached", map[string]interface{}{"user_id": ownerId, "limit": s.maxProjects})
		return nil, ErrProjectLimit
	}

	project := &entity.Project{
		Title:       req.Title,
		Description: req.Description,
		Owner:       ownerId,
	}
	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PROJECT", "Project created", map[string]interface{}{"user_id": ownerId, "project_id": project.Id})
	return project, nil
}

func (s *projectService) Update(ctx context.Context, ownerId, id string, req *dto.UpdateProjectRequest) (*entity.Project, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := ownedProject(ctx, uow, ownerId, id)
	if err != nil {
		return nil, err
	}

	project.Title = req.Title
	project.Description = req.Description
	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project together with its tasks.
func (s *projectService) Delete(ctx context.Context, ownerId, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := ownedProject(ctx, uow, ownerId, id); err != nil {
		return err
	}
	if err := uow.TaskRepository().DeleteAllByProject(ctx, id); err != nil {
		return err
	}
	if err := uow.ProjectRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("PROJECT", "Project deleted", map[string]interface{}{"user_id": ownerId, "project_id": id})
	return nil
}

// ownedProject hides other users' projects behind ErrProjectNotFound.
func ownedProject(ctx context.Context, uow unitofwork.UnitOfWork, ownerId, id string) (*entity.Project, error) {
	project, err := uow.ProjectRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil || project.Owner != ownerId {
		return nil, ErrProjectNotFound
	}
	return project, nil
}
