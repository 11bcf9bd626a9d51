package service

import (
	"context"

	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/repository/unitofwork"
)

type ITaskService interface {
	ListByProject(ctx context.Context, ownerId, projectId string) ([]*entity.Task, error)
	Create(ctx context.Context, ownerId string, req *dto.CreateTaskRequest) (*entity.Task, error)
	Update(ctx context.Context, ownerId, id string, req *dto.UpdateTaskRequest) (*entity.Task, error)
	Delete(ctx context.Context, ownerId, id string) error
}

type taskService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory, l logger.ILogger) ITaskService {
	return &taskService{uowFactory: uowFactory, logger: l}
}

func (s *taskService) ListByProject(ctx context.Context, ownerId, projectId string) ([]*entity.Task, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := ownedProject(ctx, uow, ownerId, projectId); err != nil {
		return nil, err
	}
	return uow.TaskRepository().FindAllByProject(ctx, projectId)
}

func (s *taskService) Create(ctx context.Context, ownerId string, req *dto.CreateTaskRequest) (*entity.Task, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := ownedProject(ctx, uow, ownerId, req.ProjectId); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.TaskStatusPending
	}
	task := &entity.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		ProjectId:   req.ProjectId,
	}
	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("TASK", "Task created", map[string]interface{}{"project_id": req.ProjectId, "task_id": task.Id})
	return task, nil
}

func (s *taskService) Update(ctx context.Context, ownerId, id string, req *dto.UpdateTaskRequest) (*entity.Task, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	task, err := s.ownedTask(ctx, uow, ownerId, id)
	if err != nil {
		return nil, err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = req.Status
	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerId, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedTask(ctx, uow, ownerId, id); err != nil {
		return err
	}
	if err := uow.TaskRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("TASK", "Task deleted", map[string]interface{}{"task_id": id})
	return nil
}

func (s *taskService) ownedTask(ctx context.Context, uow unitofwork.UnitOfWork, ownerId, id string) (*entity.Task, error) {
	task, err := uow.TaskRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if _, err := ownedProject(ctx, uow, ownerId, task.ProjectId); err != nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
