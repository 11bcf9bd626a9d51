package implementation

import (
	"context"

	"taskflow-client/internal/entity"
	"taskflow-client/internal/mapper"
	"taskflow-client/internal/model"
	"taskflow-client/internal/repository/contract"
	"taskflow-client/internal/repository/specification"

	"gorm.io/gorm"
)

type TaskRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewTaskRepository(db *gorm.DB) contract.TaskRepository {
	return &TaskRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entity.Task) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entity.Task) error {
	m := r.mapper.ToModel(task)
	return r.db.WithContext(ctx).Model(m).Select("title", "description", "status").Updates(m).Error
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id string) error {
	parsed, ok := parseId(id)
	if !ok {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&model.Task{}, parsed).Error
}

func (r *TaskRepositoryImpl) DeleteAllByProject(ctx context.Context, projectId string) error {
	parsed, ok := parseId(projectId)
	if !ok {
		return nil
	}
	return applySpecifications(r.db.WithContext(ctx), specification.InProject{ProjectID: parsed}).Delete(&model.Task{}).Error
}

func (r *TaskRepositoryImpl) FindById(ctx context.Context, id string) (*entity.Task, error) {
	parsed, ok := parseId(id)
	if !ok {
		return nil, nil
	}
	var m model.Task
	found, err := first(r.db.WithContext(ctx), &m, specification.ByID{ID: parsed})
	if err != nil || !found {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TaskRepositoryImpl) FindAllByProject(ctx context.Context, projectId string) ([]*entity.Task, error) {
	parsed, ok := parseId(projectId)
	if !ok {
		return []*entity.Task{}, nil
	}
	var models []*model.Task
	query := applySpecifications(r.db.WithContext(ctx), specification.InProject{ProjectID: parsed}, specification.CreationOrder)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	tasks := make([]*entity.Task, 0, len(models))
	for _, m := range models {
		tasks = append(tasks, r.mapper.ToEntity(m))
	}
	return tasks, nil
}
