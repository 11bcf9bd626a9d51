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

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProjectMapper
}

func NewProjectRepository(db *gorm.DB) contract.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewProjectMapper(),
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entity.Project) error {
	m := r.mapper.ToModel(project)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*project = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *entity.Project) error {
	m := r.mapper.ToModel(project)
	if err := r.db.WithContext(ctx).Model(m).Select("title", "description").Updates(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id string) error {
	parsed, ok := parseId(id)
	if !ok {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&model.Project{}, parsed).Error
}

func (r *ProjectRepositoryImpl) FindById(ctx context.Context, id string) (*entity.Project, error) {
	parsed, ok := parseId(id)
	if !ok {
		return nil, nil
	}
	var m model.Project
	found, err := first(r.db.WithContext(ctx), &m, specification.ByID{ID: parsed})
	if err != nil || !found {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProjectRepositoryImpl) FindAllByOwner(ctx context.Context, ownerId string) ([]*entity.Project, error) {
	parsed, ok := parseId(ownerId)
	if !ok {
		return []*entity.Project{}, nil
	}
	var models []*model.Project
	query := applySpecifications(r.db.WithContext(ctx), specification.OwnedBy{OwnerID: parsed}, specification.CreationOrder)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	projects := make([]*entity.Project, 0, len(models))
	for _, m := range models {
		projects = append(projects, r.mapper.ToEntity(m))
	}
	return projects, nil
}

func (r *ProjectRepositoryImpl) CountByOwner(ctx context.Context, ownerId string) (int64, error) {
	parsed, ok := parseId(ownerId)
	if !ok {
		return 0, nil
	}
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Project{}), specification.OwnedBy{OwnerID: parsed})
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
