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

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindById(ctx context.Context, id string) (*entity.User, error) {
	parsed, ok := parseId(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, specification.ByID{ID: parsed})
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, specification.ByEmail{Email: email})
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	found, err := first(r.db.WithContext(ctx), &m, specs...)
	if err != nil || !found {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
