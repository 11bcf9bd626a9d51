package mapper

import (
	"taskflow-client/internal/entity"
	"taskflow-client/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		UserProfile: entity.UserProfile{
			Id:        u.Id.String(),
			Name:      u.Name,
			Email:     u.Email,
			Role:      entity.UserRole(u.Role),
			CreatedAt: u.CreatedAt,
		},
		Country:      u.Country,
		PasswordHash: u.PasswordHash,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           parseId(u.Id),
		Name:         u.Name,
		Email:        u.Email,
		Country:      u.Country,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}
