package contract

import (
	"context"

	"taskflow-client/internal/entity"
)

// UserRepository finders return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
