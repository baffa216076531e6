package repository

import (
	"context"

	"github.com/sangkips/billbook-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
