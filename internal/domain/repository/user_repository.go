package repository

import (
	"context"

	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
)

// UserRepository defines the account store.
// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Save inserts when u.ID is empty and fully updates otherwise.
	// Email/username uniqueness violations surface as apperr Conflict.
	Save(ctx context.Context, u *entity.User) error
}
