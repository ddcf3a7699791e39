package repository

import (
	"context"

	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
)

// FavoriteRepository is the ledger of user/product associations.
// It owns Favorite records and only reads user and product existence.
type FavoriteRepository interface {
	Exists(ctx context.Context, userID, productID string) (bool, error)
	// Add fails with apperr Conflict when the pair already exists.
	Add(ctx context.Context, userID, productID string) (*entity.Favorite, error)
	// Remove fails with apperr NotFound when the pair does not exist.
	Remove(ctx context.Context, userID, productID string) error
	ListProductIDsForUser(ctx context.Context, userID string) ([]string, error)
	ListProductsForUser(ctx context.Context, userID string) ([]entity.Product, error)
	CountForUser(ctx context.Context, userID string) (int, error)
}
