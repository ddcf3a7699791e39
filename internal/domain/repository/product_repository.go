package repository

import (
	"context"

	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
)

// ProductRepository is the catalog store. FindByID returns (nil, nil) when absent.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	ListAvailable(ctx context.Context) ([]entity.Product, error)
	// Search matches query case-insensitively against name or category.
	Search(ctx context.Context, query string) ([]entity.Product, error)
	TopExpensive(ctx context.Context, limit int) ([]entity.Product, error)
	Save(ctx context.Context, p *entity.Product) error
}
