package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

type ProductRepository struct {
	store *Store
}

func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

func (r *ProductRepository) FindByID(_ context.Context, id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepository) List(_ context.Context) ([]entity.Product, error) {
	return r.filter(func(entity.Product) bool { return true }), nil
}

func (r *ProductRepository) ListAvailable(_ context.Context) ([]entity.Product, error) {
	return r.filter(func(p entity.Product) bool { return p.IsAvailable }), nil
}

func (r *ProductRepository) Search(_ context.Context, query string) ([]entity.Product, error) {
	q := strings.ToLower(query)
	return r.filter(func(p entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q)
	}), nil
}

func (r *ProductRepository) TopExpensive(_ context.Context, limit int) ([]entity.Product, error) {
	out := r.filter(func(entity.Product) bool { return true })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProductRepository) Save(_ context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := r.store.now()
	if p.ID == "" {
		p.ID = newID()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.store.products[p.ID] = *p
	return nil
}

// filter returns matching products ordered by name.
func (r *ProductRepository) filter(keep func(entity.Product) bool) []entity.Product {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
