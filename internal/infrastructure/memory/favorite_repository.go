package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

type FavoriteRepository struct {
	store *Store
}

func (s *Store) Favorites() *FavoriteRepository { return &FavoriteRepository{store: s} }

func (r *FavoriteRepository) Exists(_ context.Context, userID, productID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.favorites[favoriteKey{userID, productID}]
	return ok, nil
}

func (r *FavoriteRepository) Add(_ context.Context, userID, productID string) (*entity.Favorite, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[userID]; !ok {
		return nil, apperr.NotFound("User not found")
	}
	if _, ok := r.store.products[productID]; !ok {
		return nil, apperr.NotFound("Product not found")
	}
	key := favoriteKey{userID, productID}
	if _, ok := r.store.favorites[key]; ok {
		return nil, apperr.Conflict("Product already saved")
	}
	savedAt := r.store.now()
	r.store.favorites[key] = savedAt
	return &entity.Favorite{UserID: userID, ProductID: productID, SavedAt: savedAt}, nil
}

func (r *FavoriteRepository) Remove(_ context.Context, userID, productID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := favoriteKey{userID, productID}
	if _, ok := r.store.favorites[key]; !ok {
		return apperr.NotFound("Saved product not found")
	}
	delete(r.store.favorites, key)
	return nil
}

func (r *FavoriteRepository) ListProductIDsForUser(_ context.Context, userID string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.idsLocked(userID), nil
}

func (r *FavoriteRepository) ListProductsForUser(_ context.Context, userID string) ([]entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ids := r.idsLocked(userID)
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *FavoriteRepository) CountForUser(_ context.Context, userID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	n := 0
	for key := range r.store.favorites {
		if key.userID == userID {
			n++
		}
	}
	return n, nil
}

// idsLocked returns the user's saved product ids ordered by saved time. Caller holds mu.
func (r *FavoriteRepository) idsLocked(userID string) []string {
	type saved struct {
		id string
		at time.Time
	}
	var rows []saved
	for key, at := range r.store.favorites {
		if key.userID == userID {
			rows = append(rows, saved{key.productID, at})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].at.Equal(rows[j].at) {
			return rows[i].id < rows[j].id
		}
		return rows[i].at.Before(rows[j].at)
	})
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.id)
	}
	return ids
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
