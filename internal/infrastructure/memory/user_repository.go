package memory

import (
	"context"

	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

type UserRepository struct {
	store *Store
}

func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.FindByEmail(ctx, email)
	return u != nil, err
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if u.ID != "" {
		if _, ok := r.store.users[u.ID]; !ok {
			return apperr.NotFound("User not found")
		}
	}
	for id, other := range r.store.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return apperr.Conflict("Email already exists")
		}
		if other.Username == u.Username {
			return apperr.Conflict("Username already exists")
		}
	}

	now := r.store.now()
	if u.ID == "" {
		u.ID = newID()
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.store.users[u.ID] = *u
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
