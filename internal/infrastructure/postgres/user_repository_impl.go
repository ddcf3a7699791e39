package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

const uqUsersUsername = "uq_users_username"

const userColumns = `id, username, email, name, phone, password_hash, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := conn(ctx, r.pool).QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Phone, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return ok, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	db := conn(ctx, r.pool)
	if u.ID == "" {
		row := db.QueryRow(ctx, `
			INSERT INTO users (username, email, name, phone, password_hash)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, u.Username, u.Email, u.Name, u.Phone, u.PasswordHash)
		if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return mapUserError(err)
		}
		return nil
	}

	u.UpdatedAt = time.Now()
	res, err := db.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, name = $3, phone = $4, password_hash = $5, updated_at = $6
		WHERE id = $7
	`, u.Username, u.Email, u.Name, u.Phone, u.PasswordHash, u.UpdatedAt, u.ID)
	if err != nil {
		return mapUserError(err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func mapUserError(err error) error {
	code, constraint, ok := pgError(err)
	if ok && code == uniqueViolation {
		if constraint == uqUsersUsername {
			return apperr.Conflict("Username already exists")
		}
		return apperr.Conflict("Email already exists")
	}
	return fmt.Errorf("save user: %w", err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
