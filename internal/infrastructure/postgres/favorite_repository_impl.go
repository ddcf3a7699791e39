package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

// Constraint names from db/migrations.
const fkSavedUser = "fk_saved_products_user"

// FavoriteRepository stores favorites in user_saved_products, whose primary key
// (user_id, product_id) enforces one row per pair.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	if !validID(userID) || !validID(productID) {
		return false, nil
	}
	var ok bool
	err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_saved_products WHERE user_id = $1 AND product_id = $2)
	`, userID, productID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("favorite exists: %w", err)
	}
	return ok, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, productID string) (*entity.Favorite, error) {
	if !validID(userID) {
		return nil, apperr.NotFound("User not found")
	}
	if !validID(productID) {
		return nil, apperr.NotFound("Product not found")
	}
	f := &entity.Favorite{UserID: userID, ProductID: productID}
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO user_saved_products (user_id, product_id)
		VALUES ($1, $2)
		RETURNING saved_at
	`, userID, productID).Scan(&f.SavedAt)
	if err != nil {
		code, constraint, ok := pgError(err)
		switch {
		case ok && code == uniqueViolation:
			return nil, apperr.Conflict("Product already saved")
		case ok && code == foreignKeyViolation && constraint == fkSavedUser:
			return nil, apperr.NotFound("User not found")
		case ok && code == foreignKeyViolation:
			return nil, apperr.NotFound("Product not found")
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}
	return f, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, productID string) error {
	if !validID(userID) || !validID(productID) {
		return apperr.NotFound("Saved product not found")
	}
	res, err := conn(ctx, r.pool).Exec(ctx, `
		DELETE FROM user_saved_products WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("Saved product not found")
	}
	return nil
}

func (r *FavoriteRepository) ListProductIDsForUser(ctx context.Context, userID string) ([]string, error) {
	if !validID(userID) {
		return []string{}, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT product_id FROM user_saved_products WHERE user_id = $1 ORDER BY saved_at, product_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query favorite ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite ids: %w", err)
	}
	return ids, nil
}

func (r *FavoriteRepository) ListProductsForUser(ctx context.Context, userID string) ([]entity.Product, error) {
	if !validID(userID) {
		return []entity.Product{}, nil
	}
	return queryProducts(ctx, conn(ctx, r.pool), `
		SELECT `+productColumns+`
		FROM user_saved_products usp
		JOIN products p ON p.id = usp.product_id
		WHERE usp.user_id = $1
		ORDER BY usp.saved_at, p.id
	`, userID)
}

func (r *FavoriteRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	if !validID(userID) {
		return 0, nil
	}
	var n int
	if err := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT COUNT(*) FROM user_saved_products WHERE user_id = $1
	`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
