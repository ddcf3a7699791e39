package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

const productColumns = `p.id, p.name, p.description, p.price, p.category, p.image_url, p.is_available, p.created_at, p.updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p := &entity.Product{}
	row := conn(ctx, r.pool).QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	return queryProducts(ctx, conn(ctx, r.pool), `SELECT `+productColumns+` FROM products p ORDER BY p.name`)
}

func (r *ProductRepository) ListAvailable(ctx context.Context) ([]entity.Product, error) {
	return queryProducts(ctx, conn(ctx, r.pool), `SELECT `+productColumns+` FROM products p WHERE p.is_available ORDER BY p.name`)
}

func (r *ProductRepository) Search(ctx context.Context, query string) ([]entity.Product, error) {
	return queryProducts(ctx, conn(ctx, r.pool), `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.name ILIKE $1 OR p.category ILIKE $1
		ORDER BY p.name
	`, containsPattern(query))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches query as a literal substring.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

func (r *ProductRepository) TopExpensive(ctx context.Context, limit int) ([]entity.Product, error) {
	return queryProducts(ctx, conn(ctx, r.pool), `SELECT `+productColumns+` FROM products p ORDER BY p.price DESC LIMIT $1`, limit)
}

func (r *ProductRepository) Save(ctx context.Context, p *entity.Product) error {
	db := conn(ctx, r.pool)
	if p.ID == "" {
		row := db.QueryRow(ctx, `
			INSERT INTO products (name, description, price, category, image_url, is_available)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.IsAvailable)
		if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return nil
	}
	p.UpdatedAt = time.Now()
	_, err := db.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, image_url = $5, is_available = $6, updated_at = $7
		WHERE id = $8
	`, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.IsAvailable, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL,
		&p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
}

func queryProducts(ctx context.Context, db dbtx, query string, args ...any) ([]entity.Product, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
