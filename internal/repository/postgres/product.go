package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

const productColumns = `id, name, slug, description, price, image_url, category_id,
	stock_quantity, is_featured, created_at, updated_at`

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ImageURL, &p.CategoryID,
		&p.StockQuantity, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// List returns products newest first, narrowed by filter.
func (r *ProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.FeaturedOnly {
		where = append(where, "is_featured")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by slug: %w", err)
	}

	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	query := `INSERT INTO products (id, name, slug, description, price, image_url, category_id,
			  stock_quantity, is_featured, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING ` + productColumns

	saved, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.ImageURL, p.CategoryID,
		p.StockQuantity, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	))
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}

func (r *ProductRepository) Update(ctx context.Context, p model.Product) (model.Product, error) {
	query := `UPDATE products SET name = $2, slug = $3, description = $4, price = $5, image_url = $6,
			  category_id = $7, stock_quantity = $8, is_featured = $9, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + productColumns

	saved, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.ImageURL,
		p.CategoryID, p.StockQuantity, p.IsFeatured,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return saved, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
