package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.CategoryStore = (*CategoryRepository)(nil)

type CategoryRepository struct {
	db *Connection
}

func NewCategoryRepository(db *Connection) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT id, name, slug, description, created_at, updated_at
			  FROM categories ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	query := `INSERT INTO categories (id, name, slug, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, name, slug, description, created_at, updated_at`

	var saved model.Category
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.CreatedAt, c.UpdatedAt,
	).Scan(&saved.ID, &saved.Name, &saved.Slug, &saved.Description, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	return saved, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireAffected(res)
}
