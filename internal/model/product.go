package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStore defines catalog persistence operations for products.
type ProductStore interface {
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryStore defines catalog persistence operations for categories.
type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductFilter narrows a product listing. Zero value lists everything.
type ProductFilter struct {
	CategoryID   *uuid.UUID
	FeaturedOnly bool
	Limit        int
}

// Product is a catalog entry as returned by the backend.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      *string         `json:"image_url"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	StockQuantity int             `json:"stock_quantity"`
	IsFeatured    bool            `json:"is_featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Category groups products.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductParams carries admin input for creating or updating a product.
type ProductParams struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Slug          string          `json:"slug" validate:"required,max=200"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      *string         `json:"image_url" validate:"omitempty,url"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	IsFeatured    bool            `json:"is_featured"`
}

// CategoryParams carries admin input for creating a category.
type CategoryParams struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"required,max=100"`
	Description *string `json:"description"`
}
