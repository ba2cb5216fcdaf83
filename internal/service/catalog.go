package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/store"
)

// FeaturedLimit is how many featured products the home page shows.
const FeaturedLimit = 6

// CatalogState is the part of the client state the catalog service feeds.
type CatalogState interface {
	State() store.State
	SetProducts(products []model.Product)
	SetCategories(categories []model.Category)
	SetSelectedCategory(categoryID *uuid.UUID)
}

// Catalog loads categories and products from the backend into the client
// state. A failed fetch leaves the cached lists untouched.
type Catalog struct {
	products   model.ProductStore
	categories model.CategoryStore
	state      CatalogState
	logger     *logger.Logger
}

func NewCatalog(products model.ProductStore, categories model.CategoryStore, state CatalogState, logger *logger.Logger) *Catalog {
	return &Catalog{
		products:   products,
		categories: categories,
		state:      state,
		logger:     logger,
	}
}

func (c *Catalog) LoadCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := c.categories.List(ctx)
	if err != nil {
		c.logger.Error("Catalog service: failed to load categories",
			"error", err.Error())
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	c.state.SetCategories(categories)
	c.logger.Debug("Catalog service: categories loaded",
		"count", len(categories))

	return categories, nil
}

// LoadProducts fetches the products of the selected category, or all
// products when none is selected.
func (c *Catalog) LoadProducts(ctx context.Context) ([]model.Product, error) {
	selected := c.state.State().SelectedCategory

	products, err := c.products.List(ctx, model.ProductFilter{CategoryID: selected})
	if err != nil {
		c.logger.Error("Catalog service: failed to load products",
			"category_id", selected,
			"error", err.Error())
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	c.state.SetProducts(products)
	c.logger.Debug("Catalog service: products loaded",
		"category_id", selected,
		"count", len(products))

	return products, nil
}

// LoadFeatured returns the newest featured products. They are not cached in
// the client state.
func (c *Catalog) LoadFeatured(ctx context.Context) ([]model.Product, error) {
	products, err := c.products.List(ctx, model.ProductFilter{FeaturedOnly: true, Limit: FeaturedLimit})
	if err != nil {
		c.logger.Error("Catalog service: failed to load featured products",
			"error", err.Error())
		return nil, fmt.Errorf("failed to load featured products: %w", err)
	}
	return products, nil
}

func (c *Catalog) GetProduct(ctx context.Context, slug string) (model.Product, error) {
	product, err := c.products.GetBySlug(ctx, slug)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to get product %q: %w", slug, err)
	}
	return product, nil
}

// SelectCategory changes the category filter and refetches products.
func (c *Catalog) SelectCategory(ctx context.Context, categoryID *uuid.UUID) ([]model.Product, error) {
	c.state.SetSelectedCategory(categoryID)
	return c.LoadProducts(ctx)
}
