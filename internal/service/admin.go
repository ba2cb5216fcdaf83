package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// Admin manages orders and the catalog. Every operation requires a user
// holding the admin role.
type Admin struct {
	roles      model.RoleStore
	orders     model.OrderStore
	products   model.ProductStore
	categories model.CategoryStore
	validate   *validator.Validate
	logger     *logger.Logger
	now        func() time.Time
}

func NewAdmin(
	roles model.RoleStore,
	orders model.OrderStore,
	products model.ProductStore,
	categories model.CategoryStore,
	validate *validator.Validate,
	logger *logger.Logger,
) *Admin {
	return &Admin{
		roles:      roles,
		orders:     orders,
		products:   products,
		categories: categories,
		validate:   validate,
		logger:     logger,
		now:        time.Now,
	}
}

func (a *Admin) IsAdmin(ctx context.Context, user *model.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	ok, err := a.roles.HasRole(ctx, user.ID, model.RoleAdmin)
	if err != nil {
		a.logger.Error("Admin service: failed to check role",
			"user_id", user.ID,
			"error", err.Error())
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}
	return ok, nil
}

func (a *Admin) authorize(ctx context.Context, user *model.User) error {
	if user == nil {
		return model.ErrAuthRequired
	}
	ok, err := a.IsAdmin(ctx, user)
	if err != nil {
		return err
	}
	if !ok {
		a.logger.Info("Admin service: access denied",
			"user_id", user.ID)
		return model.ErrForbidden
	}
	return nil
}

func (a *Admin) ListOrders(ctx context.Context, user *model.User) ([]model.Order, error) {
	if err := a.authorize(ctx, user); err != nil {
		return nil, err
	}
	orders, err := a.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (a *Admin) OrderDetails(ctx context.Context, user *model.User, orderID uuid.UUID) (model.OrderDetails, error) {
	if err := a.authorize(ctx, user); err != nil {
		return model.OrderDetails{}, err
	}

	order, err := a.orders.GetByID(ctx, orderID)
	if err != nil {
		return model.OrderDetails{}, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := a.orders.ListItems(ctx, orderID)
	if err != nil {
		return model.OrderDetails{}, fmt.Errorf("failed to list order items: %w", err)
	}

	return model.OrderDetails{Order: order, Items: items}, nil
}

func (a *Admin) UpdateOrderStatus(ctx context.Context, user *model.User, orderID uuid.UUID, status model.OrderStatus) error {
	if err := a.authorize(ctx, user); err != nil {
		return err
	}
	if !status.Valid() {
		return model.ErrInvalidStatus
	}

	if err := a.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	a.logger.Info("Admin service: order status updated",
		"order_id", orderID,
		"status", status,
		"user_id", user.ID)
	return nil
}

func (a *Admin) CreateProduct(ctx context.Context, user *model.User, params model.ProductParams) (model.Product, error) {
	if err := a.authorize(ctx, user); err != nil {
		return model.Product{}, err
	}
	if err := a.validateProduct(params); err != nil {
		return model.Product{}, err
	}

	now := a.now()
	product := productFromParams(uuid.New(), params)
	product.CreatedAt = now
	product.UpdatedAt = now

	saved, err := a.products.Create(ctx, product)
	if err != nil {
		a.logger.Error("Admin service: failed to create product",
			"slug", params.Slug,
			"error", err.Error())
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	a.logger.Info("Admin service: product created",
		"product_id", saved.ID)
	return saved, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, user *model.User, productID uuid.UUID, params model.ProductParams) (model.Product, error) {
	if err := a.authorize(ctx, user); err != nil {
		return model.Product{}, err
	}
	if err := a.validateProduct(params); err != nil {
		return model.Product{}, err
	}

	saved, err := a.products.Update(ctx, productFromParams(productID, params))
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	a.logger.Info("Admin service: product updated",
		"product_id", saved.ID)
	return saved, nil
}

func (a *Admin) DeleteProduct(ctx context.Context, user *model.User, productID uuid.UUID) error {
	if err := a.authorize(ctx, user); err != nil {
		return err
	}
	if err := a.products.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	a.logger.Info("Admin service: product deleted",
		"product_id", productID)
	return nil
}

func (a *Admin) CreateCategory(ctx context.Context, user *model.User, params model.CategoryParams) (model.Category, error) {
	if err := a.authorize(ctx, user); err != nil {
		return model.Category{}, err
	}
	if err := a.validate.Struct(params); err != nil {
		return model.Category{}, fmt.Errorf("%w: %s", model.ErrInvalidInput, err.Error())
	}

	now := a.now()
	saved, err := a.categories.Create(ctx, model.Category{
		ID:          uuid.New(),
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	a.logger.Info("Admin service: category created",
		"category_id", saved.ID)
	return saved, nil
}

func (a *Admin) DeleteCategory(ctx context.Context, user *model.User, categoryID uuid.UUID) error {
	if err := a.authorize(ctx, user); err != nil {
		return err
	}
	if err := a.categories.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	a.logger.Info("Admin service: category deleted",
		"category_id", categoryID)
	return nil
}

func (a *Admin) validateProduct(params model.ProductParams) error {
	if err := a.validate.Struct(params); err != nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidInput, err.Error())
	}
	if params.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", model.ErrInvalidInput)
	}
	return nil
}

func productFromParams(id uuid.UUID, params model.ProductParams) model.Product {
	return model.Product{
		ID:            id,
		Name:          params.Name,
		Slug:          params.Slug,
		Description:   params.Description,
		Price:         params.Price,
		ImageURL:      params.ImageURL,
		CategoryID:    params.CategoryID,
		StockQuantity: params.StockQuantity,
		IsFeatured:    params.IsFeatured,
	}
}
