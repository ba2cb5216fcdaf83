package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront/internal/mocks"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/testutil"
)

type adminFixture struct {
	svc        *Admin
	roles      *mocks.RoleStore
	orders     *mocks.OrderStore
	products   *mocks.ProductStore
	categories *mocks.CategoryStore
	admin      *model.User
}

func newAdminFixture(t *testing.T) adminFixture {
	t.Helper()
	f := adminFixture{
		roles:      &mocks.RoleStore{},
		orders:     &mocks.OrderStore{},
		products:   &mocks.ProductStore{},
		categories: &mocks.CategoryStore{},
		admin:      &model.User{ID: uuid.New()},
	}
	f.svc = NewAdmin(f.roles, f.orders, f.products, f.categories, validator.New(), testutil.MakeNoopLogger())
	f.roles.On("HasRole", mock.Anything, f.admin.ID, model.RoleAdmin).Return(true, nil).Maybe()
	return f
}

func TestAdmin_Authorization(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	customer := &model.User{ID: uuid.New()}
	f.roles.On("HasRole", ctx, customer.ID, model.RoleAdmin).Return(false, nil)

	ok, err := f.svc.IsAdmin(ctx, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.IsAdmin(ctx, f.admin)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.svc.ListOrders(ctx, nil)
	require.ErrorIs(t, err, model.ErrAuthRequired)

	_, err = f.svc.ListOrders(ctx, customer)
	require.ErrorIs(t, err, model.ErrForbidden)

	require.ErrorIs(t, f.svc.DeleteProduct(ctx, customer, uuid.New()), model.ErrForbidden)
	f.orders.AssertNotCalled(t, "List", mock.Anything)
	f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdmin_RoleLookupError(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	user := &model.User{ID: uuid.New()}
	f.roles.On("HasRole", ctx, user.ID, model.RoleAdmin).Return(false, assert.AnError)

	_, err := f.svc.ListOrders(ctx, user)
	require.ErrorIs(t, err, assert.AnError)
}

func TestAdmin_Orders(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	order := model.Order{ID: uuid.New(), Status: model.OrderStatusPending}
	items := []model.OrderItem{{ID: uuid.New(), OrderID: order.ID, Quantity: 1, ProductName: "Mug"}}

	f.orders.On("List", ctx).Return([]model.Order{order}, nil).Once()
	f.orders.On("GetByID", ctx, order.ID).Return(order, nil).Once()
	f.orders.On("ListItems", ctx, order.ID).Return(items, nil).Once()
	f.orders.On("UpdateStatus", ctx, order.ID, model.OrderStatusShipped).Return(nil).Once()

	list, err := f.svc.ListOrders(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	details, err := f.svc.OrderDetails(ctx, f.admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, details.Order.ID)
	assert.Equal(t, items, details.Items)

	require.NoError(t, f.svc.UpdateOrderStatus(ctx, f.admin, order.ID, model.OrderStatusShipped))
	require.ErrorIs(t, f.svc.UpdateOrderStatus(ctx, f.admin, order.ID, "lost"), model.ErrInvalidStatus)
	f.orders.AssertExpectations(t)
}

func TestAdmin_OrderDetails_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	id := uuid.New()
	f.orders.On("GetByID", ctx, id).Return(model.Order{}, model.ErrNotFound).Once()

	_, err := f.svc.OrderDetails(ctx, f.admin, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	f.orders.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestAdmin_Products(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)
	params := model.ProductParams{
		Name:          "Linen Shirt",
		Slug:          "linen-shirt",
		Price:         decimal.RequireFromString("49.90"),
		StockQuantity: 4,
	}

	f.products.On("Create", ctx, mock.MatchedBy(func(p model.Product) bool {
		return p.ID != uuid.Nil && p.Slug == "linen-shirt" && !p.CreatedAt.IsZero()
	})).Return(func(_ context.Context, p model.Product) model.Product { return p }, nil).Once()

	created, err := f.svc.CreateProduct(ctx, f.admin, params)
	require.NoError(t, err)
	assert.Equal(t, 4, created.StockQuantity)

	params.StockQuantity = 0
	f.products.On("Update", ctx, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == created.ID && p.StockQuantity == 0
	})).Return(func(_ context.Context, p model.Product) model.Product { return p }, nil).Once()

	updated, err := f.svc.UpdateProduct(ctx, f.admin, created.ID, params)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)

	f.products.On("Delete", ctx, created.ID).Return(nil).Once()
	require.NoError(t, f.svc.DeleteProduct(ctx, f.admin, created.ID))
	f.products.AssertExpectations(t)
}

func TestAdmin_Products_Invalid(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	tests := []struct {
		name   string
		params model.ProductParams
	}{
		{name: "missing name", params: model.ProductParams{Slug: "x", Price: decimal.NewFromInt(1)}},
		{name: "negative stock", params: model.ProductParams{Name: "x", Slug: "x", StockQuantity: -1}},
		{name: "negative price", params: model.ProductParams{Name: "x", Slug: "x", Price: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateProduct(ctx, f.admin, tt.params)
			require.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdmin_Categories(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(t)

	f.categories.On("Create", ctx, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == "Hats" && c.Slug == "hats"
	})).Return(func(_ context.Context, c model.Category) model.Category { return c }, nil).Once()

	created, err := f.svc.CreateCategory(ctx, f.admin, model.CategoryParams{Name: "Hats", Slug: "hats"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err = f.svc.CreateCategory(ctx, f.admin, model.CategoryParams{Name: "Hats"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	f.categories.On("Delete", ctx, created.ID).Return(model.ErrNotFound).Once()
	require.ErrorIs(t, f.svc.DeleteCategory(ctx, f.admin, created.ID), model.ErrNotFound)
}
