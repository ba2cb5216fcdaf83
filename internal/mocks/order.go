package mocks

import (
	context "context"

	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/storefront/internal/model"
)

// OrderStore is a mock type for the OrderStore type
type OrderStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, order, items
func (_m *OrderStore) Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error) {
	ret := _m.Called(ctx, order, items)
	if rf, ok := ret.Get(0).(func(context.Context, model.Order, []model.OrderItem) model.Order); ok {
		return rf(ctx, order, items), ret.Error(1)
	}
	return ret.Get(0).(model.Order), ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Order), ret.Error(1)
}

// UpdateStatus provides a mock function with given fields: ctx, id, status
func (_m *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

// List provides a mock function with given fields: ctx
func (_m *OrderStore) List(ctx context.Context) ([]model.Order, error) {
	ret := _m.Called(ctx)

	var r0 []model.Order
	if v, ok := ret.Get(0).([]model.Order); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// ListItems provides a mock function with given fields: ctx, orderID
func (_m *OrderStore) ListItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	ret := _m.Called(ctx, orderID)

	var r0 []model.OrderItem
	if v, ok := ret.Get(0).([]model.OrderItem); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}
