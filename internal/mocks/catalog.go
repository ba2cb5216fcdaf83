package mocks

import (
	context "context"

	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/storefront/internal/model"
)

// ProductStore is a mock type for the ProductStore type
type ProductStore struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, filter
func (_m *ProductStore) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	ret := _m.Called(ctx, filter)

	var r0 []model.Product
	if v, ok := ret.Get(0).([]model.Product); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// GetBySlug provides a mock function with given fields: ctx, slug
func (_m *ProductStore) GetBySlug(ctx context.Context, slug string) (model.Product, error) {
	ret := _m.Called(ctx, slug)
	return ret.Get(0).(model.Product), ret.Error(1)
}

// Create provides a mock function with given fields: ctx, product
func (_m *ProductStore) Create(ctx context.Context, product model.Product) (model.Product, error) {
	ret := _m.Called(ctx, product)
	if rf, ok := ret.Get(0).(func(context.Context, model.Product) model.Product); ok {
		return rf(ctx, product), ret.Error(1)
	}
	return ret.Get(0).(model.Product), ret.Error(1)
}

// Update provides a mock function with given fields: ctx, product
func (_m *ProductStore) Update(ctx context.Context, product model.Product) (model.Product, error) {
	ret := _m.Called(ctx, product)
	if rf, ok := ret.Get(0).(func(context.Context, model.Product) model.Product); ok {
		return rf(ctx, product), ret.Error(1)
	}
	return ret.Get(0).(model.Product), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// CategoryStore is a mock type for the CategoryStore type
type CategoryStore struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx
func (_m *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	ret := _m.Called(ctx)

	var r0 []model.Category
	if v, ok := ret.Get(0).([]model.Category); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, category
func (_m *CategoryStore) Create(ctx context.Context, category model.Category) (model.Category, error) {
	ret := _m.Called(ctx, category)
	if rf, ok := ret.Get(0).(func(context.Context, model.Category) model.Category); ok {
		return rf(ctx, category), ret.Error(1)
	}
	return ret.Get(0).(model.Category), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}
