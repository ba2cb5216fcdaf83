package mocks

import (
	context "context"

	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/storefront/internal/model"
)

// UserStore is a mock type for the UserStore type
type UserStore struct {
	mock.Mock
}

// GetByEmail provides a mock function with given fields: ctx, email
func (_m *UserStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.Account), ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Account), ret.Error(1)
}

// Create provides a mock function with given fields: ctx, account
func (_m *UserStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	ret := _m.Called(ctx, account)
	if rf, ok := ret.Get(0).(func(context.Context, model.Account) model.Account); ok {
		return rf(ctx, account), ret.Error(1)
	}
	return ret.Get(0).(model.Account), ret.Error(1)
}

// RoleStore is a mock type for the RoleStore type
type RoleStore struct {
	mock.Mock
}

// HasRole provides a mock function with given fields: ctx, userID, role
func (_m *RoleStore) HasRole(ctx context.Context, userID uuid.UUID, role model.Role) (bool, error) {
	ret := _m.Called(ctx, userID, role)
	return ret.Bool(0), ret.Error(1)
}
