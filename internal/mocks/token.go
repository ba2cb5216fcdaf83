package mocks

import (
	context "context"
	time "time"

	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/storefront/internal/model"
)

// TokenManager is a mock type for the TokenManager type
type TokenManager struct {
	mock.Mock
}

// GenerateAccessToken provides a mock function with given fields: userID
func (_m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.Get(1).(time.Time), ret.Error(2)
}

// GenerateRefreshToken provides a mock function with given fields: userID
func (_m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.String(1), ret.Error(2)
}

// ParseAccessToken provides a mock function with given fields: token
func (_m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

// ParseRefreshToken provides a mock function with given fields: token
func (_m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.String(1), ret.Error(2)
}

// RefreshTokenStore is a mock type for the RefreshTokenStore type
type RefreshTokenStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, token
func (_m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// GetByJTI provides a mock function with given fields: ctx, jti
func (_m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	ret := _m.Called(ctx, jti)
	if rf, ok := ret.Get(0).(func(context.Context, string) model.RefreshToken); ok {
		return rf(ctx, jti), ret.Error(1)
	}
	return ret.Get(0).(model.RefreshToken), ret.Error(1)
}

// RevokeByJTI provides a mock function with given fields: ctx, jti
func (_m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	ret := _m.Called(ctx, jti)
	return ret.Error(0)
}

// RevokeAllByUser provides a mock function with given fields: ctx, userID
func (_m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}
