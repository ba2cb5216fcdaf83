// Package mocks holds testify mocks of the model interfaces.
package mocks

import (
	context "context"
	io "io"

	mock "github.com/stretchr/testify/mock"
)

// Storage is a mock type for the Storage type
type Storage struct {
	mock.Mock
}

// Upload provides a mock function with given fields: ctx, key, reader
func (_m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	ret := _m.Called(ctx, key, reader)
	return ret.Error(0)
}

// Download provides a mock function with given fields: ctx, key
func (_m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, key)

	var r0 io.ReadCloser
	if rf, ok := ret.Get(0).(io.ReadCloser); ok {
		r0 = rf
	}
	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, key
func (_m *Storage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

// Exists provides a mock function with given fields: ctx, key
func (_m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}
