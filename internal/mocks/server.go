package mocks

import (
	net "net"

	mock "github.com/stretchr/testify/mock"
)

// SecurityLayer is a mock type for the SecurityLayer type
type SecurityLayer struct {
	mock.Mock
}

// Listen provides a mock function with given fields: protocol, addr
func (_m *SecurityLayer) Listen(protocol string, addr string) (net.Listener, error) {
	ret := _m.Called(protocol, addr)

	var r0 net.Listener
	if v, ok := ret.Get(0).(net.Listener); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// NewSecurityLayer creates a new instance of SecurityLayer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSecurityLayer(t interface {
	mock.TestingT
	Cleanup(func())
}) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
