package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t T) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *SecurityLayer) Listen(network, addr string) (net.Listener, error) {
	ret := _m.Called(network, addr)
	ln, _ := ret.Get(0).(net.Listener)
	return ln, ret.Error(1)
}
