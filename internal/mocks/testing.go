// Package mocks holds testify mocks of the store and service interfaces.
package mocks

import "github.com/stretchr/testify/mock"

// T is the subset of *testing.T the mock constructors need.
type T interface {
	mock.TestingT
	Cleanup(func())
}
