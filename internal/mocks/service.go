package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/basketd/internal/model"
)

// BasketService is a mock of the basket service used by HTTP handlers.
type BasketService struct {
	mock.Mock
}

func NewBasketService(t T) *BasketService {
	m := &BasketService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *BasketService) List(ctx context.Context) ([]model.BasketSummary, error) {
	ret := _m.Called(ctx)
	baskets, _ := ret.Get(0).([]model.BasketSummary)
	return baskets, ret.Error(1)
}

func (_m *BasketService) Create(ctx context.Context, ownerID int64) (int64, error) {
	ret := _m.Called(ctx, ownerID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *BasketService) AddItem(ctx context.Context, ownerID, basketID int64, raw model.RawItem) error {
	ret := _m.Called(ctx, ownerID, basketID, raw)
	return ret.Error(0)
}

// CatalogService is a mock of the catalog service used by HTTP handlers.
type CatalogService struct {
	mock.Mock
}

func NewCatalogService(t T) *CatalogService {
	m := &CatalogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	ret := _m.Called(ctx)
	products, _ := ret.Get(0).([]model.Product)
	return products, ret.Error(1)
}

func (_m *CatalogService) Get(ctx context.Context, id int64) (model.Product, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Product), ret.Error(1)
}

// CredentialVerifier is a mock of the credential check used by the auth middleware.
type CredentialVerifier struct {
	mock.Mock
}

func NewCredentialVerifier(t T) *CredentialVerifier {
	m := &CredentialVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CredentialVerifier) Verify(ctx context.Context, email, password string) (int64, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(int64), ret.Error(1)
}

// Resetter is a mock of the fixture loader behind the debug reset route.
type Resetter struct {
	mock.Mock
}

func NewResetter(t T) *Resetter {
	m := &Resetter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *Resetter) Reset(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Pinger is a mock of the store health check.
type Pinger struct {
	mock.Mock
}

func NewPinger(t T) *Pinger {
	m := &Pinger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *Pinger) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}
