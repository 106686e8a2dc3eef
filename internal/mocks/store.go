package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/basketd/internal/model"
)

// AccountStore is a mock of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

func NewAccountStore(t T) *AccountStore {
	m := &AccountStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *AccountStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.Account), ret.Error(1)
}

func (_m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	ret := _m.Called(ctx, account)
	return ret.Get(0).(model.Account), ret.Error(1)
}

// ProductStore is a mock of model.ProductStore.
type ProductStore struct {
	mock.Mock
}

func NewProductStore(t T) *ProductStore {
	m := &ProductStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ProductStore) List(ctx context.Context) ([]model.Product, error) {
	ret := _m.Called(ctx)
	products, _ := ret.Get(0).([]model.Product)
	return products, ret.Error(1)
}

func (_m *ProductStore) GetByID(ctx context.Context, id int64) (model.Product, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Product), ret.Error(1)
}

// BasketStore is a mock of model.BasketStore.
//
// WithinTx accepts either an error or a func(context.Context, func(model.BasketTx) error) error
// as its return value; the latter lets a test run the callback against a BasketTx mock.
type BasketStore struct {
	mock.Mock
}

func NewBasketStore(t T) *BasketStore {
	m := &BasketStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *BasketStore) List(ctx context.Context) ([]model.BasketSummary, error) {
	ret := _m.Called(ctx)
	baskets, _ := ret.Get(0).([]model.BasketSummary)
	return baskets, ret.Error(1)
}

func (_m *BasketStore) WithinTx(ctx context.Context, fn func(tx model.BasketTx) error) error {
	ret := _m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(model.BasketTx) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

// RunIn returns a WithinTx result that runs the callback against tx, the way a real
// store would inside its transaction.
func RunIn(tx model.BasketTx) func(context.Context, func(model.BasketTx) error) error {
	return func(_ context.Context, fn func(model.BasketTx) error) error {
		return fn(tx)
	}
}

// BasketTx is a mock of model.BasketTx.
type BasketTx struct {
	mock.Mock
}

func NewBasketTx(t T) *BasketTx {
	m := &BasketTx{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *BasketTx) Create(ctx context.Context, ownerID int64) (int64, error) {
	ret := _m.Called(ctx, ownerID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *BasketTx) IsOwnedBy(ctx context.Context, basketID, ownerID int64) (bool, error) {
	ret := _m.Called(ctx, basketID, ownerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *BasketTx) ProductExists(ctx context.Context, productID int64) (bool, error) {
	ret := _m.Called(ctx, productID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *BasketTx) AddContent(ctx context.Context, content model.BasketContent) error {
	ret := _m.Called(ctx, content)
	return ret.Error(0)
}
