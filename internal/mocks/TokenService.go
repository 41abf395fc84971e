package mocks

import (
	context "context"

	model "github.com/dtroode/accounts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// TokenService is a mock type for the TokenService type
type TokenService struct {
	mock.Mock
}

// GetClaims provides a mock function with given fields: ctx, token
func (_m *TokenService) GetClaims(ctx context.Context, token string) (model.ClaimSet, error) {
	ret := _m.Called(ctx, token)

	var r0 model.ClaimSet
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (model.ClaimSet, error)); ok {
		return rf(ctx, token)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) model.ClaimSet); ok {
		r0 = rf(ctx, token)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.ClaimSet)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, token)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewTokenService creates a new instance of TokenService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenService {
	mock := &TokenService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
