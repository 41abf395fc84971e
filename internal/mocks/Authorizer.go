package mocks

import (
	context "context"

	model "github.com/dtroode/accounts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// Authorizer is a mock type for the Authorizer type
type Authorizer struct {
	mock.Mock
}

// Authorize provides a mock function with given fields: ctx, claims, policy
func (_m *Authorizer) Authorize(ctx context.Context, claims model.ClaimSet, policy model.PolicyName) (bool, error) {
	ret := _m.Called(ctx, claims, policy)

	var r0 bool
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.ClaimSet, model.PolicyName) (bool, error)); ok {
		return rf(ctx, claims, policy)
	}
	r0 = ret.Bool(0)
	r1 = ret.Error(1)

	return r0, r1
}

// NewAuthorizer creates a new instance of Authorizer. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAuthorizer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Authorizer {
	mock := &Authorizer{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
