package mocks

import (
	context "context"

	model "github.com/dtroode/accounts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// ContextManager is a mock type for the ContextManager type
type ContextManager struct {
	mock.Mock
}

// GetClaimsFromContext provides a mock function with given fields: ctx
func (_m *ContextManager) GetClaimsFromContext(ctx context.Context) (model.ClaimSet, bool) {
	ret := _m.Called(ctx)

	var r0 model.ClaimSet
	var r1 bool
	if rf, ok := ret.Get(0).(func(context.Context) (model.ClaimSet, bool)); ok {
		return rf(ctx)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(model.ClaimSet)
	}
	r1 = ret.Bool(1)

	return r0, r1
}

// SetClaimsToContext provides a mock function with given fields: ctx, claims
func (_m *ContextManager) SetClaimsToContext(ctx context.Context, claims model.ClaimSet) context.Context {
	ret := _m.Called(ctx, claims)

	var r0 context.Context
	if rf, ok := ret.Get(0).(func(context.Context, model.ClaimSet) context.Context); ok {
		r0 = rf(ctx, claims)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(context.Context)
		}
	}

	return r0
}

// NewContextManager creates a new instance of ContextManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	mock := &ContextManager{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
