package mocks

import (
	context "context"

	model "github.com/dtroode/accounts-server/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// AccountsService is a mock type for the AccountsService type
type AccountsService struct {
	mock.Mock
}

// GrantAdminRole provides a mock function with given fields: ctx, userID
func (_m *AccountsService) GrantAdminRole(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, userID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ListUsers provides a mock function with given fields: ctx
func (_m *AccountsService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	ret := _m.Called(ctx)

	var r0 []model.UserSummary
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.UserSummary, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.UserSummary); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.UserSummary)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Login provides a mock function with given fields: ctx, creds
func (_m *AccountsService) Login(ctx context.Context, creds model.UserCredentials) (model.AuthenticationResponse, error) {
	ret := _m.Called(ctx, creds)

	var r0 model.AuthenticationResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.UserCredentials) (model.AuthenticationResponse, error)); ok {
		return rf(ctx, creds)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.UserCredentials) model.AuthenticationResponse); ok {
		r0 = rf(ctx, creds)
	} else {
		r0 = ret.Get(0).(model.AuthenticationResponse)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.UserCredentials) error); ok {
		r1 = rf(ctx, creds)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Register provides a mock function with given fields: ctx, creds
func (_m *AccountsService) Register(ctx context.Context, creds model.UserCredentials) (model.AuthenticationResponse, error) {
	ret := _m.Called(ctx, creds)

	var r0 model.AuthenticationResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.UserCredentials) (model.AuthenticationResponse, error)); ok {
		return rf(ctx, creds)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.UserCredentials) model.AuthenticationResponse); ok {
		r0 = rf(ctx, creds)
	} else {
		r0 = ret.Get(0).(model.AuthenticationResponse)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.UserCredentials) error); ok {
		r1 = rf(ctx, creds)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RevokeAdminRole provides a mock function with given fields: ctx, userID
func (_m *AccountsService) RevokeAdminRole(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, userID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewAccountsService creates a new instance of AccountsService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAccountsService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AccountsService {
	mock := &AccountsService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
