package mocks

import (
	context "context"

	model "github.com/dtroode/accounts-server/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// UserDirectory is a mock type for the UserDirectory type
type UserDirectory struct {
	mock.Mock
}

// AddClaim provides a mock function with given fields: ctx, user, claim
func (_m *UserDirectory) AddClaim(ctx context.Context, user model.UserIdentity, claim model.Claim) error {
	ret := _m.Called(ctx, user, claim)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.UserIdentity, model.Claim) error); ok {
		r0 = rf(ctx, user, claim)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// CreateUser provides a mock function with given fields: ctx, username, email, password
func (_m *UserDirectory) CreateUser(ctx context.Context, username string, email string, password string) (model.UserIdentity, error) {
	ret := _m.Called(ctx, username, email, password)

	var r0 model.UserIdentity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, string) (model.UserIdentity, error)); ok {
		return rf(ctx, username, email, password)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, string, string) model.UserIdentity); ok {
		r0 = rf(ctx, username, email, password)
	} else {
		r0 = ret.Get(0).(model.UserIdentity)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, string, string) error); ok {
		r1 = rf(ctx, username, email, password)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *UserDirectory) FindByID(ctx context.Context, id uuid.UUID) (model.UserIdentity, error) {
	ret := _m.Called(ctx, id)

	var r0 model.UserIdentity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (model.UserIdentity, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) model.UserIdentity); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(model.UserIdentity)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindByUsername provides a mock function with given fields: ctx, username
func (_m *UserDirectory) FindByUsername(ctx context.Context, username string) (model.UserIdentity, error) {
	ret := _m.Called(ctx, username)

	var r0 model.UserIdentity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (model.UserIdentity, error)); ok {
		return rf(ctx, username)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) model.UserIdentity); ok {
		r0 = rf(ctx, username)
	} else {
		r0 = ret.Get(0).(model.UserIdentity)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, username)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetClaims provides a mock function with given fields: ctx, user
func (_m *UserDirectory) GetClaims(ctx context.Context, user model.UserIdentity) (model.ClaimSet, error) {
	ret := _m.Called(ctx, user)

	var r0 model.ClaimSet
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.UserIdentity) (model.ClaimSet, error)); ok {
		return rf(ctx, user)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.UserIdentity) model.ClaimSet); ok {
		r0 = rf(ctx, user)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(model.ClaimSet)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.UserIdentity) error); ok {
		r1 = rf(ctx, user)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListUsersOrderedByUsername provides a mock function with given fields: ctx
func (_m *UserDirectory) ListUsersOrderedByUsername(ctx context.Context) ([]model.UserIdentity, error) {
	ret := _m.Called(ctx)

	var r0 []model.UserIdentity
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.UserIdentity, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.UserIdentity); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.UserIdentity)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RemoveClaim provides a mock function with given fields: ctx, user, claim
func (_m *UserDirectory) RemoveClaim(ctx context.Context, user model.UserIdentity, claim model.Claim) error {
	ret := _m.Called(ctx, user, claim)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.UserIdentity, model.Claim) error); ok {
		r0 = rf(ctx, user, claim)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// VerifyPassword provides a mock function with given fields: ctx, username, password
func (_m *UserDirectory) VerifyPassword(ctx context.Context, username string, password string) error {
	ret := _m.Called(ctx, username, password)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, username, password)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewUserDirectory creates a new instance of UserDirectory. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewUserDirectory(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserDirectory {
	mock := &UserDirectory{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
