package entry

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Create(ctx context.Context, e *Entry) error {
	ret := _m.Called(ctx, e)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Entry) error); ok {
		r0 = rf(ctx, e)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) FindByID(ctx context.Context, entryID int64) (*Entry, error) {
	ret := _m.Called(ctx, entryID)

	var r0 *Entry
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Entry); ok {
		r0 = rf(ctx, entryID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Entry)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, entryID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindAll(ctx context.Context) ([]*Entry, error) {
	ret := _m.Called(ctx)

	var r0 []*Entry
	if rf, ok := ret.Get(0).(func(context.Context) []*Entry); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Entry)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*Entry, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Entry
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Entry); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Entry)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) Update(ctx context.Context, e *Entry) error {
	ret := _m.Called(ctx, e)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Entry) error); ok {
		r0 = rf(ctx, e)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) Delete(ctx context.Context, entryID int64) error {
	ret := _m.Called(ctx, entryID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, entryID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) FindOpenLoanValidity(ctx context.Context) ([]*ExpiringLoan, error) {
	ret := _m.Called(ctx)

	var r0 []*ExpiringLoan
	if rf, ok := ret.Get(0).(func(context.Context) []*ExpiringLoan); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*ExpiringLoan)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
