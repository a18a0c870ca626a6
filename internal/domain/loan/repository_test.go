package loan

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) Create(ctx context.Context, l *Loan) error {
	ret := _m.Called(ctx, l)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Loan) error); ok {
		r0 = rf(ctx, l)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) FindByNumber(ctx context.Context, loanNumber int64) (*Loan, error) {
	ret := _m.Called(ctx, loanNumber)

	var r0 *Loan
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Loan); ok {
		r0 = rf(ctx, loanNumber)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Loan)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, loanNumber)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindAll(ctx context.Context) ([]*Loan, error) {
	ret := _m.Called(ctx)

	var r0 []*Loan
	if rf, ok := ret.Get(0).(func(context.Context) []*Loan); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Loan)
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

func (_m *MockRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*Loan, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Loan
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Loan); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Loan)
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

func (_m *MockRepository) Update(ctx context.Context, l *Loan) error {
	ret := _m.Called(ctx, l)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Loan) error); ok {
		r0 = rf(ctx, l)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) Delete(ctx context.Context, loanNumber int64) error {
	ret := _m.Called(ctx, loanNumber)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, loanNumber)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
