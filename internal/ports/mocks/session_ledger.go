package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
	"github.com/usleep/usleep-cli/internal/domain"
)

// MockSessionLedger is a mock type for the SessionLedger type
type MockSessionLedger struct {
	mock.Mock
}

type MockSessionLedger_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSessionLedger) EXPECT() *MockSessionLedger_Expecter {
	return &MockSessionLedger_Expecter{mock: &_m.Mock}
}

// Record provides a mock function with given fields: ctx, entry
func (_m *MockSessionLedger) Record(ctx context.Context, entry domain.LedgerEntry) error {
	ret := _m.Called(ctx, entry)

	if len(ret) == 0 {
		panic("no return value specified for Record")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.LedgerEntry) error); ok {
		r0 = rf(ctx, entry)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSessionLedger_Record_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Record'
type MockSessionLedger_Record_Call struct {
	*mock.Call
}

// Record is a helper method to define mock.On call
//   - ctx context.Context
//   - entry domain.LedgerEntry
func (_e *MockSessionLedger_Expecter) Record(ctx interface{}, entry interface{}) *MockSessionLedger_Record_Call {
	return &MockSessionLedger_Record_Call{Call: _e.mock.On("Record", ctx, entry)}
}

func (_c *MockSessionLedger_Record_Call) Run(run func(ctx context.Context, entry domain.LedgerEntry)) *MockSessionLedger_Record_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(domain.LedgerEntry))
	})
	return _c
}

func (_c *MockSessionLedger_Record_Call) Return(_a0 error) *MockSessionLedger_Record_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSessionLedger_Record_Call) RunAndReturn(run func(context.Context, domain.LedgerEntry) error) *MockSessionLedger_Record_Call {
	_c.Call.Return(run)
	return _c
}

// Remove provides a mock function with given fields: ctx, name
func (_m *MockSessionLedger) Remove(ctx context.Context, name domain.SessionName) error {
	ret := _m.Called(ctx, name)

	if len(ret) == 0 {
		panic("no return value specified for Remove")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.SessionName) error); ok {
		r0 = rf(ctx, name)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSessionLedger_Remove_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Remove'
type MockSessionLedger_Remove_Call struct {
	*mock.Call
}

// Remove is a helper method to define mock.On call
//   - ctx context.Context
//   - name domain.SessionName
func (_e *MockSessionLedger_Expecter) Remove(ctx interface{}, name interface{}) *MockSessionLedger_Remove_Call {
	return &MockSessionLedger_Remove_Call{Call: _e.mock.On("Remove", ctx, name)}
}

func (_c *MockSessionLedger_Remove_Call) Run(run func(ctx context.Context, name domain.SessionName)) *MockSessionLedger_Remove_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(domain.SessionName))
	})
	return _c
}

func (_c *MockSessionLedger_Remove_Call) Return(_a0 error) *MockSessionLedger_Remove_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSessionLedger_Remove_Call) RunAndReturn(run func(context.Context, domain.SessionName) error) *MockSessionLedger_Remove_Call {
	_c.Call.Return(run)
	return _c
}

// List provides a mock function with given fields: ctx
func (_m *MockSessionLedger) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 []domain.LedgerEntry
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.LedgerEntry, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []domain.LedgerEntry); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.LedgerEntry)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSessionLedger_List_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'List'
type MockSessionLedger_List_Call struct {
	*mock.Call
}

// List is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockSessionLedger_Expecter) List(ctx interface{}) *MockSessionLedger_List_Call {
	return &MockSessionLedger_List_Call{Call: _e.mock.On("List", ctx)}
}

func (_c *MockSessionLedger_List_Call) Run(run func(ctx context.Context)) *MockSessionLedger_List_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockSessionLedger_List_Call) Return(_a0 []domain.LedgerEntry, _a1 error) *MockSessionLedger_List_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSessionLedger_List_Call) RunAndReturn(run func(context.Context) ([]domain.LedgerEntry, error)) *MockSessionLedger_List_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSessionLedger creates a new instance of MockSessionLedger. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSessionLedger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionLedger {
	m := &MockSessionLedger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
