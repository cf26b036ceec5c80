package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

// MockSessionOpener is a mock type for the SessionOpener type
type MockSessionOpener struct {
	mock.Mock
}

type MockSessionOpener_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSessionOpener) EXPECT() *MockSessionOpener_Expecter {
	return &MockSessionOpener_Expecter{mock: &_m.Mock}
}

// OpenSession provides a mock function with given fields: name
func (_m *MockSessionOpener) OpenSession(name domain.SessionName) ports.PredictionSession {
	ret := _m.Called(name)

	if len(ret) == 0 {
		panic("no return value specified for OpenSession")
	}

	var r0 ports.PredictionSession
	if rf, ok := ret.Get(0).(func(domain.SessionName) ports.PredictionSession); ok {
		r0 = rf(name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(ports.PredictionSession)
		}
	}

	return r0
}

// MockSessionOpener_OpenSession_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OpenSession'
type MockSessionOpener_OpenSession_Call struct {
	*mock.Call
}

// OpenSession is a helper method to define mock.On call
//   - name domain.SessionName
func (_e *MockSessionOpener_Expecter) OpenSession(name interface{}) *MockSessionOpener_OpenSession_Call {
	return &MockSessionOpener_OpenSession_Call{Call: _e.mock.On("OpenSession", name)}
}

func (_c *MockSessionOpener_OpenSession_Call) Run(run func(name domain.SessionName)) *MockSessionOpener_OpenSession_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(domain.SessionName))
	})
	return _c
}

func (_c *MockSessionOpener_OpenSession_Call) Return(_a0 ports.PredictionSession) *MockSessionOpener_OpenSession_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSessionOpener_OpenSession_Call) RunAndReturn(run func(domain.SessionName) ports.PredictionSession) *MockSessionOpener_OpenSession_Call {
	_c.Call.Return(run)
	return _c
}

// GetSessionNames provides a mock function with given fields: ctx
func (_m *MockSessionOpener) GetSessionNames(ctx context.Context) ([]domain.SessionName, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetSessionNames")
	}

	var r0 []domain.SessionName
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.SessionName, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []domain.SessionName); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.SessionName)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSessionOpener_GetSessionNames_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetSessionNames'
type MockSessionOpener_GetSessionNames_Call struct {
	*mock.Call
}

// GetSessionNames is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockSessionOpener_Expecter) GetSessionNames(ctx interface{}) *MockSessionOpener_GetSessionNames_Call {
	return &MockSessionOpener_GetSessionNames_Call{Call: _e.mock.On("GetSessionNames", ctx)}
}

func (_c *MockSessionOpener_GetSessionNames_Call) Run(run func(ctx context.Context)) *MockSessionOpener_GetSessionNames_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockSessionOpener_GetSessionNames_Call) Return(_a0 []domain.SessionName, _a1 error) *MockSessionOpener_GetSessionNames_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSessionOpener_GetSessionNames_Call) RunAndReturn(run func(context.Context) ([]domain.SessionName, error)) *MockSessionOpener_GetSessionNames_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteAllSessions provides a mock function with given fields: ctx
func (_m *MockSessionOpener) DeleteAllSessions(ctx context.Context) ([]domain.SessionName, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for DeleteAllSessions")
	}

	var r0 []domain.SessionName
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.SessionName, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []domain.SessionName); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.SessionName)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSessionOpener_DeleteAllSessions_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteAllSessions'
type MockSessionOpener_DeleteAllSessions_Call struct {
	*mock.Call
}

// DeleteAllSessions is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockSessionOpener_Expecter) DeleteAllSessions(ctx interface{}) *MockSessionOpener_DeleteAllSessions_Call {
	return &MockSessionOpener_DeleteAllSessions_Call{Call: _e.mock.On("DeleteAllSessions", ctx)}
}

func (_c *MockSessionOpener_DeleteAllSessions_Call) Run(run func(ctx context.Context)) *MockSessionOpener_DeleteAllSessions_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockSessionOpener_DeleteAllSessions_Call) Return(_a0 []domain.SessionName, _a1 error) *MockSessionOpener_DeleteAllSessions_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSessionOpener_DeleteAllSessions_Call) RunAndReturn(run func(context.Context) ([]domain.SessionName, error)) *MockSessionOpener_DeleteAllSessions_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSessionOpener creates a new instance of MockSessionOpener. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSessionOpener(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionOpener {
	m := &MockSessionOpener{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
