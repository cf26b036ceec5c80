package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

// MockPredictionSession is a mock type for the PredictionSession type
type MockPredictionSession struct {
	mock.Mock
}

type MockPredictionSession_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPredictionSession) EXPECT() *MockPredictionSession_Expecter {
	return &MockPredictionSession_Expecter{mock: &_m.Mock}
}

// Name provides a mock function with no fields
func (_m *MockPredictionSession) Name() domain.SessionName {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Name")
	}

	var r0 domain.SessionName
	if rf, ok := ret.Get(0).(func() domain.SessionName); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(domain.SessionName)
	}

	return r0
}

// MockPredictionSession_Name_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Name'
type MockPredictionSession_Name_Call struct {
	*mock.Call
}

// Name is a helper method to define mock.On call
func (_e *MockPredictionSession_Expecter) Name() *MockPredictionSession_Name_Call {
	return &MockPredictionSession_Name_Call{Call: _e.mock.On("Name")}
}

func (_c *MockPredictionSession_Name_Call) Run(run func()) *MockPredictionSession_Name_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockPredictionSession_Name_Call) Return(_a0 domain.SessionName) *MockPredictionSession_Name_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPredictionSession_Name_Call) RunAndReturn(run func() domain.SessionName) *MockPredictionSession_Name_Call {
	_c.Call.Return(run)
	return _c
}

// SetModel provides a mock function with given fields: ctx, model
func (_m *MockPredictionSession) SetModel(ctx context.Context, model string) error {
	ret := _m.Called(ctx, model)

	if len(ret) == 0 {
		panic("no return value specified for SetModel")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, model)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPredictionSession_SetModel_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetModel'
type MockPredictionSession_SetModel_Call struct {
	*mock.Call
}

// SetModel is a helper method to define mock.On call
//   - ctx context.Context
//   - model string
func (_e *MockPredictionSession_Expecter) SetModel(ctx interface{}, model interface{}) *MockPredictionSession_SetModel_Call {
	return &MockPredictionSession_SetModel_Call{Call: _e.mock.On("SetModel", ctx, model)}
}

func (_c *MockPredictionSession_SetModel_Call) Run(run func(ctx context.Context, model string)) *MockPredictionSession_SetModel_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockPredictionSession_SetModel_Call) Return(_a0 error) *MockPredictionSession_SetModel_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPredictionSession_SetModel_Call) RunAndReturn(run func(context.Context, string) error) *MockPredictionSession_SetModel_Call {
	_c.Call.Return(run)
	return _c
}

// UploadFile provides a mock function with given fields: ctx, path, anonymize
func (_m *MockPredictionSession) UploadFile(ctx context.Context, path string, anonymize bool) error {
	ret := _m.Called(ctx, path, anonymize)

	if len(ret) == 0 {
		panic("no return value specified for UploadFile")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, bool) error); ok {
		r0 = rf(ctx, path, anonymize)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPredictionSession_UploadFile_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UploadFile'
type MockPredictionSession_UploadFile_Call struct {
	*mock.Call
}

// UploadFile is a helper method to define mock.On call
//   - ctx context.Context
//   - path string
//   - anonymize bool
func (_e *MockPredictionSession_Expecter) UploadFile(ctx interface{}, path interface{}, anonymize interface{}) *MockPredictionSession_UploadFile_Call {
	return &MockPredictionSession_UploadFile_Call{Call: _e.mock.On("UploadFile", ctx, path, anonymize)}
}

func (_c *MockPredictionSession_UploadFile_Call) Run(run func(ctx context.Context, path string, anonymize bool)) *MockPredictionSession_UploadFile_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(bool))
	})
	return _c
}

func (_c *MockPredictionSession_UploadFile_Call) Return(_a0 error) *MockPredictionSession_UploadFile_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPredictionSession_UploadFile_Call) RunAndReturn(run func(context.Context, string, bool) error) *MockPredictionSession_UploadFile_Call {
	_c.Call.Return(run)
	return _c
}

// GetFileInfo provides a mock function with given fields: ctx
func (_m *MockPredictionSession) GetFileInfo(ctx context.Context) (domain.FileInfo, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetFileInfo")
	}

	var r0 domain.FileInfo
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (domain.FileInfo, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) domain.FileInfo); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(domain.FileInfo)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPredictionSession_GetFileInfo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetFileInfo'
type MockPredictionSession_GetFileInfo_Call struct {
	*mock.Call
}

// GetFileInfo is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockPredictionSession_Expecter) GetFileInfo(ctx interface{}) *MockPredictionSession_GetFileInfo_Call {
	return &MockPredictionSession_GetFileInfo_Call{Call: _e.mock.On("GetFileInfo", ctx)}
}

func (_c *MockPredictionSession_GetFileInfo_Call) Run(run func(ctx context.Context)) *MockPredictionSession_GetFileInfo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockPredictionSession_GetFileInfo_Call) Return(_a0 domain.FileInfo, _a1 error) *MockPredictionSession_GetFileInfo_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPredictionSession_GetFileInfo_Call) RunAndReturn(run func(context.Context) (domain.FileInfo, error)) *MockPredictionSession_GetFileInfo_Call {
	_c.Call.Return(run)
	return _c
}

// Predict provides a mock function with given fields: ctx, dataPerPrediction, groups
func (_m *MockPredictionSession) Predict(ctx context.Context, dataPerPrediction int, groups domain.ChannelGroups) (domain.ChannelGroups, error) {
	ret := _m.Called(ctx, dataPerPrediction, groups)

	if len(ret) == 0 {
		panic("no return value specified for Predict")
	}

	var r0 domain.ChannelGroups
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.ChannelGroups) (domain.ChannelGroups, error)); ok {
		return rf(ctx, dataPerPrediction, groups)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int, domain.ChannelGroups) domain.ChannelGroups); ok {
		r0 = rf(ctx, dataPerPrediction, groups)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(domain.ChannelGroups)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int, domain.ChannelGroups) error); ok {
		r1 = rf(ctx, dataPerPrediction, groups)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPredictionSession_Predict_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Predict'
type MockPredictionSession_Predict_Call struct {
	*mock.Call
}

// Predict is a helper method to define mock.On call
//   - ctx context.Context
//   - dataPerPrediction int
//   - groups domain.ChannelGroups
func (_e *MockPredictionSession_Expecter) Predict(ctx interface{}, dataPerPrediction interface{}, groups interface{}) *MockPredictionSession_Predict_Call {
	return &MockPredictionSession_Predict_Call{Call: _e.mock.On("Predict", ctx, dataPerPrediction, groups)}
}

func (_c *MockPredictionSession_Predict_Call) Run(run func(ctx context.Context, dataPerPrediction int, groups domain.ChannelGroups)) *MockPredictionSession_Predict_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(int), args[2].(domain.ChannelGroups))
	})
	return _c
}

func (_c *MockPredictionSession_Predict_Call) Return(_a0 domain.ChannelGroups, _a1 error) *MockPredictionSession_Predict_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPredictionSession_Predict_Call) RunAndReturn(run func(context.Context, int, domain.ChannelGroups) (domain.ChannelGroups, error)) *MockPredictionSession_Predict_Call {
	_c.Call.Return(run)
	return _c
}

// StreamPredictionLog provides a mock function with given fields: ctx, opts
func (_m *MockPredictionSession) StreamPredictionLog(ctx context.Context, opts ports.StreamOptions) (domain.StreamResult, error) {
	ret := _m.Called(ctx, opts)

	if len(ret) == 0 {
		panic("no return value specified for StreamPredictionLog")
	}

	var r0 domain.StreamResult
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, ports.StreamOptions) (domain.StreamResult, error)); ok {
		return rf(ctx, opts)
	}
	if rf, ok := ret.Get(0).(func(context.Context, ports.StreamOptions) domain.StreamResult); ok {
		r0 = rf(ctx, opts)
	} else {
		r0 = ret.Get(0).(domain.StreamResult)
	}

	if rf, ok := ret.Get(1).(func(context.Context, ports.StreamOptions) error); ok {
		r1 = rf(ctx, opts)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPredictionSession_StreamPredictionLog_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'StreamPredictionLog'
type MockPredictionSession_StreamPredictionLog_Call struct {
	*mock.Call
}

// StreamPredictionLog is a helper method to define mock.On call
//   - ctx context.Context
//   - opts ports.StreamOptions
func (_e *MockPredictionSession_Expecter) StreamPredictionLog(ctx interface{}, opts interface{}) *MockPredictionSession_StreamPredictionLog_Call {
	return &MockPredictionSession_StreamPredictionLog_Call{Call: _e.mock.On("StreamPredictionLog", ctx, opts)}
}

func (_c *MockPredictionSession_StreamPredictionLog_Call) Run(run func(ctx context.Context, opts ports.StreamOptions)) *MockPredictionSession_StreamPredictionLog_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(ports.StreamOptions))
	})
	return _c
}

func (_c *MockPredictionSession_StreamPredictionLog_Call) Return(_a0 domain.StreamResult, _a1 error) *MockPredictionSession_StreamPredictionLog_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPredictionSession_StreamPredictionLog_Call) RunAndReturn(run func(context.Context, ports.StreamOptions) (domain.StreamResult, error)) *MockPredictionSession_StreamPredictionLog_Call {
	_c.Call.Return(run)
	return _c
}

// GetHypnogram provides a mock function with given fields: ctx
func (_m *MockPredictionSession) GetHypnogram(ctx context.Context) (domain.Hypnogram, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetHypnogram")
	}

	var r0 domain.Hypnogram
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (domain.Hypnogram, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) domain.Hypnogram); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(domain.Hypnogram)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPredictionSession_GetHypnogram_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetHypnogram'
type MockPredictionSession_GetHypnogram_Call struct {
	*mock.Call
}

// GetHypnogram is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockPredictionSession_Expecter) GetHypnogram(ctx interface{}) *MockPredictionSession_GetHypnogram_Call {
	return &MockPredictionSession_GetHypnogram_Call{Call: _e.mock.On("GetHypnogram", ctx)}
}

func (_c *MockPredictionSession_GetHypnogram_Call) Run(run func(ctx context.Context)) *MockPredictionSession_GetHypnogram_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockPredictionSession_GetHypnogram_Call) Return(_a0 domain.Hypnogram, _a1 error) *MockPredictionSession_GetHypnogram_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPredictionSession_GetHypnogram_Call) RunAndReturn(run func(context.Context) (domain.Hypnogram, error)) *MockPredictionSession_GetHypnogram_Call {
	_c.Call.Return(run)
	return _c
}

// DownloadHypnogram provides a mock function with given fields: ctx, outPath, format
func (_m *MockPredictionSession) DownloadHypnogram(ctx context.Context, outPath string, format domain.HypnogramFormat) (string, error) {
	ret := _m.Called(ctx, outPath, format)

	if len(ret) == 0 {
		panic("no return value specified for DownloadHypnogram")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, domain.HypnogramFormat) (string, error)); ok {
		return rf(ctx, outPath, format)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, domain.HypnogramFormat) string); ok {
		r0 = rf(ctx, outPath, format)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, domain.HypnogramFormat) error); ok {
		r1 = rf(ctx, outPath, format)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPredictionSession_DownloadHypnogram_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DownloadHypnogram'
type MockPredictionSession_DownloadHypnogram_Call struct {
	*mock.Call
}

// DownloadHypnogram is a helper method to define mock.On call
//   - ctx context.Context
//   - outPath string
//   - format domain.HypnogramFormat
func (_e *MockPredictionSession_Expecter) DownloadHypnogram(ctx interface{}, outPath interface{}, format interface{}) *MockPredictionSession_DownloadHypnogram_Call {
	return &MockPredictionSession_DownloadHypnogram_Call{Call: _e.mock.On("DownloadHypnogram", ctx, outPath, format)}
}

func (_c *MockPredictionSession_DownloadHypnogram_Call) Run(run func(ctx context.Context, outPath string, format domain.HypnogramFormat)) *MockPredictionSession_DownloadHypnogram_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(domain.HypnogramFormat))
	})
	return _c
}

func (_c *MockPredictionSession_DownloadHypnogram_Call) Return(_a0 string, _a1 error) *MockPredictionSession_DownloadHypnogram_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPredictionSession_DownloadHypnogram_Call) RunAndReturn(run func(context.Context, string, domain.HypnogramFormat) (string, error)) *MockPredictionSession_DownloadHypnogram_Call {
	_c.Call.Return(run)
	return _c
}

// GetSessionDetails provides a mock function with given fields: ctx
func (_m *MockPredictionSession) GetSessionDetails(ctx context.Context) (domain.SessionDetails, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetSessionDetails")
	}

	var r0 domain.SessionDetails
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (domain.SessionDetails, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) domain.SessionDetails); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(domain.SessionDetails)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPredictionSession_GetSessionDetails_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetSessionDetails'
type MockPredictionSession_GetSessionDetails_Call struct {
	*mock.Call
}

// GetSessionDetails is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockPredictionSession_Expecter) GetSessionDetails(ctx interface{}) *MockPredictionSession_GetSessionDetails_Call {
	return &MockPredictionSession_GetSessionDetails_Call{Call: _e.mock.On("GetSessionDetails", ctx)}
}

func (_c *MockPredictionSession_GetSessionDetails_Call) Run(run func(ctx context.Context)) *MockPredictionSession_GetSessionDetails_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockPredictionSession_GetSessionDetails_Call) Return(_a0 domain.SessionDetails, _a1 error) *MockPredictionSession_GetSessionDetails_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPredictionSession_GetSessionDetails_Call) RunAndReturn(run func(context.Context) (domain.SessionDetails, error)) *MockPredictionSession_GetSessionDetails_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteSession provides a mock function with given fields: ctx
func (_m *MockPredictionSession) DeleteSession(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for DeleteSession")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPredictionSession_DeleteSession_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteSession'
type MockPredictionSession_DeleteSession_Call struct {
	*mock.Call
}

// DeleteSession is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockPredictionSession_Expecter) DeleteSession(ctx interface{}) *MockPredictionSession_DeleteSession_Call {
	return &MockPredictionSession_DeleteSession_Call{Call: _e.mock.On("DeleteSession", ctx)}
}

func (_c *MockPredictionSession_DeleteSession_Call) Run(run func(ctx context.Context)) *MockPredictionSession_DeleteSession_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockPredictionSession_DeleteSession_Call) Return(_a0 error) *MockPredictionSession_DeleteSession_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPredictionSession_DeleteSession_Call) RunAndReturn(run func(context.Context) error) *MockPredictionSession_DeleteSession_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockPredictionSession creates a new instance of MockPredictionSession. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockPredictionSession(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPredictionSession {
	m := &MockPredictionSession{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
