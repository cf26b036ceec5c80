package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usleep/usleep-cli/internal/domain"
)

func newTestTransport(t *testing.T, handler http.HandlerFunc, logs *bytes.Buffer) *Transport {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	if logs != nil {
		logger = zerolog.New(logs)
	}

	return &Transport{
		BaseURL:    server.URL + "/api/v2",
		Token:      "token-abc",
		HTTPClient: server.Client(),
		Logger:     logger,
	}
}

func TestDoAttachesBearerTokenAndJoinsPath(t *testing.T) {
	t.Parallel()

	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/info/model_names", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"models":["A","B"]}`))
	}, nil)

	var payload struct {
		Models []string `json:"models"`
	}
	require.NoError(t, transport.GetJSON(context.Background(), "/info/model_names", &payload))
	assert.Equal(t, []string{"A", "B"}, payload.Models)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}, nil)
	transport.Token = ""

	resp, err := transport.Get(context.Background(), "info/ping")
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestPostJSONEncodesBody(t *testing.T) {
	t.Parallel()

	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"model":"U-Sleep v2.0"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, nil)

	resp, err := transport.PostJSON(context.Background(), "sessions/abc/set_model", map[string]string{"model": "U-Sleep v2.0"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestUploadFileStreamsMultipartPart(t *testing.T) {
	t.Parallel()

	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("PSG")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "night.edf", header.Filename)
		assert.Equal(t, "edf-bytes", string(data))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, nil)

	resp, err := transport.UploadFile(context.Background(), "sessions/abc/file", Upload{
		Field:    "PSG",
		FileName: "night.edf",
		Reader:   strings.NewReader("edf-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestDoRejectsUnsupportedMethod(t *testing.T) {
	t.Parallel()

	transport := &Transport{BaseURL: "http://127.0.0.1:1", Logger: zerolog.Nop()}
	_, err := transport.Do(context.Background(), Request{Method: http.MethodPut, Path: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestDecodeJSONClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "non json body",
			status: http.StatusNotFound,
			body:   "<html>Not Found</html>",
			check: func(t *testing.T, err error) {
				var decodeErr *domain.DecodeError
				require.True(t, errors.As(err, &decodeErr))
				assert.Equal(t, http.StatusNotFound, decodeErr.StatusCode)
				assert.Equal(t, "<html>Not Found</html>", string(decodeErr.Body))
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":"invalid token"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrAuthentication)
			},
		},
		{
			name:   "forbidden with html",
			status: http.StatusForbidden,
			body:   "denied",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrAuthentication)
			},
		},
		{
			name:   "json error status",
			status: http.StatusConflict,
			body:   `{"error":"busy"}`,
			check: func(t *testing.T, err error) {
				var statusErr *domain.StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
				assert.NotErrorIs(t, err, domain.ErrAuthentication)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeJSON(&Response{StatusCode: tt.status, Header: http.Header{}, Body: []byte(tt.body)}, &struct{}{})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDoWrapsConnectionErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	transport := &Transport{BaseURL: baseURL, Logger: zerolog.Nop()}
	_, err := transport.Get(context.Background(), "info/ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport: GET info/ping")

	var decodeErr *domain.DecodeError
	assert.False(t, errors.As(err, &decodeErr))
	assert.NotErrorIs(t, err, domain.ErrAuthentication)
}

func TestDoLogsSuccessAtInfoAndFailureAtError(t *testing.T) {
	t.Parallel()

	logs := &bytes.Buffer{}
	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("internal error"))
			return
		}
		_, _ = w.Write([]byte(`{"lines":"` + strings.Repeat("x", 200) + `"}`))
	}, logs)

	_, err := transport.Get(context.Background(), "ok")
	require.NoError(t, err)
	_, err = transport.Get(context.Background(), "fail")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"info"`)
	assert.Contains(t, lines[0], "[JSON data]")
	assert.Contains(t, lines[0], " ...")
	assert.NotContains(t, lines[0], strings.Repeat("x", 100))
	assert.Contains(t, lines[1], `"level":"error"`)
	assert.Contains(t, lines[1], "internal error")
}

func TestQuietRequestSkipsSuccessLog(t *testing.T) {
	t.Parallel()

	logs := &bytes.Buffer{}
	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, logs)

	_, err := transport.Do(context.Background(), Request{Method: http.MethodGet, Path: "poll", Quiet: true})
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}

func TestDoAppliesDefaultRequestTimeout(t *testing.T) {
	t.Parallel()

	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}, nil)
	transport.RequestTimeout = 20 * time.Millisecond

	_, err := transport.Get(context.Background(), "slow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport")
}
