package usleep

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usleep/usleep-cli/internal/adapters/usleep/usleeptest"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

func writeRecording(t *testing.T, name string) (string, []byte) {
	t.Helper()

	data := []byte("0       " + strings.Repeat("P", 80) + strings.Repeat("R", 80) + "16.10.2602.30.00")
	data = append(data, bytes.Repeat([]byte{0x7f}, 512-len(data))...)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path, data
}

func TestSetModelRejectsUnknownModelWithoutPost(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")

	err := session.SetModel(context.Background(), "U-Sleep v9.9")

	require.ErrorIs(t, err, domain.ErrInvalidModel)
	assert.Contains(t, err.Error(), "U-Sleep v1.0")
	assert.Zero(t, srv.Count(http.MethodPost, "set_model"))
}

func TestSetModelPostsKnownModel(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	ctx := context.Background()

	require.NoError(t, session.SetModel(ctx, "U-Sleep v2.0"))

	assert.Equal(t, 1, srv.Count(http.MethodPost, "sessions/s1/set_model"))
	details, err := session.GetSessionDetails(ctx)
	require.NoError(t, err)
	assert.Equal(t, "U-Sleep v2.0", details.Model)
	assert.Equal(t, "s1", details.Name)
}

func TestUploadFileSendsRecordingBytes(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	path, data := writeRecording(t, "night.edf")

	require.NoError(t, session.UploadFile(context.Background(), path, false))

	assert.Equal(t, data, srv.Uploaded("s1"))
}

func TestUploadFileAnonymizesCopy(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	path, data := writeRecording(t, "night.edf")

	require.NoError(t, session.UploadFile(context.Background(), path, true))

	uploaded := srv.Uploaded("s1")
	require.Len(t, uploaded, len(data))
	assert.Equal(t, "X X X X_X", strings.TrimRight(string(uploaded[8:88]), " "))
	assert.Equal(t, "01.01.70", string(uploaded[168:176]))
	assert.Equal(t, "00.00.00", string(uploaded[176:184]))
	assert.Equal(t, data[256:], uploaded[256:])

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
}

func TestUploadFileMissingInput(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	missing := filepath.Join(t.TempDir(), "missing.edf")

	for _, anonymize := range []bool{false, true} {
		err := session.UploadFile(context.Background(), missing, anonymize)
		require.ErrorIs(t, err, domain.ErrInputNotFound)
	}
	assert.Zero(t, srv.Count(http.MethodPost, "file"))
}

func TestUploadFileAnonymizeRejectsNonEDF(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	path, _ := writeRecording(t, "night.bdf")

	err := session.UploadFile(context.Background(), path, true)

	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Zero(t, srv.Count(http.MethodPost, "file"))
}

func TestUploadFileServerRejection(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) {
		cfg.UploadFailure = &usleeptest.Failure{Status: http.StatusRequestEntityTooLarge, Body: "too large"}
	})
	session, _ := newTestSession(t, srv, "s1")
	path, _ := writeRecording(t, "night.edf")

	err := session.UploadFile(context.Background(), path, false)

	var statusErr *domain.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusErr.StatusCode)
}

func TestPredictRejectsNonPositiveDataPerPrediction(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")

	for _, dpp := range []int{0, -30} {
		_, err := session.Predict(context.Background(), dpp, nil)
		require.ErrorIs(t, err, domain.ErrInvalidDataPerPrediction)
	}
	assert.Empty(t, srv.Requests()[1:])
}

func TestPredictInfersChannelGroups(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	ctx := context.Background()
	path, _ := writeRecording(t, "night.edf")
	require.NoError(t, session.UploadFile(ctx, path, false))

	groups, err := session.Predict(ctx, 3840, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.ChannelGroups{{"C3-M2", "E1-M2"}, {"C4-M1", "E1-M2"}}, groups)
	assert.JSONEq(t, `{
		"data_per_prediction": 3840,
		"channels": [
			{"channel": "C3-M2", "group_index": 0},
			{"channel": "E1-M2", "group_index": 0},
			{"channel": "C4-M1", "group_index": 1},
			{"channel": "E1-M2", "group_index": 1}
		]
	}`, string(srv.PredictBody("s1")))
	assert.Equal(t, 1, srv.Count(http.MethodGet, "info/config/max_channel_groups"))
}

func TestPredictInferenceHonoursServerMaximum(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) { cfg.MaxChannelGroups = 1 })
	session, _ := newTestSession(t, srv, "s1")
	ctx := context.Background()
	path, _ := writeRecording(t, "night.edf")
	require.NoError(t, session.UploadFile(ctx, path, false))

	groups, err := session.Predict(ctx, 3840, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.ChannelGroups{{"C3-M2", "E1-M2"}}, groups)
}

func TestPredictInferenceWithZeroServerMaximumSendsNoGroups(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) { cfg.MaxChannelGroups = 0 })
	session, _ := newTestSession(t, srv, "s1")
	ctx := context.Background()
	path, _ := writeRecording(t, "night.edf")
	require.NoError(t, session.UploadFile(ctx, path, false))

	groups, err := session.Predict(ctx, 3840, nil)

	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.JSONEq(t, `{"data_per_prediction": 3840, "channels": []}`, string(srv.PredictBody("s1")))
}

func TestPredictWithExplicitGroupsSkipsInference(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	groups := domain.ChannelGroups{{"C4-M1", "E1-M2"}}

	got, err := session.Predict(context.Background(), 128, groups)

	require.NoError(t, err)
	assert.Equal(t, groups, got)
	assert.Zero(t, srv.Count(http.MethodGet, "configuration_options"))
	assert.Zero(t, srv.Count(http.MethodGet, "sessions/s1/file"))
}

func TestStreamPredictionLogAccumulatesUntilFinished(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) {
		cfg.Chunks = []usleeptest.Chunk{{Lines: "alpha"}, {Lines: ""}, {Lines: "beta", Finished: true}}
	})
	session, clock := newTestSession(t, srv, "s1")
	ctx := context.Background()
	_, err := session.Predict(ctx, 3840, domain.ChannelGroups{{"C3-M2", "E1-M2"}})
	require.NoError(t, err)

	var out bytes.Buffer
	result, err := session.StreamPredictionLog(ctx, ports.StreamOptions{Output: &out, Interval: time.Second})

	require.NoError(t, err)
	assert.Equal(t, "alphabeta", result.Log)
	assert.Equal(t, 3, result.Polls)
	assert.Equal(t, domain.StreamDone, result.State)
	assert.True(t, result.Completed)
	assert.Equal(t, "Completed", result.Status.Label)
	assert.Equal(t, "alpha\nbeta\n", out.String())
	assert.Equal(t, 3, srv.Count(http.MethodGet, "prediction_log_stream"))
	assert.Equal(t, 1, srv.Count(http.MethodGet, "prediction_status"))
	assert.Equal(t, []time.Duration{time.Second, time.Second}, clock.sleeps)
}

func TestStreamPredictionLogNormalizesLineBreaks(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) {
		cfg.Chunks = []usleeptest.Chunk{{Lines: "one<br>two<br>", Finished: true}}
	})
	session, _ := newTestSession(t, srv, "s1")

	result, err := session.StreamPredictionLog(context.Background(), ports.StreamOptions{})

	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", result.Log)
}

func TestStreamPredictionLogReportsIncompleteJob(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) { cfg.FinalStatus = "Failed" })
	session, _ := newTestSession(t, srv, "s1")

	result, err := session.StreamPredictionLog(context.Background(), ports.StreamOptions{})

	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, domain.JobFailed, result.Status.State())
}

func TestStreamPredictionLogMaxPolls(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) {
		cfg.Chunks = []usleeptest.Chunk{{Lines: "a"}, {Lines: "b"}, {Lines: "c"}, {Lines: "d"}}
	})
	session, _ := newTestSession(t, srv, "s1")

	result, err := session.StreamPredictionLog(context.Background(), ports.StreamOptions{MaxPolls: 2})

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, 2, result.Polls)
	assert.Equal(t, "ab", result.Log)
	assert.Equal(t, domain.StreamPolling, result.State)
	assert.Zero(t, srv.Count(http.MethodGet, "prediction_status"))
}

func TestStreamPredictionLogMaxWait(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) {
		cfg.Chunks = []usleeptest.Chunk{{}, {}, {}, {}, {}}
	})
	session, clock := newTestSession(t, srv, "s1")

	result, err := session.StreamPredictionLog(context.Background(), ports.StreamOptions{
		Interval: 2 * time.Second,
		MaxWait:  5 * time.Second,
	})

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, 3, result.Polls)
	assert.Len(t, clock.sleeps, 2)
}

func TestStreamPredictionLogStreamError(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) {
		cfg.Chunks = []usleeptest.Chunk{{Lines: "started"}, {Lines: "never"}}
		cfg.StreamFailure = &usleeptest.Failure{After: 1, Status: http.StatusInternalServerError, Body: "worker crashed"}
	})
	session, _ := newTestSession(t, srv, "s1")

	result, err := session.StreamPredictionLog(context.Background(), ports.StreamOptions{})

	var streamErr *domain.StreamError
	require.ErrorAs(t, err, &streamErr)
	assert.Equal(t, http.StatusInternalServerError, streamErr.StatusCode)
	assert.Contains(t, streamErr.Error(), "worker crashed")
	assert.Equal(t, "started", result.Log)
	assert.Equal(t, 2, result.Polls)
}

func TestStreamPredictionLogStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	srv.Configure(func(cfg *usleeptest.Config) {
		cfg.Chunks = []usleeptest.Chunk{{Lines: "a"}, {Lines: "b"}}
	})
	session, _ := newTestSession(t, srv, "s1")
	ctx, cancel := context.WithCancel(context.Background())
	session.sleep = func(context.Context, time.Duration) error {
		cancel()
		return ctx.Err()
	}

	result, err := session.StreamPredictionLog(ctx, ports.StreamOptions{})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.Polls)
	assert.Equal(t, "a", result.Log)
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestDownloadHypnogram(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		out    string
		format domain.HypnogramFormat
		want   string
	}{
		{name: "keeps matching extension", out: "night.tsv", format: domain.HypnogramTSV, want: "night.tsv"},
		{name: "adds missing extension", out: "night", format: domain.HypnogramTSV, want: "night.tsv"},
		{name: "replaces extension", out: "night.edf", format: domain.HypnogramNPY, want: "night.npy"},
		{name: "plain text", out: "night.txt", format: domain.HypnogramTXT, want: "night.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := usleeptest.New(t)
			session, _ := newTestSession(t, srv, "s1")
			dir := t.TempDir()

			got, err := session.DownloadHypnogram(context.Background(), filepath.Join(dir, tt.out), tt.format)

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
			data, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			assert.Equal(t, 1, srv.Count(http.MethodGet, "download/hypnogram_"+string(tt.format)))
		})
	}
}

func TestDownloadHypnogramRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")

	_, err := session.DownloadHypnogram(context.Background(), filepath.Join(t.TempDir(), "out.csv"), "csv")

	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Zero(t, srv.Count(http.MethodGet, "download/hypnogram_csv"))
}

func TestGetHypnogramAndPredictionLog(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	ctx := context.Background()
	_, err := session.Predict(ctx, 3840, domain.ChannelGroups{{"C3-M2", "E1-M2"}})
	require.NoError(t, err)

	hypnogram, err := session.GetHypnogram(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"W", "N1", "N2", "N2", "N3", "REM"}, hypnogram.Labels)

	log, err := session.GetPredictionLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Loading model\nPredicting\n", log)
}

func TestGetConfigurationOptionsIsIdempotent(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")

	first, err := session.GetConfigurationOptions(context.Background())
	require.NoError(t, err)
	second, err := session.GetConfigurationOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"EEG", "EOG"}, first.RequiredChannelTypes)
}

func TestGetSessionDetailsUnknownSession(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "ghost")

	_, err := session.GetSessionDetails(context.Background())

	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	var decodeErr *domain.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestDeleteFileRemovesUpload(t *testing.T) {
	t.Parallel()

	srv := usleeptest.New(t)
	session, _ := newTestSession(t, srv, "s1")
	ctx := context.Background()
	path, _ := writeRecording(t, "night.edf")
	require.NoError(t, session.UploadFile(ctx, path, false))

	require.NoError(t, session.DeleteFile(ctx))

	assert.Nil(t, srv.Uploaded("s1"))
	_, err := session.GetFileInfo(ctx)
	require.Error(t, err)
}
