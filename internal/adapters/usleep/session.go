package usleep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/usleep/usleep-cli/internal/adapters/edf"
	"github.com/usleep/usleep-cli/internal/adapters/httpapi"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

const (
	DefaultPollInterval = 2 * time.Second

	uploadField = "PSG"
	fileMode    = 0o644
)

// Session is a handle on one server-side analysis session. It is not safe
// for concurrent use.
type Session struct {
	name      domain.SessionName
	client    *Client
	transport *httpapi.Transport
	logger    zerolog.Logger
	sleep     func(ctx context.Context, d time.Duration) error
	now       func() time.Time
}

var _ ports.PredictionSession = (*Session)(nil)

type predictRequest struct {
	DataPerPrediction int                        `json:"data_per_prediction"`
	Channels          []domain.ChannelAssignment `json:"channels"`
}

type logChunk struct {
	Lines    string `json:"lines"`
	Finished bool   `json:"finished"`
}

func (s *Session) Name() domain.SessionName {
	return s.name
}

func (s *Session) GetModelNames(ctx context.Context) ([]string, error) {
	return s.client.GetModelNames(ctx)
}

// SetModel selects the scoring model. The name is checked against the
// server's model list first; an unknown name fails without a POST.
func (s *Session) SetModel(ctx context.Context, model string) error {
	s.logger.Info().Str("model", model).Msg("setting model")

	names, err := s.GetModelNames(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(names, model) {
		err := fmt.Errorf("%w %q, must be one of %q", domain.ErrInvalidModel, model, names)
		s.logger.Error().Err(err).Msg("model rejected")
		return err
	}

	resp, err := s.transport.PostJSON(ctx, s.path("set_model"), map[string]string{"model": model})
	if err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	if err := httpapi.CheckStatus(resp); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	return nil
}

func (s *Session) GetFileInfo(ctx context.Context) (domain.FileInfo, error) {
	var info domain.FileInfo
	if err := s.transport.GetJSON(ctx, s.path("file"), &info); err != nil {
		return domain.FileInfo{}, fmt.Errorf("get file info: %w", err)
	}
	return info, nil
}

// UploadFile streams the recording at path to the session, replacing any
// previous upload. With anonymize set, an anonymized temporary copy is sent
// instead and removed afterwards.
func (s *Session) UploadFile(ctx context.Context, path string, anonymize bool) error {
	var (
		reader io.Reader
		closer io.Closer
	)
	if anonymize {
		anon, err := edf.Anonymize(path, s.logger)
		if err != nil {
			return uploadOpenError(err)
		}
		reader, closer = anon, anon
	} else {
		f, err := os.Open(path)
		if err != nil {
			return uploadOpenError(err)
		}
		reader, closer = f, f
	}
	defer func() { _ = closer.Close() }()

	s.logger.Info().Str("path", path).Bool("anonymized", anonymize).Msg("uploading file, please wait")

	resp, err := s.transport.UploadFile(ctx, s.path("file"), httpapi.Upload{
		Field:    uploadField,
		FileName: filepath.Base(path),
		Reader:   reader,
	})
	if err != nil {
		return fmt.Errorf("upload file: %w", err)
	}
	if err := httpapi.CheckStatus(resp); err != nil {
		return fmt.Errorf("upload file: %w", err)
	}
	return nil
}

func uploadOpenError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("upload file: %w: %w", domain.ErrInputNotFound, err)
	}
	return fmt.Errorf("upload file: %w", err)
}

func (s *Session) DeleteFile(ctx context.Context) error {
	resp, err := s.transport.Delete(ctx, s.path("file"))
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if err := httpapi.CheckStatus(resp); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *Session) GetConfigurationOptions(ctx context.Context) (domain.ConfigurationOptions, error) {
	s.logger.Debug().Msg("getting configuration options")

	var opts domain.ConfigurationOptions
	if err := s.transport.GetJSON(ctx, s.path("configuration_options"), &opts); err != nil {
		return domain.ConfigurationOptions{}, fmt.Errorf("get configuration options: %w", err)
	}
	return opts, nil
}

func (s *Session) GetStatus(ctx context.Context) (domain.PredictionStatus, error) {
	var status domain.PredictionStatus
	if err := s.transport.GetJSON(ctx, s.path("prediction_status"), &status); err != nil {
		return domain.PredictionStatus{}, fmt.Errorf("get prediction status: %w", err)
	}
	return status, nil
}

func (s *Session) GetHypnogram(ctx context.Context) (domain.Hypnogram, error) {
	var hypnogram domain.Hypnogram
	if err := s.transport.GetJSON(ctx, s.path("hypnogram"), &hypnogram); err != nil {
		return domain.Hypnogram{}, fmt.Errorf("get hypnogram: %w", err)
	}
	return hypnogram, nil
}

// DownloadHypnogram saves the hypnogram file variant next to outPath, with
// the extension replaced by the format's. It returns the written path.
func (s *Session) DownloadHypnogram(ctx context.Context, outPath string, format domain.HypnogramFormat) (string, error) {
	format, err := domain.ParseHypnogramFormat(string(format))
	if err != nil {
		return "", err
	}

	resp, err := s.transport.Do(ctx, httpapi.Request{
		Method: http.MethodGet,
		Path:   s.path("download/hypnogram_" + string(format)),
		Quiet:  true,
	})
	if err != nil {
		return "", fmt.Errorf("download hypnogram: %w", err)
	}
	if err := httpapi.CheckStatus(resp); err != nil {
		return "", fmt.Errorf("download hypnogram: %w", err)
	}

	target := format.OutputPath(outPath)
	s.logger.Info().Str("path", target).Msg("saving hypnogram")
	if err := os.WriteFile(target, resp.Body, fileMode); err != nil {
		return "", fmt.Errorf("write hypnogram file: %w", err)
	}

	return target, nil
}

func (s *Session) GetPredictionLog(ctx context.Context) (string, error) {
	var payload struct {
		Log string `json:"log"`
	}
	if err := s.transport.GetJSON(ctx, s.path("prediction_log"), &payload); err != nil {
		return "", fmt.Errorf("get prediction log: %w", err)
	}
	return normalizeLines(payload.Log), nil
}

// InferChannelGroups combines the uploaded file's typed channels into groups
// matching the model's required channel types, bounded by the server maximum.
func (s *Session) InferChannelGroups(ctx context.Context) (domain.ChannelGroups, error) {
	info, err := s.GetFileInfo(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := s.GetConfigurationOptions(ctx)
	if err != nil {
		return nil, err
	}
	maxGroups, err := s.maxChannelGroups(ctx)
	if err != nil {
		return nil, err
	}

	groups := domain.InferChannelGroups(info.Channels, info.ChannelTypes, opts.RequiredChannelTypes, maxGroups)
	s.logger.Info().
		Int("groups", len(groups)).
		Int("max_groups", maxGroups).
		Strs("required_types", opts.RequiredChannelTypes).
		Msg("inferred channel groups")

	return groups, nil
}

func (s *Session) maxChannelGroups(ctx context.Context) (int, error) {
	raw, err := s.client.GetConfigVariable(ctx, MaxChannelGroupsVariable)
	if err != nil {
		return 0, err
	}

	// null leaves value at zero
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("decode %s: %w", MaxChannelGroupsVariable, err)
	}
	return value, nil
}

// Predict submits a prediction job and returns without waiting for it. Nil
// groups are inferred from the uploaded file.
func (s *Session) Predict(ctx context.Context, dataPerPrediction int, groups domain.ChannelGroups) (domain.ChannelGroups, error) {
	if dataPerPrediction <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidDataPerPrediction, dataPerPrediction)
	}

	if groups == nil {
		inferred, err := s.InferChannelGroups(ctx)
		if err != nil {
			return nil, fmt.Errorf("infer channel groups: %w", err)
		}
		if len(inferred) == 0 {
			s.logger.Warn().Msg("could not infer any channel groups from the uploaded file")
		}
		groups = inferred
	}

	s.logger.Info().
		Int("data_per_prediction", dataPerPrediction).
		Str("channel_groups", groups.String()).
		Msg("submitting prediction")

	resp, err := s.transport.PostJSON(ctx, s.path("predict"), predictRequest{
		DataPerPrediction: dataPerPrediction,
		Channels:          groups.Assignments(),
	})
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if err := httpapi.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	return groups, nil
}

// StreamPredictionLog polls the incremental log until the server reports the
// job finished, then reads the job status. The first poll is immediate and
// later polls wait opts.Interval. On error the partial result is returned.
func (s *Session) StreamPredictionLog(ctx context.Context, opts ports.StreamOptions) (domain.StreamResult, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var deadline time.Time
	if opts.MaxWait > 0 {
		deadline = s.now().Add(opts.MaxWait)
	}

	result := domain.StreamResult{State: domain.StreamPending}
	var log strings.Builder

	for result.State != domain.StreamDone {
		if result.State == domain.StreamPolling {
			if opts.MaxPolls > 0 && result.Polls >= opts.MaxPolls {
				result.Log = log.String()
				return result, fmt.Errorf("%w: job still running after %d polls", domain.ErrTimeout, result.Polls)
			}
			if !deadline.IsZero() && s.now().Add(interval).After(deadline) {
				result.Log = log.String()
				return result, fmt.Errorf("%w: job still running after %s", domain.ErrTimeout, opts.MaxWait)
			}
			if err := s.sleep(ctx, interval); err != nil {
				result.Log = log.String()
				return result, err
			}
		}

		chunk, err := s.pollLog(ctx)
		result.Polls++
		if err != nil {
			result.Log = log.String()
			return result, err
		}
		result.State = domain.StreamPolling

		if chunk.Lines != "" {
			log.WriteString(chunk.Lines)
			if opts.Output != nil {
				writeChunk(opts.Output, chunk.Lines)
			}
		}
		if chunk.Finished {
			result.State = domain.StreamDone
		}
	}

	result.Log = log.String()
	s.logger.Debug().Int("polls", result.Polls).Msg("prediction log finished")

	status, err := s.GetStatus(ctx)
	if err != nil {
		return result, err
	}
	result.Status = status
	result.Completed = status.Completed()

	return result, nil
}

func (s *Session) pollLog(ctx context.Context) (logChunk, error) {
	resp, err := s.transport.Do(ctx, httpapi.Request{
		Method: http.MethodGet,
		Path:   s.path("prediction_log_stream"),
		Quiet:  true,
	})
	if err != nil {
		return logChunk{}, fmt.Errorf("poll prediction log: %w", err)
	}
	if !resp.OK() {
		return logChunk{}, &domain.StreamError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	var chunk logChunk
	if err := httpapi.DecodeJSON(resp, &chunk); err != nil {
		return logChunk{}, fmt.Errorf("poll prediction log: %w", err)
	}
	chunk.Lines = normalizeLines(chunk.Lines)
	return chunk, nil
}

func writeChunk(w io.Writer, lines string) {
	_, _ = io.WriteString(w, lines)
	if !strings.HasSuffix(lines, "\n") {
		_, _ = io.WriteString(w, "\n")
	}
}

// normalizeLines converts the HTML line breaks the server embeds in log text.
func normalizeLines(text string) string {
	return strings.ReplaceAll(text, "<br>", "\n")
}

func (s *Session) GetSessionDetails(ctx context.Context) (domain.SessionDetails, error) {
	var details domain.SessionDetails
	err := s.transport.GetJSON(ctx, s.path(""), &details)
	if err != nil {
		var decodeErr *domain.DecodeError
		var statusErr *domain.StatusError
		if errors.As(err, &decodeErr) || (errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound) {
			return domain.SessionDetails{}, fmt.Errorf("get session %s: %w: %w", s.name, domain.ErrSessionNotFound, err)
		}
		return domain.SessionDetails{}, fmt.Errorf("get session %s: %w", s.name, err)
	}
	if details.Name == "" {
		details.Name = string(s.name)
	}
	return details, nil
}

func (s *Session) GetSessionNames(ctx context.Context) ([]domain.SessionName, error) {
	return s.client.GetSessionNames(ctx)
}

func (s *Session) DeleteSession(ctx context.Context) error {
	s.logger.Info().Msg("deleting session")

	resp, err := s.transport.Delete(ctx, s.path(""))
	if err != nil {
		return fmt.Errorf("delete session %s: %w", s.name, err)
	}
	if err := httpapi.CheckStatus(resp); err != nil {
		return fmt.Errorf("delete session %s: %w", s.name, err)
	}
	return nil
}

func (s *Session) path(resource string) string {
	base := "sessions/" + url.PathEscape(string(s.name))
	if resource == "" {
		return apiPath(base)
	}
	return apiPath(base + "/" + resource)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
