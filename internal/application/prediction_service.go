package application

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

const logFileMode = 0o644

// PredictionService runs whole scoring jobs against one API endpoint.
type PredictionService struct {
	opener  ports.SessionOpener
	ledger  ports.SessionLedger
	clock   ports.Clock
	logger  zerolog.Logger
	baseURL string

	newName func() (domain.SessionName, error)
}

// NewPredictionService wires the service. A nil ledger disables orphan
// tracking and a nil clock uses the system clock.
func NewPredictionService(opener ports.SessionOpener, ledger ports.SessionLedger, clock ports.Clock, baseURL string, logger zerolog.Logger) *PredictionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &PredictionService{
		opener:  opener,
		ledger:  ledger,
		clock:   clock,
		logger:  logger,
		baseURL: baseURL,
		newName: NewSessionName,
	}
}

// QuickPredict uploads a recording to a fresh session, scores it and tears the
// session down again. A job the server did not complete yields a nil
// Hypnogram and no error.
func (s *PredictionService) QuickPredict(ctx context.Context, cmd QuickPredictCommand) (QuickPredictResult, error) {
	if cmd.DataPerPrediction <= 0 {
		return QuickPredictResult{}, fmt.Errorf("%w: got %d", domain.ErrInvalidDataPerPrediction, cmd.DataPerPrediction)
	}

	format := cmd.Format
	if format == "" && cmd.OutputPath != "" {
		derived, err := domain.FormatForPath(cmd.OutputPath)
		if err != nil {
			return QuickPredictResult{}, err
		}
		format = derived
	}
	if cmd.Model == "" {
		cmd.Model = DefaultModel
	}

	name, err := s.newName()
	if err != nil {
		return QuickPredictResult{}, err
	}

	result := QuickPredictResult{SessionName: name}
	err = s.withSession(ctx, name, cmd.InputPath, func(session ports.PredictionSession) error {
		return s.predict(ctx, session, cmd, format, &result)
	})

	return result, err
}

func (s *PredictionService) predict(ctx context.Context, session ports.PredictionSession, cmd QuickPredictCommand, format domain.HypnogramFormat, result *QuickPredictResult) error {
	logger := s.logger.With().Str("session", string(session.Name())).Logger()

	if err := session.SetModel(ctx, cmd.Model); err != nil {
		return err
	}
	if err := session.UploadFile(ctx, cmd.InputPath, cmd.Anonymize); err != nil {
		return err
	}

	info, err := session.GetFileInfo(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Str("file", info.FileName).
		Strs("channels", info.Channels).
		Strs("channel_types", info.ChannelTypes).
		Float64("sample_rate", info.SampleRate).
		Float64("duration_sec", info.DurationSec).
		Msg("file uploaded")

	groups, err := session.Predict(ctx, cmd.DataPerPrediction, cmd.ChannelGroups)
	if err != nil {
		return err
	}
	result.ChannelGroups = groups

	stream, streamErr := session.StreamPredictionLog(ctx, ports.StreamOptions{
		Output:   cmd.StreamOutput,
		Interval: cmd.PollInterval,
		MaxWait:  cmd.MaxWait,
	})
	result.Log = stream.Log
	result.Status = stream.Status
	result.Completed = stream.Completed
	if streamErr != nil {
		return errors.Join(streamErr, s.writeLog(cmd.LogPath, stream.Log))
	}

	if stream.Completed {
		hypnogram, err := session.GetHypnogram(ctx)
		if err != nil {
			return errors.Join(err, s.writeLog(cmd.LogPath, stream.Log))
		}
		result.Hypnogram = &hypnogram

		if cmd.OutputPath != "" {
			written, err := session.DownloadHypnogram(ctx, cmd.OutputPath, format)
			if err != nil {
				return errors.Join(err, s.writeLog(cmd.LogPath, stream.Log))
			}
			result.OutputPath = written
		}
	} else {
		logger.Warn().
			Str("status", stream.Status.Label).
			Str("message", stream.Status.Message).
			Msg("prediction did not complete, no hypnogram available")
	}

	return s.writeLog(cmd.LogPath, stream.Log)
}

func (s *PredictionService) writeLog(path, log string) error {
	if path == "" {
		return nil
	}

	s.logger.Info().Str("path", path).Msg("saving prediction log")
	if err := os.WriteFile(path, []byte(log), logFileMode); err != nil {
		return fmt.Errorf("write prediction log: %w", err)
	}
	return nil
}

// withSession runs body against a fresh session and deletes that session
// exactly once afterwards, even when body fails or ctx is cancelled. A
// delete failure is reported only when body succeeded.
func (s *PredictionService) withSession(ctx context.Context, name domain.SessionName, inputPath string, body func(ports.PredictionSession) error) (err error) {
	session := s.opener.OpenSession(name)
	logger := s.logger.With().Str("session", string(name)).Logger()

	if s.ledger != nil {
		entry := domain.LedgerEntry{
			Name:      name,
			BaseURL:   s.baseURL,
			InputPath: inputPath,
			CreatedAt: s.clock.Now().UTC(),
		}
		if recordErr := s.ledger.Record(ctx, entry); recordErr != nil {
			logger.Warn().Err(recordErr).Msg("could not record session in ledger")
		}
	}

	defer func() {
		teardownCtx := context.WithoutCancel(ctx)
		if deleteErr := session.DeleteSession(teardownCtx); deleteErr != nil {
			logger.Error().Err(deleteErr).Msg("could not delete session")
			if err == nil {
				err = deleteErr
			}
			return
		}

		if s.ledger != nil {
			if removeErr := s.ledger.Remove(teardownCtx, name); removeErr != nil {
				logger.Warn().Err(removeErr).Msg("could not remove session from ledger")
			}
		}
	}()

	return body(session)
}
