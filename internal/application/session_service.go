package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

// SessionService manages server-side sessions outside of a scoring run.
type SessionService struct {
	opener  ports.SessionOpener
	ledger  ports.SessionLedger
	logger  zerolog.Logger
	baseURL string
}

func NewSessionService(opener ports.SessionOpener, ledger ports.SessionLedger, baseURL string, logger zerolog.Logger) *SessionService {
	return &SessionService{
		opener:  opener,
		ledger:  ledger,
		logger:  logger,
		baseURL: baseURL,
	}
}

func (s *SessionService) List(ctx context.Context) ([]domain.SessionName, error) {
	names, err := s.opener.GetSessionNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return names, nil
}

func (s *SessionService) Show(ctx context.Context, name domain.SessionName) (domain.SessionDetails, error) {
	return s.opener.OpenSession(name).GetSessionDetails(ctx)
}

func (s *SessionService) Delete(ctx context.Context, name domain.SessionName) error {
	if err := s.opener.OpenSession(name).DeleteSession(ctx); err != nil {
		return err
	}
	s.forget(ctx, name)
	return nil
}

// DeleteAll deletes every session visible to the token and returns the names
// it removed. Failures do not stop the sweep; they are joined.
func (s *SessionService) DeleteAll(ctx context.Context) ([]domain.SessionName, error) {
	deleted, err := s.opener.DeleteAllSessions(ctx)
	for _, name := range deleted {
		s.forget(ctx, name)
	}
	return deleted, err
}

// CleanupOrphans deletes sessions recorded in the ledger by runs that died
// before tearing them down. Entries for other endpoints are left alone;
// sessions the server no longer knows are dropped from the ledger.
func (s *SessionService) CleanupOrphans(ctx context.Context) (CleanupReport, error) {
	var report CleanupReport
	if s.ledger == nil {
		return report, nil
	}

	entries, err := s.ledger.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list session ledger: %w", err)
	}

	var errs error
	for _, entry := range entries {
		if entry.BaseURL != "" && entry.BaseURL != s.baseURL {
			report.Skipped = append(report.Skipped, entry.Name)
			continue
		}

		err := s.opener.OpenSession(entry.Name).DeleteSession(ctx)
		switch {
		case err == nil:
			report.Deleted = append(report.Deleted, entry.Name)
		case isMissingSession(err):
			report.Missing = append(report.Missing, entry.Name)
		default:
			errs = errors.Join(errs, err)
			continue
		}

		s.forget(ctx, entry.Name)
	}

	s.logger.Info().
		Int("deleted", len(report.Deleted)).
		Int("missing", len(report.Missing)).
		Int("skipped", len(report.Skipped)).
		Msg("orphan cleanup finished")

	return report, errs
}

func (s *SessionService) forget(ctx context.Context, name domain.SessionName) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Remove(ctx, name); err != nil {
		s.logger.Warn().Err(err).Str("session", string(name)).Msg("could not remove session from ledger")
	}
}

func isMissingSession(err error) bool {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return true
	}

	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return true
	}
	var decodeErr *domain.DecodeError
	return errors.As(err, &decodeErr) && decodeErr.StatusCode == http.StatusNotFound
}
