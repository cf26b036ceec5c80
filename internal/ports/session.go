package ports

import (
	"context"
	"io"
	"time"

	"github.com/usleep/usleep-cli/internal/domain"
)

// StreamOptions controls the prediction log polling loop.
type StreamOptions struct {
	// Output receives log chunks as they arrive; nil keeps the stream silent.
	Output   io.Writer
	Interval time.Duration
	// MaxWait and MaxPolls bound the loop; zero means wait until the server
	// reports the job finished.
	MaxWait  time.Duration
	MaxPolls int
}

type PredictionSession interface {
	Name() domain.SessionName
	SetModel(ctx context.Context, model string) error
	UploadFile(ctx context.Context, path string, anonymize bool) error
	GetFileInfo(ctx context.Context) (domain.FileInfo, error)
	Predict(ctx context.Context, dataPerPrediction int, groups domain.ChannelGroups) (domain.ChannelGroups, error)
	StreamPredictionLog(ctx context.Context, opts StreamOptions) (domain.StreamResult, error)
	GetHypnogram(ctx context.Context) (domain.Hypnogram, error)
	DownloadHypnogram(ctx context.Context, outPath string, format domain.HypnogramFormat) (string, error)
	GetSessionDetails(ctx context.Context) (domain.SessionDetails, error)
	DeleteSession(ctx context.Context) error
}

type SessionOpener interface {
	OpenSession(name domain.SessionName) PredictionSession
	GetSessionNames(ctx context.Context) ([]domain.SessionName, error)
	// DeleteAllSessions deletes every session visible to the token. It keeps
	// going past failures and returns the names it removed.
	DeleteAllSessions(ctx context.Context) ([]domain.SessionName, error)
}

type SessionLedger interface {
	Record(ctx context.Context, entry domain.LedgerEntry) error
	Remove(ctx context.Context, name domain.SessionName) error
	List(ctx context.Context) ([]domain.LedgerEntry, error)
}
