package application

import (
	"io"
	"time"

	"github.com/usleep/usleep-cli/internal/domain"
)

const (
	DefaultModel             = "U-Sleep v1.0"
	DefaultDataPerPrediction = 128 * 30
)

// QuickPredictCommand describes one end-to-end scoring run.
type QuickPredictCommand struct {
	InputPath string
	Model     string
	// OutputPath receives the downloaded hypnogram; empty skips the download.
	OutputPath string
	// Format overrides the format derived from OutputPath's extension.
	Format            domain.HypnogramFormat
	LogPath           string
	Anonymize         bool
	DataPerPrediction int
	// ChannelGroups nil lets the server-side file info drive inference.
	ChannelGroups domain.ChannelGroups
	// StreamOutput receives the prediction log live; nil keeps it silent.
	StreamOutput io.Writer
	PollInterval time.Duration
	MaxWait      time.Duration
}

type QuickPredictResult struct {
	SessionName   domain.SessionName
	Hypnogram     *domain.Hypnogram
	ChannelGroups domain.ChannelGroups
	Log           string
	Completed     bool
	Status        domain.PredictionStatus
	OutputPath    string
}

// CleanupReport lists what CleanupOrphans did with each ledger entry.
type CleanupReport struct {
	Deleted []domain.SessionName
	Missing []domain.SessionName
	Skipped []domain.SessionName
}
