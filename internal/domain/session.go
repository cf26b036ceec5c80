package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SessionName identifies a server-side analysis session.
type SessionName string

// FileInfo is the server's parsed view of the uploaded recording.
type FileInfo struct {
	FileName     string   `json:"file_name"`
	Channels     []string `json:"channels"`
	ChannelTypes []string `json:"channel_types"`
	SampleRate   float64  `json:"sample_rate"`
	DurationSec  float64  `json:"duration_sec"`
}

// ConfigurationOptions describes what the selected model needs as input.
type ConfigurationOptions struct {
	Model                  string   `json:"model"`
	RequiredChannelTypes   []string `json:"required_channel_types"`
	InputSampleRate        int      `json:"input_sample_rate"`
	DataPerPredictionHints []int    `json:"data_per_prediction_options"`
}

type SessionDetails struct {
	Name             string `json:"session_name"`
	Model            string `json:"model"`
	FileName         string `json:"file_name"`
	PredictionStatus string `json:"prediction_status"`
}

type JobState string

const (
	JobNotStarted JobState = "not started"
	JobRunning    JobState = "running"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

type PredictionStatus struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (s PredictionStatus) State() JobState {
	switch strings.ToLower(strings.TrimSpace(s.Label)) {
	case "completed":
		return JobCompleted
	case "failed", "error":
		return JobFailed
	case "", "idle", "not started":
		return JobNotStarted
	default:
		return JobRunning
	}
}

func (s PredictionStatus) Completed() bool {
	return strings.EqualFold(s.Label, string(JobCompleted))
}

type Hypnogram struct {
	Labels []string `json:"hypnogram"`
}

// StageCounts counts the epochs per stage, keeping first-seen order.
func (h Hypnogram) StageCounts() ([]string, map[string]int) {
	order := make([]string, 0, 6)
	counts := make(map[string]int, 6)
	for _, label := range h.Labels {
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	return order, counts
}

type HypnogramFormat string

const (
	HypnogramTSV HypnogramFormat = "tsv"
	HypnogramTXT HypnogramFormat = "txt"
	HypnogramHYP HypnogramFormat = "hyp"
	HypnogramNPY HypnogramFormat = "npy"
)

func ParseHypnogramFormat(raw string) (HypnogramFormat, error) {
	format := HypnogramFormat(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), ".")))
	switch format {
	case HypnogramTSV, HypnogramTXT, HypnogramHYP, HypnogramNPY:
		return format, nil
	default:
		return "", fmt.Errorf("%w: hypnogram format %q", ErrUnsupportedFormat, raw)
	}
}

// FormatForPath picks the download format from the output extension,
// defaulting to tsv when the path has none.
func FormatForPath(path string) (HypnogramFormat, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return HypnogramTSV, nil
	}
	return ParseHypnogramFormat(ext)
}

// OutputPath replaces the extension of path with the format's extension.
func (f HypnogramFormat) OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(f)
}

type StreamState string

const (
	StreamPending StreamState = "pending"
	StreamPolling StreamState = "polling"
	StreamDone    StreamState = "done"
)

// StreamResult is the outcome of following a prediction log to the end.
type StreamResult struct {
	Log       string
	Polls     int
	State     StreamState
	Status    PredictionStatus
	Completed bool
}

// LedgerEntry records a session opened by this machine so it can be torn down
// if the process dies before deleting it.
type LedgerEntry struct {
	Name      SessionName
	BaseURL   string
	InputPath string
	CreatedAt time.Time
}
