package hypnogram

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/usleep/usleep-cli/internal/domain"
)

const (
	barWidth = 24

	// DefaultEpoch is one prediction per 30 s, the scoring convention.
	DefaultEpoch = 30 * time.Second
)

var canonicalStages = []string{"W", "N1", "N2", "N3", "REM"}

type Summary struct {
	SessionName domain.SessionName
	Hypnogram   domain.Hypnogram
	// Epoch is the duration of one label; zero means DefaultEpoch.
	Epoch  time.Duration
	Status domain.PredictionStatus
}

func (s Summary) epoch() time.Duration {
	if s.Epoch <= 0 {
		return DefaultEpoch
	}
	return s.Epoch
}

// StageOrder lists the canonical stages first, then any other labels in the
// order they were first seen.
func StageOrder(h domain.Hypnogram) ([]string, map[string]int) {
	seen, counts := h.StageCounts()

	order := make([]string, 0, len(seen))
	for _, stage := range canonicalStages {
		if counts[stage] > 0 {
			order = append(order, stage)
		}
	}
	for _, stage := range seen {
		if !slices.Contains(canonicalStages, stage) {
			order = append(order, stage)
		}
	}
	return order, counts
}

// SleepEfficiency is the share of non-wake epochs, in percent.
func SleepEfficiency(h domain.Hypnogram) float64 {
	if len(h.Labels) == 0 {
		return 0
	}
	_, counts := h.StageCounts()
	return 100 * float64(len(h.Labels)-counts["W"]) / float64(len(h.Labels))
}

func renderView(summary Summary, s styles) string {
	labels := summary.Hypnogram.Labels
	epoch := summary.epoch()

	lines := []string{s.title.Render("Hypnogram")}
	if summary.SessionName != "" {
		lines = append(lines, s.header.Render(fmt.Sprintf("session: %s", summary.SessionName)))
	}
	lines = append(lines, s.header.Render(fmt.Sprintf(
		"epochs: %d x %s = %s",
		len(labels),
		epoch,
		formatDuration(time.Duration(len(labels))*epoch),
	)))

	if len(labels) == 0 {
		lines = append(lines, s.empty.Render("No epochs scored."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	order, counts := StageOrder(summary.Hypnogram)
	stageLines := make([]string, 0, len(order))
	for _, stage := range order {
		stageLines = append(stageLines, stageLine(stage, counts[stage], len(labels), epoch, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, stageLines...)))

	sleepEpochs := len(labels) - counts["W"]
	lines = append(lines, s.section.Render(s.detail.Render(fmt.Sprintf(
		"total sleep: %s  efficiency: %.1f%%",
		formatDuration(time.Duration(sleepEpochs)*epoch),
		SleepEfficiency(summary.Hypnogram),
	))))

	if label := summary.Status.Label; label != "" && !summary.Status.Completed() {
		lines = append(lines, s.warning.Render(fmt.Sprintf("[%s]", strings.ToLower(label))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func stageLine(stage string, count, total int, epoch time.Duration, s styles) string {
	percent := 100 * float64(count) / float64(total)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.stage.Render(stage),
		" ",
		renderBar(stage, percent, s),
		" ",
		s.detail.Render(fmt.Sprintf("%5.1f%%  %4d epochs  %s", percent, count, formatDuration(time.Duration(count)*epoch))),
	)
}

func renderBar(stage string, percent float64, s styles) string {
	filled := int(math.Round(barWidth * percent / 100))
	filled = min(max(filled, 0), barWidth)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.fill(stage).Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", barWidth-filled)),
		s.barBracket.Render("]"),
	)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
