package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/usleep/usleep-cli/internal/adapters/edf"
	hypnogramrender "github.com/usleep/usleep-cli/internal/adapters/render/hypnogram"
	"github.com/usleep/usleep-cli/internal/application"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

var outputExtensions = []string{".tsv", ".txt", ".npy"}

type predictOptions struct {
	logFilePath       string
	printHypnogram    bool
	summary           bool
	overwrite         bool
	model             string
	dataPerPrediction int
	anonymize         bool
	channelGroups     []string
	streamLog         bool
	pollInterval      time.Duration
	maxWait           time.Duration
}

// bindPredictCmd makes the root command itself run a scoring job.
func bindPredictCmd(rootCmd *cobra.Command, app *app, flags *globalFlags) {
	opts := &predictOptions{}

	rootCmd.Example = strings.Join([]string{
		"  usleep-api ./my_psg.edf ./hypnogram.tsv",
		"  usleep-api ./my_psg.edf ./hypnogram.tsv -l prediction_log.txt --print-hypnogram",
		"  usleep-api ./my_psg.edf ./hypnogram.tsv --anonymize-before-upload",
		"  usleep-api ./my_psg.edf ./hypnogram.tsv --channel-groups 'C3-A2++EOG C4-A1++EOG'",
		"  usleep-api ./my_psg.edf ./hypnogram.txt --data-per-prediction 128",
	}, "\n")
	rootCmd.Args = cobra.ExactArgs(2)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPredict(cmd, app, *flags, *opts, args[0], args[1])
	}

	f := rootCmd.Flags()
	f.StringVarP(&opts.logFilePath, "log-file-path", "l", "", "save the prediction log to this path")
	f.BoolVar(&opts.printHypnogram, "print-hypnogram", false, "print the scored hypnogram to stdout, one stage per line")
	f.BoolVar(&opts.summary, "summary", false, "print a per-stage summary of the hypnogram")
	f.BoolVar(&opts.overwrite, "overwrite-file", false, "overwrite existing output and log files")
	f.StringVar(&opts.model, "model", application.DefaultModel, "model to score with")
	f.IntVar(&opts.dataPerPrediction, "data-per-prediction", application.DefaultDataPerPrediction,
		"resampled samples per prediction; 3840 gives one stage per 30 s at 128 Hz")
	f.BoolVar(&opts.anonymize, "anonymize-before-upload", false, "upload an anonymized copy of the EDF header")
	f.StringArrayVar(&opts.channelGroups, "channel-groups", nil,
		"space-separated channel groups, quoted as one argument, such as 'C3-M2++EOG C4-M1++EOG'; "+
			"may be repeated; inferred from the file when unset")
	f.BoolVar(&opts.streamLog, "stream-log", false, "stream the server prediction log to stderr")
	f.DurationVar(&opts.pollInterval, "poll-interval", app.cfg.PollInterval, "delay between prediction log polls")
	f.DurationVar(&opts.maxWait, "max-wait", app.cfg.MaxWait, "give up waiting for the prediction after this long; 0 waits forever")
}

func runPredict(cmd *cobra.Command, app *app, flags globalFlags, opts predictOptions, inputPath, outputPath string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel)
	if err != nil {
		return err
	}

	input, output, err := validatePaths(inputPath, outputPath, opts.logFilePath, opts.overwrite)
	if err != nil {
		return err
	}
	groups, err := domain.ParseChannelGroups(splitChannelGroups(opts.channelGroups))
	if err != nil {
		return err
	}
	if opts.dataPerPrediction <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidDataPerPrediction, opts.dataPerPrediction)
	}
	if opts.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", opts.pollInterval)
	}

	logger.Info().
		Str("input", input).
		Str("output", output).
		Str("log_file", opts.logFilePath).
		Str("model", opts.model).
		Msg("starting prediction")

	client, err := app.newClient(cmd.Context(), flags, logger)
	if err != nil {
		return err
	}

	command := application.QuickPredictCommand{
		InputPath:         input,
		Model:             opts.model,
		OutputPath:        output,
		LogPath:           opts.logFilePath,
		Anonymize:         opts.anonymize,
		DataPerPrediction: opts.dataPerPrediction,
		ChannelGroups:     groups,
		PollInterval:      opts.pollInterval,
		MaxWait:           opts.maxWait,
	}
	if opts.streamLog {
		command.StreamOutput = cmd.ErrOrStderr()
	}

	svc := application.NewPredictionService(client, app.ledger, ports.SystemClock{}, client.BaseURL(), logger)
	result, err := quickPredict(cmd.Context(), svc, command, cmd.ErrOrStderr(), !opts.streamLog)
	if err != nil {
		return err
	}
	if !result.Completed {
		return fmt.Errorf("prediction in session %s did not complete: job %s: %s %s",
			result.SessionName, result.Status.State(), result.Status.Label, result.Status.Message)
	}

	logger.Info().
		Str("output", result.OutputPath).
		Str("channel_groups", result.ChannelGroups.String()).
		Int("epochs", len(result.Hypnogram.Labels)).
		Msg("prediction finished")

	return writePredictOutput(cmd.OutOrStdout(), app, opts, result)
}

// quickPredict shows a spinner on an interactive stderr unless spin is false.
func quickPredict(ctx context.Context, svc *application.PredictionService, command application.QuickPredictCommand, stderr io.Writer, spin bool) (application.QuickPredictResult, error) {
	if !spin || !isTerminal(stderr) {
		return svc.QuickPredict(ctx, command)
	}

	var result application.QuickPredictResult
	err := runSpinner(ctx, stderr, "Scoring recording...", func(ctx context.Context) error {
		var err error
		result, err = svc.QuickPredict(ctx, command)
		return err
	})
	return result, err
}

func writePredictOutput(w io.Writer, app *app, opts predictOptions, result application.QuickPredictResult) error {
	if opts.printHypnogram {
		for _, label := range result.Hypnogram.Labels {
			if _, err := fmt.Fprintln(w, label); err != nil {
				return err
			}
		}
	}

	if opts.summary {
		rendered, err := app.renderSummary(hypnogramrender.Summary{
			SessionName: result.SessionName,
			Hypnogram:   *result.Hypnogram,
			Epoch:       epochFor(opts.dataPerPrediction),
			Status:      result.Status,
		})
		if err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
		if _, err := fmt.Fprintln(w, rendered); err != nil {
			return err
		}
	}

	return nil
}

// epochFor converts samples per prediction into the time one label covers at
// the model's 128 Hz input rate.
func epochFor(dataPerPrediction int) time.Duration {
	return time.Duration(dataPerPrediction) * time.Second / 128
}

// validatePaths checks everything that can be checked before touching the
// network and returns absolute input and output paths.
func validatePaths(inputPath, outputPath, logPath string, overwrite bool) (string, string, error) {
	input, err := filepath.Abs(inputPath)
	if err != nil {
		return "", "", fmt.Errorf("resolve input path: %w", err)
	}
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", domain.ErrInputNotFound, inputPath)
		}
		return "", "", fmt.Errorf("stat input file: %w", err)
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is a directory", domain.ErrInputNotFound, inputPath)
	}
	if filepath.Ext(input) != edf.Extension {
		return "", "", fmt.Errorf("%w: input %s must be an .edf file", domain.ErrUnsupportedFormat, inputPath)
	}

	output, err := filepath.Abs(outputPath)
	if err != nil {
		return "", "", fmt.Errorf("resolve output path: %w", err)
	}
	if ext := filepath.Ext(output); !slices.Contains(outputExtensions, ext) {
		return "", "", fmt.Errorf("%w: output extension must be one of %s, got %q",
			domain.ErrUnsupportedFormat, strings.Join(outputExtensions, ", "), ext)
	}

	if !overwrite {
		if err := ensureAbsent(output, "output hypnogram"); err != nil {
			return "", "", err
		}
		if logPath != "" {
			if err := ensureAbsent(logPath, "log"); err != nil {
				return "", "", err
			}
		}
	}

	return input, output, nil
}

func ensureAbsent(path, what string) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s file %s (use --overwrite-file)", domain.ErrOutputExists, what, path)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("stat %s file: %w", what, err)
	}
}

// splitChannelGroups accepts repeated flags and quoted space-separated lists.
func splitChannelGroups(raw []string) []string {
	var out []string
	for _, entry := range raw {
		out = append(out, strings.Fields(entry)...)
	}
	return out
}
