package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/usleep/usleep-cli/internal/application"
	"github.com/usleep/usleep-cli/internal/domain"
)

func newSessionsCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and delete server-side sessions",
	}

	cmd.AddCommand(
		newSessionsListCmd(app, flags),
		newSessionsShowCmd(app, flags),
		newSessionsDeleteCmd(app, flags),
		newSessionsCleanupCmd(app, flags),
	)

	return cmd
}

func (a *app) sessionService(cmd *cobra.Command, flags globalFlags) (*application.SessionService, error) {
	logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel)
	if err != nil {
		return nil, err
	}

	client, err := a.newClient(cmd.Context(), flags, logger)
	if err != nil {
		return nil, err
	}

	return application.NewSessionService(client, a.ledger, client.BaseURL(), logger), nil
}

func newSessionsListCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the sessions visible to the API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.sessionService(cmd, *flags)
			if err != nil {
				return err
			}

			names, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newSessionsShowCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the model, file and prediction status of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.sessionService(cmd, *flags)
			if err != nil {
				return err
			}

			details, err := svc.Show(cmd.Context(), domain.SessionName(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "session:\t%s\n", details.Name)
			_, _ = fmt.Fprintf(out, "model:\t%s\n", orNone(details.Model))
			_, _ = fmt.Fprintf(out, "file:\t%s\n", orNone(details.FileName))
			_, _ = fmt.Fprintf(out, "status:\t%s\n", orNone(details.PredictionStatus))
			return nil
		},
	}
}

func newSessionsDeleteCmd(app *app, flags *globalFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "delete <name>... | --all",
		Short: "Delete sessions and their uploaded data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) > 0) {
				return errors.New("pass session names or --all, not both")
			}

			svc, err := app.sessionService(cmd, *flags)
			if err != nil {
				return err
			}

			if all {
				deleted, err := svc.DeleteAll(cmd.Context())
				printDeleted(cmd, deleted)
				return err
			}

			return deleteNamed(cmd.Context(), cmd, svc, args)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete every session visible to the API token")
	return cmd
}

func deleteNamed(ctx context.Context, cmd *cobra.Command, svc *application.SessionService, names []string) error {
	deleted := make([]domain.SessionName, 0, len(names))
	var errs error
	for _, raw := range names {
		name := domain.SessionName(raw)
		if err := svc.Delete(ctx, name); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		deleted = append(deleted, name)
	}

	printDeleted(cmd, deleted)
	return errs
}

func printDeleted(cmd *cobra.Command, deleted []domain.SessionName) {
	for _, name := range deleted {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted\t%s\n", name)
	}
}

func newSessionsCleanupCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete sessions left behind by interrupted runs",
		Long: "cleanup deletes the sessions recorded in the local session ledger " +
			"that a previous run could not tear down, and forgets the ones the server no longer has.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.sessionService(cmd, *flags)
			if err != nil {
				return err
			}

			report, err := svc.CleanupOrphans(cmd.Context())
			out := cmd.OutOrStdout()
			for _, name := range report.Deleted {
				_, _ = fmt.Fprintf(out, "deleted\t%s\n", name)
			}
			for _, name := range report.Missing {
				_, _ = fmt.Fprintf(out, "gone\t%s\n", name)
			}
			for _, name := range report.Skipped {
				_, _ = fmt.Fprintf(out, "skipped\t%s\n", name)
			}
			return err
		},
	}
}

func orNone(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
