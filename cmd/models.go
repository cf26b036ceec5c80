package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelsCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models the server can score with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel)
			if err != nil {
				return err
			}

			client, err := app.newClient(cmd.Context(), *flags, logger)
			if err != nil {
				return err
			}

			models, err := client.GetModelNames(cmd.Context())
			if err != nil {
				return err
			}

			for _, model := range models {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), model)
			}
			return nil
		},
	}
}
