package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute runs the CLI. An interrupt cancels the running command; the
// session teardown still completes.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "usleep-api <input.edf> <output>",
		Short: "Score a PSG recording with the U-Sleep web API",
		Long: "usleep-api uploads an EDF recording to the U-Sleep sleep staging service, " +
			"runs a prediction and downloads the resulting hypnogram. " +
			"The temporary server session is deleted when the run ends.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	flags := &globalFlags{}
	rootCmd.PersistentFlags().StringVar(&flags.token, "token", "", "API token; overrides the environment and the secret store")
	rootCmd.PersistentFlags().StringVar(&flags.tokenEnvName, "api-token-env-name", app.cfg.TokenEnv, "environment variable holding the API token")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "INFO", "log level: CRITICAL, ERROR, WARN, INFO or DEBUG")

	bindPredictCmd(rootCmd, app, flags)

	rootCmd.AddCommand(
		newVersionCmd(),
		newModelsCmd(app, flags),
		newSessionsCmd(app, flags),
		newTokenCmd(app),
	)

	return rootCmd
}
