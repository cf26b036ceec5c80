package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/usleep/usleep-cli/internal/domain"
	"golang.org/x/term"
)

func newTokenCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Store or remove the API token in the secret store",
	}

	cmd.AddCommand(
		newTokenSetCmd(app),
		newTokenDeleteCmd(app),
	)

	return cmd
}

func newTokenSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set [token]",
		Short: "Save the API token; reads stdin when no argument is given",
		Long: "set saves the API token created at https://sleep.ai.ku.dk so later runs " +
			"do not need --token or the environment variable. Prefer stdin over the " +
			"argument to keep the token out of the shell history.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 1 {
				raw = args[0]
			} else {
				value, err := readToken(cmd)
				if err != nil {
					return err
				}
				raw = value
			}

			token, err := domain.NormalizeToken(raw)
			if err != nil {
				return err
			}
			if err := app.secretStore.Put(cmd.Context(), domain.APITokenSecretKey, token); err != nil {
				return fmt.Errorf("save api token: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "api token saved")
			return err
		},
	}
}

func newTokenDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the saved API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Delete(cmd.Context(), domain.APITokenSecretKey); err != nil {
				return fmt.Errorf("delete api token: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "api token deleted")
			return err
		},
	}
}

// readToken prompts without echo on a terminal and reads the first line of
// stdin otherwise.
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API token: ")
		value, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read api token: %w", err)
		}
		return string(value), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read api token: %w", err)
	}
	return line, nil
}
