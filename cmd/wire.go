package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	hypnogramrender "github.com/usleep/usleep-cli/internal/adapters/render/hypnogram"
	tomlrepo "github.com/usleep/usleep-cli/internal/adapters/repo/toml"
	chainstore "github.com/usleep/usleep-cli/internal/adapters/secrets/chain"
	filestore "github.com/usleep/usleep-cli/internal/adapters/secrets/file"
	passstore "github.com/usleep/usleep-cli/internal/adapters/secrets/pass"
	"github.com/usleep/usleep-cli/internal/adapters/usleep"
	"github.com/usleep/usleep-cli/internal/config"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
	"golang.org/x/term"
)

const consoleTimeFormat = "2006/01/02 15:04:05"

type app struct {
	cfg           config.Config
	secretStore   ports.SecretStore
	ledger        *tomlrepo.Ledger
	httpClient    *http.Client
	renderSummary func(hypnogramrender.Summary) (string, error)
}

// globalFlags are shared by every command that talks to the API.
type globalFlags struct {
	token        string
	tokenEnvName string
	logLevel     string
}

func wireApp() (*app, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	ledger, err := tomlrepo.NewLedger(cfg.Viper)
	if err != nil {
		return nil, fmt.Errorf("wire session ledger: %w", err)
	}

	secretStore, err := newSecretStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	return &app{
		cfg:           cfg,
		secretStore:   secretStore,
		ledger:        ledger,
		httpClient:    http.DefaultClient,
		renderSummary: hypnogramrender.Render,
	}, nil
}

func newSecretStore(cfg config.Config) (ports.SecretStore, error) {
	switch cfg.SecretsBackend {
	case config.SecretsBackendPass:
		return passstore.NewStore(), nil
	case config.SecretsBackendFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir)
	}
}

// newLogger writes human-readable lines to w; colors only on a terminal.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: consoleTimeFormat,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}

func parseLogLevel(raw string) (zerolog.Level, error) {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case "":
		return zerolog.InfoLevel, nil
	case "critical":
		return zerolog.FatalLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	default:
		lvl, err := zerolog.ParseLevel(value)
		if err != nil {
			return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", raw, err)
		}
		return lvl, nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveToken picks the API token: --token, then the environment variable
// named by --api-token-env-name, then the secret store.
func (a *app) resolveToken(ctx context.Context, flags globalFlags) (string, error) {
	if strings.TrimSpace(flags.token) != "" {
		return domain.NormalizeToken(flags.token)
	}

	envName := strings.TrimSpace(flags.tokenEnvName)
	if envName == "" {
		envName = a.cfg.TokenEnv
	}
	if value, ok := os.LookupEnv(envName); ok && strings.TrimSpace(value) != "" {
		token, err := domain.NormalizeToken(value)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", envName, err)
		}
		return token, nil
	}

	token, err := a.secretStore.Get(ctx, domain.APITokenSecretKey)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return "", fmt.Errorf("%w: pass --token, set %s, or run `usleep-api token set`", domain.ErrTokenNotFound, envName)
		}
		return "", fmt.Errorf("load api token: %w", err)
	}

	return token, nil
}

// newClient builds a validated API client from the resolved token.
func (a *app) newClient(ctx context.Context, flags globalFlags, logger zerolog.Logger) (*usleep.Client, error) {
	token, err := a.resolveToken(ctx, flags)
	if err != nil {
		return nil, err
	}

	return usleep.NewClient(ctx, usleep.Options{
		BaseURL:        a.cfg.APIURL,
		Token:          token,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.RequestTimeout,
		Logger:         logger,
	})
}
