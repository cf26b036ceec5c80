// Package config resolves settings from ~/.usleep/config.toml and USLEEP_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "USLEEP"

	KeyAPIURL         = "api.url"
	KeyTokenEnv       = "api.token_env"
	KeyRequestTimeout = "api.request_timeout"
	KeyPollInterval   = "poll.interval"
	KeyPollMaxWait    = "poll.max_wait"
	KeyLedgerPath     = "ledger.path"
	KeySecretsDir     = "secrets.dir"
	KeySecretsBackend = "secrets.backend"

	// Token backends: auto tries pass(1) first and falls back to files.
	SecretsBackendAuto = "auto"
	SecretsBackendPass = "pass"
	SecretsBackendFile = "file"

	DefaultAPIURL   = "https://sleep.ai.ku.dk"
	DefaultTokenEnv = "USLEEP_API_TOKEN"

	configName = "config"
	configType = "toml"
	configDir  = ".usleep"
)

type Config struct {
	APIURL         string
	TokenEnv       string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	MaxWait        time.Duration
	LedgerPath     string
	SecretsDir     string
	SecretsBackend string

	// Viper is the resolved store, shared with adapters that read their own keys.
	Viper *viper.Viper
}

// DefaultDir is ~/.usleep.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir), nil
}

// Load reads config.toml from dir (DefaultDir when empty). A missing file is
// not an error; environment variables override file values.
func Load(dir string) (Config, error) {
	if dir == "" {
		defaultDir, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		dir = defaultDir
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)

	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyTokenEnv, DefaultTokenEnv)
	v.SetDefault(KeyRequestTimeout, time.Minute)
	v.SetDefault(KeyPollInterval, 2*time.Second)
	v.SetDefault(KeyPollMaxWait, time.Duration(0))
	v.SetDefault(KeyLedgerPath, filepath.Join(dir, "sessions.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeySecretsBackend, SecretsBackendAuto)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		APIURL:         strings.TrimSpace(v.GetString(KeyAPIURL)),
		TokenEnv:       strings.TrimSpace(v.GetString(KeyTokenEnv)),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		PollInterval:   v.GetDuration(KeyPollInterval),
		MaxWait:        v.GetDuration(KeyPollMaxWait),
		LedgerPath:     v.GetString(KeyLedgerPath),
		SecretsDir:     v.GetString(KeySecretsDir),
		SecretsBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
		Viper:          v,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("%s must not be empty", KeyAPIURL)
	}
	if c.TokenEnv == "" {
		return fmt.Errorf("%s must not be empty", KeyTokenEnv)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyPollInterval, c.PollInterval)
	}
	if c.MaxWait < 0 {
		return fmt.Errorf("%s must not be negative, got %s", KeyPollMaxWait, c.MaxWait)
	}
	switch c.SecretsBackend {
	case SecretsBackendAuto, SecretsBackendPass, SecretsBackendFile:
	default:
		return fmt.Errorf("%s must be one of auto, pass, file; got %q", KeySecretsBackend, c.SecretsBackend)
	}
	return nil
}
