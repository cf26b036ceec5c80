// Package usleep binds the U-Sleep web API: a Client validates credentials and
// hands out Sessions, which wrap the /sessions/{name} resources.
package usleep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/usleep/usleep-cli/internal/adapters/httpapi"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

const (
	DefaultBaseURL = "https://sleep.ai.ku.dk"

	apiPrefix = "api/v2/"

	// MaxChannelGroupsVariable is the server config variable bounding channel-group inference.
	MaxChannelGroupsVariable = "max_channel_groups"
)

type Options struct {
	BaseURL        string
	Token          string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         zerolog.Logger
	// SkipValidation builds the client without pinging the server.
	SkipValidation bool
}

// Client holds credentials and the endpoint. It is immutable once built.
type Client struct {
	transport *httpapi.Transport
	logger    zerolog.Logger
}

var _ ports.SessionOpener = (*Client)(nil)

// NewClient builds a client and, unless opts.SkipValidation is set, validates
// the token with a single authenticated ping.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		transport: &httpapi.Transport{
			BaseURL:        baseURL,
			Token:          opts.Token,
			HTTPClient:     opts.HTTPClient,
			RequestTimeout: opts.RequestTimeout,
			Logger:         opts.Logger,
		},
		logger: opts.Logger,
	}

	if opts.SkipValidation {
		return c, nil
	}
	if err := c.validateToken(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.transport.BaseURL
}

func (c *Client) validateToken(ctx context.Context) error {
	c.logger.Info().Msg("validating auth token")

	if c.transport.Token == "" {
		return fmt.Errorf("%w: no api token provided", domain.ErrAuthentication)
	}

	resp, err := c.transport.Get(ctx, apiPath("info/ping"))
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: invalid authentication token (status %d)", domain.ErrAuthentication, resp.StatusCode)
	}

	return nil
}

// NewSession returns a handle on the named session. No request is made; the
// server creates the session on first use.
func (c *Client) NewSession(name domain.SessionName) *Session {
	return &Session{
		name:      name,
		client:    c,
		transport: c.transport,
		logger:    c.logger.With().Str("session", string(name)).Logger(),
		sleep:     sleepContext,
		now:       time.Now,
	}
}

func (c *Client) OpenSession(name domain.SessionName) ports.PredictionSession {
	return c.NewSession(name)
}

func (c *Client) GetModelNames(ctx context.Context) ([]string, error) {
	var payload struct {
		Models []string `json:"models"`
	}
	if err := c.transport.GetJSON(ctx, apiPath("info/model_names"), &payload); err != nil {
		return nil, fmt.Errorf("get model names: %w", err)
	}
	return payload.Models, nil
}

// GetConfigVariable returns the raw JSON value of a server configuration variable.
func (c *Client) GetConfigVariable(ctx context.Context, name string) (json.RawMessage, error) {
	var payload struct {
		Value json.RawMessage `json:"value"`
	}
	if err := c.transport.GetJSON(ctx, apiPath("info/config/"+name), &payload); err != nil {
		return nil, fmt.Errorf("get config variable %q: %w", name, err)
	}
	return payload.Value, nil
}

func (c *Client) GetSessionNames(ctx context.Context) ([]domain.SessionName, error) {
	var payload struct {
		SessionNames []domain.SessionName `json:"session_names"`
	}
	if err := c.transport.GetJSON(ctx, apiPath("sessions"), &payload); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return payload.SessionNames, nil
}

// DeleteAllSessions deletes every session visible to the token and returns
// the names it removed.
func (c *Client) DeleteAllSessions(ctx context.Context) ([]domain.SessionName, error) {
	names, err := c.GetSessionNames(ctx)
	if err != nil {
		return nil, err
	}

	deleted := make([]domain.SessionName, 0, len(names))
	var errs error
	for _, name := range names {
		if err := c.NewSession(name).DeleteSession(ctx); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		deleted = append(deleted, name)
	}

	return deleted, errs
}

func apiPath(path string) string {
	return apiPrefix + strings.TrimLeft(path, "/")
}
