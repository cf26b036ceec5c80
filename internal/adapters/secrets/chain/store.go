// Package chain tries several token backends in order.
package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/usleep/usleep-cli/internal/adapters/secrets/file"
	passstore "github.com/usleep/usleep-cli/internal/adapters/secrets/pass"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret store chain has no backends")

func NewStore(backends ...ports.SecretStore) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend == nil {
			return nil, fmt.Errorf("secret store backend %d is nil", i)
		}
	}

	return &Store{backends: backends}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

// Put writes to the first backend that accepts the value.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs error
	for i, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if stopChain(err) {
			return err
		}
		errs = errors.Join(errs, fmt.Errorf("backend %d put: %w", i, err))
	}

	return errs
}

// Get returns the value from the first backend that has it. When no backend
// has it and none failed otherwise, the error wraps domain.ErrTokenNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs error
	missing := 0
	for i, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if stopChain(err) {
			return "", err
		}
		if isMissing(err) {
			missing++
		}
		errs = errors.Join(errs, fmt.Errorf("backend %d get: %w", i, err))
	}

	if missing == len(s.backends) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrTokenNotFound)
	}
	return "", errs
}

// Delete removes the value from every backend so no stale copy survives.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs error
	for i, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if stopChain(err) {
			return err
		}
		errs = errors.Join(errs, fmt.Errorf("backend %d delete: %w", i, err))
	}

	return errs
}

func isMissing(err error) bool {
	return errors.Is(err, domain.ErrTokenNotFound) || errors.Is(err, passstore.ErrUnavailable)
}

func stopChain(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
