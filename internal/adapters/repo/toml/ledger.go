// Package toml keeps the local ledger of sessions opened by this machine, so
// sessions left behind by a crashed run can be found and deleted later.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/usleep/usleep-cli/internal/domain"
	"github.com/usleep/usleep-cli/internal/ports"
)

const (
	// LedgerPathKey is the config key overriding the ledger location.
	LedgerPathKey = "ledger.path"

	ledgerFileMode  = 0o600
	ledgerDirMode   = 0o700
	ledgerConfigDir = ".usleep"
	ledgerFile      = "sessions.toml"
	tempFilePattern = ".sessions-*.toml.tmp"
)

type Ledger struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionLedger = (*Ledger)(nil)

// NewLedger resolves the ledger file from cfg, defaulting to
// ~/.usleep/sessions.toml. The file is created on first write.
func NewLedger(cfg *viper.Viper) (*Ledger, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(LedgerPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, ledgerConfigDir, ledgerFile)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Ledger{path: path, mu: lockForPath(path)}, nil
}

func (l *Ledger) Path() string {
	return l.path
}

// Record adds entry, replacing any previous entry with the same name.
func (l *Ledger) Record(ctx context.Context, entry domain.LedgerEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(entry)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].Name == encoded.Name {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}

	return l.writeSchema(file)
}

// Remove drops the named entry. Removing an unknown name is not an error.
func (l *Ledger) Remove(ctx context.Context, name domain.SessionName) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.readSchema()
	if err != nil {
		return err
	}

	kept := file.Sessions[:0]
	for _, entry := range file.Sessions {
		if entry.Name != string(name) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(file.Sessions) {
		return nil
	}
	file.Sessions = kept

	return l.writeSchema(file)
}

func (l *Ledger) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	file, err := l.readSchema()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LedgerEntry, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		entries = append(entries, fromSchema(entry))
	}

	return entries, nil
}

func (l *Ledger) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read session ledger: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode session ledger: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (l *Ledger) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, ledgerDirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session ledger: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp ledger file: %w", err)
	}
	if err := tempFile.Chmod(ledgerFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp ledger file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	if err := os.Rename(tempName, l.path); err != nil {
		return fmt.Errorf("replace session ledger: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve ledger path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(entry domain.LedgerEntry) sessionSchema {
	return sessionSchema{
		Name:      string(entry.Name),
		BaseURL:   entry.BaseURL,
		InputPath: entry.InputPath,
		CreatedAt: formatTime(entry.CreatedAt),
	}
}

func fromSchema(entry sessionSchema) domain.LedgerEntry {
	return domain.LedgerEntry{
		Name:      domain.SessionName(entry.Name),
		BaseURL:   entry.BaseURL,
		InputPath: entry.InputPath,
		CreatedAt: parseTime(entry.CreatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
