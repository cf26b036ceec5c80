package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usleep/usleep-cli/internal/domain"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state", "sessions.toml")
	config := viper.New()
	config.Set(LedgerPathKey, path)

	ledger, err := NewLedger(config)
	require.NoError(t, err)
	return ledger, path
}

func TestLedgerRoundTrip(t *testing.T) {
	t.Parallel()

	ledger, path := newTestLedger(t)
	ctx := context.Background()
	createdAt := time.Date(2026, 10, 16, 22, 5, 0, 0, time.UTC)

	first := domain.LedgerEntry{Name: "aaaaaaaaaaaa", BaseURL: "https://sleep.ai.ku.dk", InputPath: "/data/night1.edf", CreatedAt: createdAt}
	second := domain.LedgerEntry{Name: "bbbbbbbbbbbb", BaseURL: "https://sleep.ai.ku.dk", CreatedAt: createdAt.Add(time.Hour)}

	require.NoError(t, ledger.Record(ctx, first))
	require.NoError(t, ledger.Record(ctx, second))

	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LedgerEntry{first, second}, entries)
	assert.Equal(t, path, ledger.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(ledgerFileMode), info.Mode().Perm())
}

func TestLedgerRecordReplacesSameName(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Record(ctx, domain.LedgerEntry{Name: "a", InputPath: "old.edf"}))
	require.NoError(t, ledger.Record(ctx, domain.LedgerEntry{Name: "a", InputPath: "new.edf"}))

	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new.edf", entries[0].InputPath)
}

func TestLedgerRemove(t *testing.T) {
	t.Parallel()

	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Record(ctx, domain.LedgerEntry{Name: "a"}))
	require.NoError(t, ledger.Record(ctx, domain.LedgerEntry{Name: "b"}))
	require.NoError(t, ledger.Remove(ctx, "a"))
	require.NoError(t, ledger.Remove(ctx, "unknown"))

	entries, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SessionName("b"), entries[0].Name)
}

func TestLedgerListMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	ledger, path := newTestLedger(t)

	entries, err := ledger.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoFileExists(t, path)
}

func TestLedgerRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	ledger, path := newTestLedger(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("version = 2\n"), 0o600))

	_, err := ledger.List(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported session ledger schema version 2")
}

func TestLedgerReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	ledger, path := newTestLedger(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"[[sessions]]",
		`name = "c0ffee000001"`,
		`base_url = "https://sleep.ai.ku.dk"`,
		`created_at = "not a time"`,
	}, "\n")), 0o600))

	entries, err := ledger.List(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SessionName("c0ffee000001"), entries[0].Name)
	assert.True(t, entries[0].CreatedAt.IsZero())
}

func TestLedgerHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ledger, path := newTestLedger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, ledger.Record(ctx, domain.LedgerEntry{Name: "a"}), context.Canceled)
	assert.NoFileExists(t, path)
}

func TestLedgerConcurrentRecordsAreAllKept(t *testing.T) {
	t.Parallel()

	ledger, path := newTestLedger(t)
	other, err := NewLedger(func() *viper.Viper {
		config := viper.New()
		config.Set(LedgerPathKey, path)
		return config
	}())
	require.NoError(t, err)

	const writers = 16
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			target := ledger
			if i%2 == 1 {
				target = other
			}
			assert.NoError(t, target.Record(context.Background(), domain.LedgerEntry{Name: domain.SessionName(fmt.Sprintf("s%02d", i))}))
		}()
	}
	wg.Wait()

	entries, err := ledger.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, writers)
}
