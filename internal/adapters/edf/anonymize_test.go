package edf

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usleep/usleep-cli/internal/domain"
)

func writeRecording(t *testing.T, name string, size int) (string, []byte) {
	t.Helper()

	data := make([]byte, size)
	rng := rand.New(rand.NewSource(int64(size)))
	_, _ = rng.Read(data)
	copy(data[0:8], []byte("0       "))
	copy(data[8:], []byte("MCH-0234567 F 02-MAY-1951 Haagse_Harry"))

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path, data
}

func inHeaderField(offset int64) bool {
	for _, field := range HeaderFields {
		if offset >= field.Offset && offset < field.Offset+int64(field.Width) {
			return true
		}
	}
	return false
}

func TestAnonymizePreservesLengthAndBytesOutsideHeaderFields(t *testing.T) {
	t.Parallel()

	for _, size := range []int{HeaderSize, HeaderSize + 1, 64 * 1024, 300_001} {
		path, original := writeRecording(t, "psg.edf", size)

		anon, err := Anonymize(path, zerolog.Nop())
		require.NoError(t, err)

		got, err := io.ReadAll(anon)
		require.NoError(t, err)
		require.NoError(t, anon.Close())

		require.Len(t, got, len(original))
		for i := range original {
			if inHeaderField(int64(i)) {
				continue
			}
			if got[i] != original[i] {
				t.Fatalf("size %d: byte %d changed outside header fields", size, i)
			}
		}
	}
}

func TestAnonymizeWritesPlaceholders(t *testing.T) {
	t.Parallel()

	path, _ := writeRecording(t, "psg.edf", 1024)

	anon, err := Anonymize(path, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = anon.Close() }()

	got, err := io.ReadAll(anon)
	require.NoError(t, err)

	assert.Equal(t, "X X X X_X"+string(bytes.Repeat([]byte(" "), 71)), string(got[8:88]))
	assert.Equal(t, "Startdate 01-JAN-1970 X X X"+string(bytes.Repeat([]byte(" "), 53)), string(got[88:168]))
	assert.Equal(t, "01.01.70", string(got[168:176]))
	assert.Equal(t, "00.00.00", string(got[176:184]))
}

func TestAnonymizeLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()

	path, original := writeRecording(t, "psg.edf", 2048)

	anon, err := Anonymize(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, anon.Close())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, onDisk)
}

func TestAnonymizeCloseRemovesTempFile(t *testing.T) {
	t.Parallel()

	path, _ := writeRecording(t, "psg.edf", 512)

	anon, err := Anonymize(path, zerolog.Nop())
	require.NoError(t, err)
	tempName := anon.Name()
	assert.NotEqual(t, path, tempName)

	require.NoError(t, anon.Close())
	_, err = os.Stat(tempName)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnonymizeRejectsUnsupportedFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		size int
	}{
		{name: "wrong extension", file: "psg.bdf", size: 1024},
		{name: "upper case extension", file: "psg.EDF", size: 1024},
		{name: "truncated header", file: "short.edf", size: HeaderSize - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, _ := writeRecording(t, tt.file, tt.size)
			_, err := Anonymize(path, zerolog.Nop())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
		})
	}
}

func TestAnonymizeMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Anonymize(filepath.Join(t.TempDir(), "missing.edf"), zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
