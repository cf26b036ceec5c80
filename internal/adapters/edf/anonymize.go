// Package edf anonymizes EDF(+) recordings before they leave the machine.
package edf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/usleep/usleep-cli/internal/domain"
)

const (
	Extension = ".edf"

	// HeaderSize is the fixed part of an EDF header preceding the per-signal records.
	HeaderSize = 256

	tempFilePattern = "usleep-anon-*" + Extension
)

// HeaderField is a fixed-width ASCII field of the EDF header.
type HeaderField struct {
	Name        string
	Offset      int64
	Width       int
	Placeholder string
}

// HeaderFields are the identifying fields overwritten by Anonymize, in file order.
var HeaderFields = []HeaderField{
	{Name: "patient identification", Offset: 8, Width: 80, Placeholder: "X X X X_X"},
	{Name: "recording identification", Offset: 88, Width: 80, Placeholder: "Startdate 01-JAN-1970 X X X"},
	{Name: "start date", Offset: 168, Width: 8, Placeholder: "01.01.70"},
	{Name: "start time", Offset: 176, Width: 8, Placeholder: "00.00.00"},
}

// AnonymizedFile is a temporary anonymized copy. Close removes it.
type AnonymizedFile struct {
	*os.File
}

func (f *AnonymizedFile) Close() error {
	closeErr := f.File.Close()
	removeErr := os.Remove(f.File.Name())
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}
	return errors.Join(closeErr, removeErr)
}

// Anonymize copies the recording at path into a temporary file and blanks the
// identifying header fields of the copy. The source is never written to.
func Anonymize(path string, logger zerolog.Logger) (*AnonymizedFile, error) {
	if ext := filepath.Ext(path); ext != Extension {
		return nil, fmt.Errorf("%w: cannot anonymize %q with suffix %q, only EDF(+) (%s) files are supported",
			domain.ErrUnsupportedFormat, path, ext, Extension)
	}

	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat recording: %w", err)
	}
	if info.Size() < HeaderSize {
		return nil, fmt.Errorf("%w: %q is %d bytes, shorter than the %d byte EDF header",
			domain.ErrUnsupportedFormat, path, info.Size(), HeaderSize)
	}

	logger.Info().Str("path", path).Msg("anonymizing recording")

	tmp, err := os.CreateTemp("", tempFilePattern)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	anon := &AnonymizedFile{File: tmp}
	logger.Debug().Str("temp_file", tmp.Name()).Msg("created anonymized copy")

	if _, err := io.Copy(tmp, src); err != nil {
		_ = anon.Close()
		return nil, fmt.Errorf("copy recording: %w", err)
	}

	for _, field := range HeaderFields {
		logger.Debug().Str("field", field.Name).Msg("blanking header field")
		if _, err := tmp.WriteAt(field.value(), field.Offset); err != nil {
			_ = anon.Close()
			return nil, fmt.Errorf("overwrite %s: %w", field.Name, err)
		}
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = anon.Close()
		return nil, fmt.Errorf("rewind anonymized copy: %w", err)
	}

	return anon, nil
}

func (f HeaderField) value() []byte {
	text := f.Placeholder
	if len(text) > f.Width {
		text = text[:f.Width]
	}
	return []byte(text + strings.Repeat(" ", f.Width-len(text)))
}
