package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthentication           = errors.New("authentication failed")
	ErrInvalidModel             = errors.New("invalid model")
	ErrUnsupportedFormat        = errors.New("unsupported file format")
	ErrTimeout                  = errors.New("timed out waiting for prediction")
	ErrInvalidDataPerPrediction = errors.New("data per prediction must be a positive integer")
	ErrSessionNotFound          = errors.New("session not found")
	ErrInputNotFound            = errors.New("input file not found")
	ErrOutputExists             = errors.New("output file already exists")
	ErrTokenNotFound            = errors.New("api token not found")
	ErrInvalidToken             = errors.New("invalid api token")
)

const bodyPreviewLen = 200

// DecodeError reports a response body that could not be decoded as JSON.
// Callers usually treat it as "the resource does not exist".
type DecodeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v: %s", e.StatusCode, e.Err, preview(e.Body))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StreamError aborts the prediction log polling loop.
type StreamError struct {
	StatusCode int
	Body       []byte
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("prediction log stream failed (status %d): %s", e.StatusCode, preview(e.Body))
}

// StatusError is a well-formed response with a non-success status code.
type StatusError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: status %d: %s", e.Err, e.StatusCode, preview(e.Body))
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, preview(e.Body))
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func preview(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > bodyPreviewLen {
		return text[:bodyPreviewLen] + " ..."
	}
	return text
}
