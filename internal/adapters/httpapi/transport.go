// Package httpapi is the authenticated request layer shared by all API calls.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/usleep/usleep-cli/internal/domain"
)

const (
	maxResponseBytes = 256 << 20
	logPreviewChars  = 50
	userAgent        = "usleep-cli"
)

var ErrUnsupportedMethod = errors.New("unsupported http method")

type Transport struct {
	BaseURL        string
	Token          string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

// Upload is a multipart file part streamed as the request body.
type Upload struct {
	Field    string
	FileName string
	Reader   io.Reader
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	JSON   any
	Upload *Upload
	// Quiet suppresses the success log line; failures are always logged.
	Quiet bool
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

func (t *Transport) Get(ctx context.Context, path string) (*Response, error) {
	return t.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

func (t *Transport) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	return t.Do(ctx, Request{Method: http.MethodPost, Path: path, JSON: body})
}

func (t *Transport) Delete(ctx context.Context, path string) (*Response, error) {
	return t.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

func (t *Transport) UploadFile(ctx context.Context, path string, upload Upload) (*Response, error) {
	return t.Do(ctx, Request{Method: http.MethodPost, Path: path, Upload: &upload})
}

// GetJSON issues a GET and decodes the body into v.
func (t *Transport) GetJSON(ctx context.Context, path string, v any) error {
	resp, err := t.Get(ctx, path)
	if err != nil {
		return err
	}
	return DecodeJSON(resp, v)
}

func (t *Transport) Do(ctx context.Context, req Request) (*Response, error) {
	switch req.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)
	}

	endpoint, err := t.endpoint(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	body, contentType, err := requestBody(req)
	if err != nil {
		return nil, err
	}

	requestCtx, cancel := t.requestContext(ctx, req.Upload != nil)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(requestCtx, req.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", req.Method, req.Path, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if t.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t.Token)
	}

	resp, err := t.httpClient().Do(httpReq)
	if err != nil {
		t.Logger.Error().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("request failed")
		return nil, fmt.Errorf("transport: %s %s: %w", req.Method, req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("transport: read %s %s response: %w", req.Method, req.Path, err)
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}
	t.logResponse(req, out)

	return out, nil
}

// DecodeJSON decodes a response body, classifying failures: auth rejections
// wrap domain.ErrAuthentication, non-JSON bodies become *domain.DecodeError
// and other non-success responses become *domain.StatusError.
func DecodeJSON(resp *Response, v any) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &domain.StatusError{StatusCode: resp.StatusCode, Body: resp.Body, Err: domain.ErrAuthentication}
	}

	if !json.Valid(resp.Body) {
		return &domain.DecodeError{StatusCode: resp.StatusCode, Body: resp.Body, Err: errors.New("invalid json")}
	}
	if !resp.OK() {
		return &domain.StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	if v == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &domain.DecodeError{StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	return nil
}

// CheckStatus turns a non-success response into an error without decoding it.
func CheckStatus(resp *Response) error {
	if resp.OK() {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &domain.StatusError{StatusCode: resp.StatusCode, Body: resp.Body, Err: domain.ErrAuthentication}
	}
	return &domain.StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
}

func (t *Transport) endpoint(path string, query url.Values) (string, error) {
	if t.BaseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(strings.TrimRight(t.BaseURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	return endpoint.String(), nil
}

func requestBody(req Request) (io.Reader, string, error) {
	switch {
	case req.Upload != nil && req.JSON != nil:
		return nil, "", errors.New("request cannot carry both a json body and an upload")
	case req.Upload != nil:
		body, contentType := multipartBody(*req.Upload)
		return body, contentType, nil
	case req.JSON != nil:
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		return bytes.NewReader(encoded), "application/json", nil
	default:
		return nil, "", nil
	}
}

// multipartBody streams the upload through a pipe so large recordings are not
// buffered in memory.
func multipartBody(upload Upload) (io.Reader, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile(upload.Field, upload.FileName)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, upload.Reader); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType()
}

func (t *Transport) logResponse(req Request, resp *Response) {
	if resp.OK() && req.Quiet {
		return
	}

	event := t.Logger.Info()
	if !resp.OK() {
		event = t.Logger.Error()
	}
	event.
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Str("body", bodyPreview(resp)).
		Msg("server response")
}

func bodyPreview(resp *Response) string {
	if len(resp.Body) == 0 {
		return ""
	}
	if json.Valid(resp.Body) {
		return "[JSON data] " + truncate(string(resp.Body), logPreviewChars)
	}
	if !isText(resp.Header.Get("Content-Type")) {
		return fmt.Sprintf("[%d bytes]", len(resp.Body))
	}
	return truncate(strings.TrimSpace(string(resp.Body)), logPreviewChars)
}

func isText(contentType string) bool {
	return contentType == "" || strings.HasPrefix(contentType, "text/") || strings.Contains(contentType, "json")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + " ..."
}

func (t *Transport) httpClient() *http.Client {
	if t.HTTPClient != nil {
		return t.HTTPClient
	}
	return http.DefaultClient
}

// requestContext bounds calls without a caller deadline. Uploads are exempt:
// a full-night recording can take longer than any sensible default.
func (t *Transport) requestContext(ctx context.Context, upload bool) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || upload {
		return ctx, func() {}
	}

	requestTimeout := t.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
