// Package usleeptest provides an in-process fake of the U-Sleep web API.
package usleeptest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/usleep/usleep-cli/internal/domain"
)

const (
	DefaultToken = "test-token"
	apiPrefix    = "/api/v2/"
)

// Chunk is one response of the prediction log stream.
type Chunk struct {
	Lines    string
	Finished bool
}

// Failure makes an endpoint answer with Status and Body, optionally only
// after a number of successful calls.
type Failure struct {
	After  int
	Status int
	Body   string
}

// Config is the behaviour of the fake server. Change it through Configure.
type Config struct {
	Token                string
	Models               []string
	MaxChannelGroups     int
	FileInfo             domain.FileInfo
	ConfigurationOptions domain.ConfigurationOptions
	Chunks               []Chunk
	FinalStatus          string
	Hypnogram            []string
	StreamFailure        *Failure
	PredictFailure       *Failure
	UploadFailure        *Failure
}

type Request struct {
	Method string
	Path   string
	Body   []byte
}

type session struct {
	model     string
	upload    []byte
	predicted bool
	polls     int
	status    string
	predict   []byte
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	cfg      Config
	sessions map[string]*session
	requests []Request
}

func DefaultConfig() Config {
	return Config{
		Token:            DefaultToken,
		Models:           []string{"U-Sleep v1.0", "U-Sleep v2.0"},
		MaxChannelGroups: 10,
		FileInfo: domain.FileInfo{
			FileName:     "psg.edf",
			Channels:     []string{"C3-M2", "C4-M1", "E1-M2", "EMG"},
			ChannelTypes: []string{"EEG", "EEG", "EOG", "EMG"},
			SampleRate:   256,
			DurationSec:  28800,
		},
		ConfigurationOptions: domain.ConfigurationOptions{
			Model:                  "U-Sleep v1.0",
			RequiredChannelTypes:   []string{"EEG", "EOG"},
			InputSampleRate:        128,
			DataPerPredictionHints: []int{128, 3840},
		},
		Chunks: []Chunk{
			{Lines: "Loading model<br>"},
			{Lines: "Predicting<br>", Finished: true},
		},
		FinalStatus: "Completed",
		Hypnogram:   []string{"W", "N1", "N2", "N2", "N3", "REM"},
	}
}

func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{cfg: DefaultConfig(), sessions: map[string]*session{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Configure(fn func(cfg *Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
}

// CreateSession registers a session as if a previous run had opened it.
func (s *Server) CreateSession(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(name)
}

func (s *Server) SessionNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionNames()
}

func (s *Server) Uploaded(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[name]; ok {
		return append([]byte(nil), sess.upload...)
	}
	return nil
}

func (s *Server) PredictBody(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[name]; ok {
		return append([]byte(nil), sess.predict...)
	}
	return nil
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and had a path ending in suffix.
func (s *Server) Count(method, suffix string) int {
	n := 0
	for _, req := range s.Requests() {
		if req.Method == method && strings.HasSuffix(req.Path, suffix) {
			n++
		}
	}
	return n
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, apiPrefix)
	s.requests = append(s.requests, Request{Method: r.Method, Path: path, Body: body})

	if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		return
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case path == "info/ping":
		_, _ = io.WriteString(w, "OK")
	case path == "info/model_names":
		writeJSON(w, http.StatusOK, map[string]any{"models": s.cfg.Models})
	case len(parts) == 3 && parts[0] == "info" && parts[1] == "config":
		s.handleConfig(w, parts[2])
	case path == "sessions" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"session_names": s.sessionNames()})
	case len(parts) >= 2 && parts[0] == "sessions":
		s.handleSession(w, r, parts[1], strings.Join(parts[2:], "/"), body)
	default:
		notFound(w)
	}
}

func (s *Server) handleConfig(w http.ResponseWriter, variable string) {
	switch variable {
	case "max_channel_groups":
		writeJSON(w, http.StatusOK, map[string]any{"value": s.cfg.MaxChannelGroups})
	default:
		notFound(w)
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request, name, resource string, body []byte) {
	if resource == "" {
		sess, ok := s.sessions[name]
		if !ok {
			notFound(w)
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{
				"session_name":      name,
				"model":             sess.model,
				"file_name":         s.fileName(sess),
				"prediction_status": sess.status,
			})
		case http.MethodDelete:
			delete(s.sessions, name)
			writeJSON(w, http.StatusOK, map[string]string{"result": "deleted"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	sess := s.session(name)
	switch {
	case resource == "set_model" && r.Method == http.MethodPost:
		var payload struct {
			Model string `json:"model"`
		}
		_ = json.Unmarshal(body, &payload)
		sess.model = payload.Model
		writeJSON(w, http.StatusOK, map[string]string{"model": payload.Model})
	case resource == "file" && r.Method == http.MethodPost:
		s.handleUpload(w, r, sess, body)
	case resource == "file" && r.Method == http.MethodGet:
		if sess.upload == nil {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, s.cfg.FileInfo)
	case resource == "file" && r.Method == http.MethodDelete:
		sess.upload = nil
		writeJSON(w, http.StatusOK, map[string]string{"result": "deleted"})
	case resource == "configuration_options":
		writeJSON(w, http.StatusOK, s.cfg.ConfigurationOptions)
	case resource == "predict" && r.Method == http.MethodPost:
		if fail := s.cfg.PredictFailure; fail != nil {
			writeFailure(w, fail)
			return
		}
		sess.predict = body
		sess.predicted = true
		sess.status = "Running"
		writeJSON(w, http.StatusOK, map[string]string{"result": "started"})
	case resource == "prediction_status":
		writeJSON(w, http.StatusOK, map[string]string{"label": sess.status, "message": ""})
	case resource == "prediction_log_stream":
		s.handleStream(w, sess)
	case resource == "prediction_log":
		var lines []string
		for _, chunk := range s.cfg.Chunks {
			lines = append(lines, chunk.Lines)
		}
		writeJSON(w, http.StatusOK, map[string]string{"log": strings.Join(lines, "")})
	case resource == "hypnogram":
		if !sess.predicted {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hypnogram": s.cfg.Hypnogram})
	case strings.HasPrefix(resource, "download/hypnogram_"):
		s.handleDownload(w, strings.TrimPrefix(resource, "download/hypnogram_"))
	default:
		notFound(w)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, sess *session, body []byte) {
	if fail := s.cfg.UploadFailure; fail != nil {
		writeFailure(w, fail)
		return
	}

	r.Body = io.NopCloser(strings.NewReader(string(body)))
	file, _, err := r.FormFile("PSG")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	data, _ := io.ReadAll(file)
	sess.upload = data
	writeJSON(w, http.StatusCreated, map[string]string{"result": "uploaded"})
}

func (s *Server) handleStream(w http.ResponseWriter, sess *session) {
	if fail := s.cfg.StreamFailure; fail != nil && sess.polls >= fail.After {
		sess.polls++
		writeFailure(w, fail)
		return
	}

	chunk := Chunk{Finished: true}
	if sess.polls < len(s.cfg.Chunks) {
		chunk = s.cfg.Chunks[sess.polls]
	}
	sess.polls++
	if chunk.Finished {
		sess.status = s.cfg.FinalStatus
	}

	writeJSON(w, http.StatusOK, map[string]any{"lines": chunk.Lines, "finished": chunk.Finished})
}

func (s *Server) handleDownload(w http.ResponseWriter, format string) {
	switch format {
	case "tsv", "txt", "hyp":
		w.Header().Set("Content-Type", "text/plain")
		for i, label := range s.cfg.Hypnogram {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", i*30, label)
		}
	case "npy":
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("\x93NUMPY"))
	default:
		notFound(w)
	}
}

func (s *Server) session(name string) *session {
	sess, ok := s.sessions[name]
	if !ok {
		sess = &session{status: "Not started"}
		s.sessions[name] = sess
	}
	return sess
}

func (s *Server) sessionNames() []string {
	names := make([]string, 0, len(s.sessions))
	for name := range s.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) fileName(sess *session) string {
	if sess.upload == nil {
		return ""
	}
	return s.cfg.FileInfo.FileName
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, fail *Failure) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(fail.Status)
	_, _ = io.WriteString(w, fail.Body)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, "<h1>Not Found</h1>")
}
