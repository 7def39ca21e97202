// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package disktest runs a fake Disk API for tests.
package disktest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
)

const Token = "test-token"

// Recorded is one request seen by the server.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server routes "METHOD /path" to handlers and records every request. Unrouted
// requests get a 404 with a Disk style error body.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Recorded
}

func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: map[string]http.HandlerFunc{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root, as DiskConfig.BaseURL expects it.
func (s *Server) BaseURL() string {
	return s.URL + "/v1/"
}

// DiskConfig points a client at the server with a short poll interval.
func (s *Server) DiskConfig() config.DiskConfig {
	return config.DiskConfig{
		BaseURL:      s.BaseURL(),
		AccessToken:  Token,
		PollInterval: time.Millisecond,
		Timeout:      5 * time.Second,
	}
}

// Core builds an HTTP core bound to the server.
func (s *Server) Core(opts ...config.Option) config.CoreHTTP {
	return config.NewHTTPCore(nil, s.DiskConfig(), opts...)
}

// Handle registers h for method and path; path is absolute on the server, for
// example "/v1/disk/resources".
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = h
}

// HandleJSON answers method and path with status and v encoded as JSON.
func (s *Server) HandleJSON(method, path string, status int, v any) {
	s.Handle(method, path, JSON(status, v))
}

// Requests returns a copy of what the server has seen so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// RequestsTo filters Requests by method and path.
func (s *Server) RequestsTo(method, path string) []Recorded {
	var out []Recorded
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	h := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if h == nil {
		Error(http.StatusNotFound, "DiskNotFoundError", "Не удалось найти запрошенный ресурс.")(w, r)
		return
	}
	// handlers may read the body again
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	h(w, r)
}

// JSON writes v with status.
func JSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

// Error writes an error body shaped like the ones the Disk API returns.
func Error(status int, name, message string) http.HandlerFunc {
	return JSON(status, map[string]string{
		"error":       name,
		"message":     message,
		"description": message,
	})
}

// Sequence answers with the handlers in turn, repeating the last one.
func Sequence(hs ...http.HandlerFunc) http.HandlerFunc {
	var mu sync.Mutex
	i := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		h := hs[min(i, len(hs)-1)]
		i++
		mu.Unlock()
		h(w, r)
	}
}
