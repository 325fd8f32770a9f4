package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is one request seen by a MockCognizServer.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   map[string]any
}

// MockCognizServer serves canned Cogniz REST responses per path and records
// every request.
type MockCognizServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	routes   map[string]http.HandlerFunc
}

// NewMockCognizServer starts a server with no routes. Unknown paths 404.
func NewMockCognizServer() *MockCognizServer {
	m := &MockCognizServer{routes: map[string]http.HandlerFunc{}}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	return m
}

func (m *MockCognizServer) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	req := Request{
		Method: r.Method,
		Path:   path,
		Query:  map[string]string{},
		Header: r.Header.Clone(),
	}
	for k := range r.URL.Query() {
		req.Query[k] = r.URL.Query().Get(k)
	}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &req.Body)
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	handler, ok := m.routes[path]
	m.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

// Handle answers path with status and body.
func (m *MockCognizServer) Handle(path string, status int, body string) {
	m.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// HandleFunc answers path with fn.
func (m *MockCognizServer) HandleFunc(path string, fn http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[path] = fn
}

// Count returns how many requests hit path.
func (m *MockCognizServer) Count(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.requests {
		if r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request. It panics when there is none.
func (m *MockCognizServer) Last() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

// Requests returns a copy of every recorded request.
func (m *MockCognizServer) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
