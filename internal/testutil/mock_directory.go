// Package testutil provides testing utilities for the employee directory.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/Sternrassler/employee-directory/pkg/directory"
)

// MembersPath is the path the mock serves records on.
const MembersPath = "/adminui-problem/members.json"

// MockResponse defines the behavior of the mock members endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration

	// Release, when set, blocks the response until it is closed.
	Release <-chan struct{}
}

// MockDirectory is a configurable mock of the members endpoint.
type MockDirectory struct {
	server *httptest.Server
	mu     sync.RWMutex
	resp   MockResponse

	requestCount    int
	lastUserAgent   string
	lastAcceptValue string
}

// NewMockDirectory creates a mock that serves an empty record list until
// SetResponse is called.
func NewMockDirectory() *MockDirectory {
	mock := &MockDirectory{
		resp: NewRecordsResponse(0),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.lastUserAgent = r.Header.Get("User-Agent")
		mock.lastAcceptValue = r.Header.Get("Accept")
		resp := mock.resp
		mock.mu.Unlock()

		if r.URL.Path != MembersPath {
			http.NotFound(w, r)
			return
		}

		if resp.Release != nil {
			select {
			case <-resp.Release:
			case <-r.Context().Done():
				return
			}
		}
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	}))

	return mock
}

// URL returns the full members endpoint URL.
func (m *MockDirectory) URL() string {
	return m.server.URL + MembersPath
}

// BaseURL returns the server root.
func (m *MockDirectory) BaseURL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockDirectory) Close() {
	m.server.Close()
}

// SetResponse configures the response for subsequent requests.
func (m *MockDirectory) SetResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resp = resp
}

// RequestCount returns the number of requests received.
func (m *MockDirectory) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// LastUserAgent returns the User-Agent of the most recent request.
func (m *MockDirectory) LastUserAgent() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUserAgent
}

// LastAccept returns the Accept header of the most recent request.
func (m *MockDirectory) LastAccept() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastAcceptValue
}

// Records builds n deterministic records with ids 1..n.
func Records(n int) []directory.Record {
	out := make([]directory.Record, n)
	for i := range out {
		id := i + 1
		out[i] = directory.Record{
			ID:    int64(id),
			Name:  fmt.Sprintf("Member %d", id),
			Email: fmt.Sprintf("member%d@mailinator.com", id),
			Role:  roleFor(id),
		}
	}
	return out
}

func roleFor(id int) string {
	if id%5 == 0 {
		return "admin"
	}
	return "member"
}

// NewRecordsResponse creates a 200 OK response carrying n records with
// string ids, the way the public endpoint encodes them.
func NewRecordsResponse(n int) MockResponse {
	type wire struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	records := Records(n)
	payload := make([]wire, len(records))
	for i, r := range records {
		payload[i] = wire{ID: fmt.Sprint(r.ID), Name: r.Name, Email: r.Email, Role: r.Role}
	}
	body, _ := json.Marshal(payload)

	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// NewMalformedResponse creates a 200 OK response whose body is not a
// record array.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `<html>not json</html>`,
		Headers: map[string]string{
			"Content-Type": "text/html",
		},
	}
}
