package testinfra

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// ExecuteRequest runs req through the engine and returns status, body and headers.
func ExecuteRequest(req *http.Request, engine *gin.Engine) (int, string, http.Header) {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp.Header
}

// RecordedRequest is one request received by a FakeBackend.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// Responder produces the scripted answer for a fake backend route.
type Responder func(r *http.Request, body string) (status int, respBody string)

// FakeBackend is an httptest server answering scripted JSON per "METHOD /path" key.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	routes   map[string]Responder
	requests []RecordedRequest
}

func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{routes: map[string]Responder{}}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *FakeBackend) URL() string {
	return b.Server.URL
}

func (b *FakeBackend) Close() {
	b.Server.Close()
}

// Handle registers a responder for method and path.
func (b *FakeBackend) Handle(method, path string, responder Responder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = responder
}

// Reply registers a fixed status and body for method and path.
func (b *FakeBackend) Reply(method, path string, status int, body string) {
	b.Handle(method, path, func(*http.Request, string) (int, string) {
		return status, body
	})
}

func (b *FakeBackend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// Count returns how many requests matched method and path.
func (b *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	bodyBytes, _ := io.ReadAll(r.Body)
	body := string(bodyBytes)

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method: r.Method, Path: r.URL.Path, RawQuery: r.URL.RawQuery, Header: r.Header.Clone(), Body: body,
	})
	responder, found := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	status, respBody := responder(r, body)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(respBody))
}
