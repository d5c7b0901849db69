// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package netlog records HTTP traffic as JSON-lines events. A Sink owns one
// writer for one session and is passed explicitly to whatever needs to emit
// events; there is no process-wide log state.
package netlog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Event is one logged request/response pair, or a transport failure.
type Event struct {
	Time     time.Time `json:"time"`
	Kind     string    `json:"kind"` // "response" or "failure"
	Method   string    `json:"method"`
	URL      string    `json:"url"`
	Status   int       `json:"status,omitempty"`
	Duration string    `json:"duration,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Sink serializes events to one writer. Safe for concurrent use; the
// transport below may be shared by redirected sub-requests.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	counts map[string]int
}

// NewSink returns a sink writing JSON lines to w. The sink does not own
// w's lifecycle; callers close their own files.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w, counts: make(map[string]int)}
}

// Record writes one event line. Write errors are reported on the returned
// error but never interrupt the traffic being observed.
func (s *Sink) Record(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[e.Kind]++
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if _, err := s.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Summary returns per-kind event counts so far.
func (s *Sink) Summary() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Transport is an http.RoundTripper that mirrors traffic into a Sink.
type Transport struct {
	sink *Sink
	next http.RoundTripper
}

// NewTransport wraps next (nil means http.DefaultTransport) with event
// logging into sink.
func NewTransport(sink *Sink, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{sink: sink, next: next}
}

// RoundTrip forwards the request and records the outcome. Logging is
// passive: sink errors are swallowed so observation never changes behavior.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	e := Event{
		Time:     start,
		Method:   req.Method,
		URL:      req.URL.String(),
		Duration: time.Since(start).String(),
	}
	if err != nil {
		e.Kind = "failure"
		e.Error = err.Error()
	} else {
		e.Kind = "response"
		e.Status = resp.StatusCode
	}
	_ = t.sink.Record(e)
	return resp, err
}
