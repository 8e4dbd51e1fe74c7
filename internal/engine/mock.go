package engine

import "sync"

// Mock is a recording test double for the media engine. It never completes
// effects on its own; tests drive outcomes with Confirm and Fail.
type Mock struct {
	mu        sync.Mutex
	requests  []Request
	submitErr error

	results chan Result
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		results: make(chan Result, 64),
	}
}

func (m *Mock) Submit(req Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitErr != nil {
		return m.submitErr
	}
	m.requests = append(m.requests, req)
	return nil
}

func (m *Mock) Results() <-chan Result {
	return m.results
}

func (m *Mock) Close() error {
	return nil
}

// Test helpers

// SetSubmitError makes every subsequent Submit fail with err.
func (m *Mock) SetSubmitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitErr = err
}

// Requests returns a copy of all submitted requests.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or false if none.
func (m *Mock) LastRequest() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return Request{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// Confirm reports successful completion of request id.
func (m *Mock) Confirm(id uint64) {
	m.results <- Result{ID: id}
}

// ConfirmPosition reports completion of request id with an engine-confirmed
// playback position.
func (m *Mock) ConfirmPosition(id uint64, pos float64) {
	m.results <- Result{ID: id, Position: &pos}
}

// ConfirmPlaying reports completion of request id with an engine-confirmed
// play state.
func (m *Mock) ConfirmPlaying(id uint64, playing bool) {
	m.results <- Result{ID: id, Playing: &playing}
}

// Fail reports failure of request id.
func (m *Mock) Fail(id uint64, err error) {
	m.results <- Result{ID: id, Err: err}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
