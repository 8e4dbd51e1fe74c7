package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
)

const simResultBuffer = 64

// SimConfig tunes the simulated engine.
type SimConfig struct {
	// Latency is the delay between Submit and the matching Result.
	Latency time.Duration
	// FailKinds lists effect kinds (see Kind) that report failure instead of
	// confirming, to exercise rollback paths.
	FailKinds []string
	// Duration is the simulated media length in seconds, used by
	// seek-to-end. Defaults to 600.
	Duration float64
}

// Sim is a stand-in media engine that acknowledges effects after a fixed
// latency. It keeps a coarse model of playback position and play state so
// confirmations can carry engine-confirmed values, the way a real engine
// reports back after a seek.
type Sim struct {
	cfg     SimConfig
	results chan Result
	done    chan struct{}
	wg      sync.WaitGroup

	mu       sync.Mutex
	position float64
	playing  bool
	closed   bool
}

// NewSim creates a simulated engine.
func NewSim(cfg SimConfig) *Sim {
	if cfg.Latency <= 0 {
		cfg.Latency = 50 * time.Millisecond
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 600
	}
	return &Sim{
		cfg:     cfg,
		results: make(chan Result, simResultBuffer),
		done:    make(chan struct{}),
	}
}

func (s *Sim) Submit(req Request) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("engine closed")
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go s.execute(req)
	return nil
}

func (s *Sim) execute(req Request) {
	defer s.wg.Done()

	select {
	case <-time.After(s.cfg.Latency):
	case <-s.done:
		return
	}

	kind := Kind(req.Effect)
	if lo.Contains(s.cfg.FailKinds, kind) {
		s.deliver(Result{ID: req.ID, Err: fmt.Errorf("simulated %s failure", kind)})
		return
	}

	res := Result{ID: req.ID}
	s.mu.Lock()
	switch e := req.Effect.(type) {
	case Seek:
		if e.ToEnd {
			s.position = s.cfg.Duration
		} else {
			// The engine owns end-of-media clamping, not the validator.
			s.position = min(e.Time, s.cfg.Duration)
		}
		pos := s.position
		res.Position = &pos
	case Play:
		s.playing = true
		playing := true
		res.Playing = &playing
	case Pause:
		s.playing = false
		playing := false
		res.Playing = &playing
	}
	s.mu.Unlock()

	s.deliver(res)
}

func (s *Sim) deliver(res Result) {
	select {
	case s.results <- res:
	case <-s.done:
	}
}

func (s *Sim) Results() <-chan Result {
	return s.results
}

// Close stops the engine. In-flight effects are abandoned without a result.
func (s *Sim) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
	return nil
}

// Verify Sim implements Interface at compile time.
var _ Interface = (*Sim)(nil)
