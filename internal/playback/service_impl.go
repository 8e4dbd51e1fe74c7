package playback

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/command"
	"github.com/llehouerou/reel/internal/engine"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// concern groups effects that supersede each other: only the confirmation
// matching the latest dispatched effect of a concern is ever applied, so a
// late callback for a superseded seek is discarded instead of clobbering a
// newer position.
type concern int

const (
	concernPosition concern = iota
	concernPlaying
	concernSubtitles
	concernColor
	concernFilters
	concernVectors
	concernAudio
	concernPiP
)

// pendingEffect tracks one forwarded effect awaiting its engine result.
// Provisional concerns roll back to the confirmed baseline on failure.
type pendingEffect struct {
	op          string
	concern     concern
	provisional bool

	// followUp is forwarded only once this effect confirms; it is dropped
	// on failure or supersession. Used for autoplay: the play effect must
	// wait for its seek to complete.
	followUp engine.Effect
	// rollbackPlaying also reverts Playing on failure, for effects whose
	// optimistic update spans both concerns (an autoplay seek).
	rollbackPlaying bool
}

type submitReq struct {
	cmd   command.Command
	reply chan submitResp
}

type submitResp struct {
	state State
	err   error
}

type serviceImpl struct {
	engine engine.Interface
	caps   Capabilities
	log    *logrus.Logger

	submitCh chan submitReq
	done     chan struct{}

	closeMu sync.Mutex
	closed  bool

	subs   []*Subscription
	subsMu sync.RWMutex

	// snap is the latest published snapshot, readable without going through
	// the dispatch goroutine.
	snapMu sync.RWMutex
	snap   State

	// Everything below is owned by the dispatch goroutine.
	state            State
	seq              uint64
	pending          map[uint64]pendingEffect
	latest           map[concern]uint64
	confirmedTime    float64
	confirmedPlaying bool
}

// New creates a playback service driving eng. The dispatch goroutine
// exclusively owns the player state; callers interact through Submit,
// State and Subscribe only. A nil log falls back to the standard logger.
func New(eng engine.Interface, caps Capabilities, log *logrus.Logger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &serviceImpl{
		engine:   eng,
		caps:     caps,
		log:      log,
		submitCh: make(chan submitReq),
		done:     make(chan struct{}),
		state:    NewState(),
		pending:  make(map[uint64]pendingEffect),
		latest:   make(map[concern]uint64),
	}
	s.snap = s.state.clone()
	go s.run()
	return s
}

// Submit sends cmd to the dispatch goroutine and waits for the resulting
// snapshot. Concurrent submitters are ordered by channel arrival; the loop
// fully processes one command before accepting the next.
func (s *serviceImpl) Submit(cmd command.Command) (State, error) {
	req := submitReq{cmd: cmd, reply: make(chan submitResp, 1)}
	select {
	case s.submitCh <- req:
	case <-s.done:
		return State{}, ErrClosed
	}
	select {
	case resp := <-req.reply:
		return resp.state, resp.err
	case <-s.done:
		return State{}, ErrClosed
	}
}

// State returns the latest published snapshot.
func (s *serviceImpl) State() State {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap.clone()
}

// Subscribe creates a new event subscription. After Close it returns a
// subscription that is already closed.
func (s *serviceImpl) Subscribe() *Subscription {
	sub := newSubscription()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.closeMu.Lock()
	closed := s.closed
	s.closeMu.Unlock()
	if closed {
		sub.close()
		return sub
	}

	s.subs = append(s.subs, sub)
	return sub
}

// Close stops the dispatch loop and closes all subscriptions.
func (s *serviceImpl) Close() error {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.closeMu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// run is the dispatch loop: the single writer for the player state. It
// alternates between caller submissions and engine results, never
// interleaving two mutations.
func (s *serviceImpl) run() {
	results := s.engine.Results()
	for {
		select {
		case req := <-s.submitCh:
			req.reply <- s.handleSubmit(req.cmd)
		case res, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			s.handleResult(res)
		case <-s.done:
			return
		}
	}
}

func (s *serviceImpl) handleSubmit(cmd command.Command) submitResp {
	validated, err := Validate(cmd, s.state, s.caps)
	if err != nil {
		s.log.WithError(err).WithField("command", command.Name(cmd)).Debug("command rejected")
		return submitResp{state: s.state.clone(), err: err}
	}

	next, effects := Apply(validated, s.state)
	next.LastError = nil
	s.state = next

	if sk, ok := validated.(command.Seek); ok && sk.Autoplay && len(effects) == 2 {
		// The play effect must not reach the engine before the seek
		// completes; hold it on the seek and forward it on confirmation.
		p := s.pendingFor(effects[0])
		p.followUp = effects[1]
		p.rollbackPlaying = true
		s.forwardPending(effects[0], p)
	} else {
		for _, eff := range effects {
			s.forward(eff)
		}
	}

	s.log.WithField("command", command.Name(cmd)).
		WithField("effects", len(effects)).
		Debug("command applied")

	s.publish()
	return submitResp{state: s.state.clone()}
}

// forward assigns the next sequence number to eff, registers it as the
// latest effect of its concern and hands it to the engine. Submit failures
// surface immediately as an engine-unavailable effect failure; the loop
// keeps accepting commands.
func (s *serviceImpl) forward(eff engine.Effect) {
	s.forwardPending(eff, s.pendingFor(eff))
}

func (s *serviceImpl) forwardPending(eff engine.Effect, p pendingEffect) {
	s.seq++
	id := s.seq

	s.pending[id] = p
	s.latest[p.concern] = id

	if err := s.engine.Submit(engine.Request{ID: id, Effect: eff}); err != nil {
		delete(s.pending, id)
		s.failEffect(id, p, fmt.Errorf("%w: %v", ErrEngineUnavailable, err))
	}
}

// pendingFor classifies an effect by concern.
func (s *serviceImpl) pendingFor(eff engine.Effect) pendingEffect {
	p := pendingEffect{op: engine.Kind(eff)}
	switch eff.(type) {
	case engine.Seek:
		p.concern = concernPosition
		p.provisional = true
	case engine.Play, engine.Pause:
		p.concern = concernPlaying
		p.provisional = true
	case engine.EnableSubtitles, engine.DisableSubtitles:
		p.concern = concernSubtitles
	case engine.ApplyColor:
		p.concern = concernColor
	case engine.RebuildFilterChain:
		p.concern = concernFilters
	case engine.RebuildVectorOverlay:
		p.concern = concernVectors
	case engine.SelectAudio:
		p.concern = concernAudio
	case engine.EnterPiP, engine.ExitPiP:
		p.concern = concernPiP
	}
	return p
}

// handleResult reconciles an engine result with the pending effect it
// answers. Results for unknown or superseded effects are discarded.
func (s *serviceImpl) handleResult(res engine.Result) {
	p, ok := s.pending[res.ID]
	if !ok {
		return
	}
	delete(s.pending, res.ID)

	if s.latest[p.concern] != res.ID {
		// A newer command superseded this effect; its late callback must
		// not touch the live state. A successful confirmation still
		// advances the rollback baseline: the engine did complete it.
		if res.Err == nil {
			s.confirmBaseline(p, res)
		}
		s.log.WithField("effect", p.op).WithField("seq", res.ID).Debug("stale result discarded")
		return
	}
	delete(s.latest, p.concern)

	if res.Err != nil {
		s.failEffect(res.ID, p, res.Err)
		return
	}

	s.confirm(p, res)
	if p.followUp != nil {
		s.forward(p.followUp)
	}
	s.publish()
}

// confirmBaseline records an engine-reported value as the new rollback
// baseline for a concern without touching the live state.
func (s *serviceImpl) confirmBaseline(p pendingEffect, res engine.Result) {
	switch p.concern {
	case concernPosition:
		if res.Position != nil {
			s.confirmedTime = *res.Position
		}
	case concernPlaying:
		if res.Playing != nil {
			s.confirmedPlaying = *res.Playing
		}
	}
}

// confirm promotes provisional fields to confirmed, preferring values the
// engine reported over the dispatcher's optimistic ones.
func (s *serviceImpl) confirm(p pendingEffect, res engine.Result) {
	switch p.concern {
	case concernPosition:
		if res.Position != nil {
			s.state.CurrentTime = *res.Position
		}
		s.confirmedTime = s.state.CurrentTime
	case concernPlaying:
		if res.Playing != nil {
			s.state.Playing = *res.Playing
		}
		s.confirmedPlaying = s.state.Playing
	}
}

// failEffect rolls back provisional fields to the confirmed baselines,
// annotates the state and notifies subscribers.
func (s *serviceImpl) failEffect(id uint64, p pendingEffect, err error) {
	rolledBack := false
	if p.provisional {
		switch p.concern {
		case concernPosition:
			s.state.CurrentTime = s.confirmedTime
		case concernPlaying:
			s.state.Playing = s.confirmedPlaying
		}
		rolledBack = true
	}
	if p.rollbackPlaying {
		s.state.Playing = s.confirmedPlaying
		rolledBack = true
	}
	delete(s.latest, p.concern)

	effErr := &EffectError{Op: p.op, Seq: id, Err: err}
	s.state.LastError = effErr

	s.log.WithError(err).
		WithField("effect", p.op).
		WithField("seq", id).
		WithField("rolled_back", rolledBack).
		Warn("effect failed")

	s.sendError(ErrorEvent{Op: p.op, Seq: id, Err: err, RolledBack: rolledBack})
	s.publish()
}

// publish refreshes the readable snapshot and fans it out to subscribers.
func (s *serviceImpl) publish() {
	snap := s.state.clone()

	s.snapMu.Lock()
	s.snap = snap
	s.snapMu.Unlock()

	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendState(snap.clone())
	}
	s.subsMu.RUnlock()
}

func (s *serviceImpl) sendError(e ErrorEvent) {
	s.subsMu.RLock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
	s.subsMu.RUnlock()
}
