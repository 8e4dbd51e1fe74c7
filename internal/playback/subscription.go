package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. A fresh state
// snapshot is published after every applied command and after every engine
// confirmation or failure.
type Subscription struct {
	States <-chan State
	Errors <-chan ErrorEvent
	Done   <-chan struct{}

	// Internal write channels
	stateCh chan State
	errorCh chan ErrorEvent
	doneCh  chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh: make(chan State, eventBufferSize),
		errorCh: make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.States = s.stateCh
	s.Errors = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state snapshot (non-blocking).
func (s *Subscription) sendState(st State) {
	select {
	case s.stateCh <- st:
	default:
		// Drop if buffer full
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
