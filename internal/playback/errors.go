package playback

import (
	"errors"
	"fmt"
)

// Validation failures, returned synchronously by Submit before any state
// change. Wrapped with detail, test with errors.Is.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// ErrEngineUnavailable reports that the engine refused or could not accept a
// request. Surfaced asynchronously as an EffectError; the dispatch loop
// keeps running.
var ErrEngineUnavailable = errors.New("engine unavailable")

// ErrClosed is returned by Submit after the service has been closed.
var ErrClosed = errors.New("playback service closed")

// EffectError records an asynchronous engine failure: the effect that
// failed, its sequence number and the underlying reason.
type EffectError struct {
	Op  string // effect kind, e.g. "seek"
	Seq uint64
	Err error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("%s effect failed: %v", e.Op, e.Err)
}

func (e *EffectError) Unwrap() error {
	return e.Err
}
