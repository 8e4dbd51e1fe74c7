package playback

// ErrorEvent is emitted when a dispatched effect fails asynchronously.
//
// Emitted by:
//   - an engine Failed result for a still-relevant effect
//   - a Submit to an unreachable engine (reason wraps ErrEngineUnavailable)
//
// NOT emitted by:
//   - synchronous validation rejections: those are returned to the
//     submitting caller, never broadcast
//   - stale results whose effect was superseded by a later command
type ErrorEvent struct {
	Op         string // effect kind, e.g. "seek"
	Seq        uint64
	Err        error
	RolledBack bool // provisional fields were reverted to confirmed values
}
