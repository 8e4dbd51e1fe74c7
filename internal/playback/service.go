package playback

import "github.com/llehouerou/reel/internal/command"

// Service is the playback command dispatcher contract.
//
// All submissions are serialized: commands are validated and applied one at
// a time, in submission order, even when submitted concurrently. Effects
// are forwarded to the engine without blocking the next command; their
// confirmations are folded back into the state on the same serialized path.
type Service interface {
	// Submit validates and applies cmd, forwards its side effects to the
	// engine, and returns the resulting state snapshot. Rejected commands
	// leave the state untouched and return the rejection reason.
	Submit(cmd command.Command) (State, error)

	// State returns the current state snapshot.
	State() State

	// Subscribe creates a new event subscription.
	Subscribe() *Subscription

	// Close stops the dispatch loop and closes all subscriptions. The
	// engine is not closed; its owner does that.
	Close() error
}
