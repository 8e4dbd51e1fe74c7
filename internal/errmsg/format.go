// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpSubmit   Op = "submit command"
	OpSeek     Op = "seek"
	OpPlay     Op = "start playback"
	OpPause    Op = "pause playback"
	OpVolume   Op = "set volume"
	OpSpeed    Op = "set playback speed"
	OpSubtitle Op = "set subtitles"
	OpAudio    Op = "select audio track"
	OpColor    Op = "adjust color controls"
	OpFilter   Op = "apply filter"
	OpVector   Op = "add vector overlay"
	OpPiP      Op = "toggle picture-in-picture"

	// Session operations
	OpSessionOpen    Op = "open session store"
	OpSessionSave    Op = "save session"
	OpSessionRestore Op = "restore session"

	// Initialization
	OpConfigLoad  Op = "load configuration"
	OpEngineStart Op = "start engine"
	OpInitialize  Op = "initialize player"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
