package playback

import (
	"runtime"
	"slices"

	"github.com/llehouerou/reel/internal/command"
)

// State is a snapshot of the player configuration. The dispatch goroutine
// exclusively owns the live state; everyone else only ever sees copies.
type State struct {
	Playing     bool
	CurrentTime float64 // seconds
	Volume      float64 // always within [0, 1]
	Muted       bool
	// SubtitleLanguage is the selected subtitle language code; empty means
	// subtitles are disabled.
	SubtitleLanguage string
	Speed            float64 // always >= 0
	Looping          bool
	Brightness       float64
	Contrast         float64
	// ActiveFilters and ActiveVectors preserve insertion order and never
	// contain duplicate handles.
	ActiveFilters []command.Handle
	ActiveVectors []command.Handle
	// SelectedAudioTrack is the selected audio language code; empty means
	// the engine default.
	SelectedAudioTrack string
	PiPActive          bool
	// LastError annotates the snapshot with the most recent asynchronous
	// engine failure. Cleared when a later command applies cleanly.
	LastError *EffectError
}

// NewState returns the initial player state: looping on, full volume,
// normal speed, neutral color controls.
func NewState() State {
	return State{
		Volume:   1.0,
		Speed:    1.0,
		Looping:  true,
		Contrast: 1.0,
	}
}

// clone returns a deep copy safe to hand outside the dispatch goroutine.
func (s State) clone() State {
	out := s
	out.ActiveFilters = slices.Clone(s.ActiveFilters)
	out.ActiveVectors = slices.Clone(s.ActiveVectors)
	if s.LastError != nil {
		e := *s.LastError
		out.LastError = &e
	}
	return out
}

// Capabilities describes platform features available to the player.
type Capabilities struct {
	PiP bool
}

// DetectCapabilities reports what the current platform supports.
// Picture-in-picture only exists on Apple platforms.
func DetectCapabilities() Capabilities {
	switch runtime.GOOS {
	case "darwin", "ios":
		return Capabilities{PiP: true}
	default:
		return Capabilities{}
	}
}
