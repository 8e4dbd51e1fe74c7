// Package engine defines the contract between the playback dispatcher and
// the media engine that executes side effects (seeking, filter chains,
// picture-in-picture, ...). The engine runs effects asynchronously and
// reports outcomes on a result channel.
package engine

import "github.com/llehouerou/reel/internal/command"

// Effect is a single side-effecting instruction for the media engine. The
// set of variants is closed.
type Effect interface {
	isEffect()
}

// Seek moves the playback position. When ToEnd is set, Time is ignored and
// the engine seeks to the end of the media.
type Seek struct {
	Time  float64
	ToEnd bool
}

// Play starts or resumes playback.
type Play struct{}

// Pause pauses playback.
type Pause struct{}

// EnableSubtitles turns on subtitles for the given language.
type EnableSubtitles struct {
	Language string
}

// DisableSubtitles turns off subtitles.
type DisableSubtitles struct{}

// ApplyColor applies the current brightness and contrast controls.
type ApplyColor struct {
	Brightness float64
	Contrast   float64
}

// RebuildFilterChain replaces the engine's filter chain. An empty chain
// removes all filters.
type RebuildFilterChain struct {
	Chain []command.Handle
}

// RebuildVectorOverlay replaces the engine's vector overlays. An empty list
// removes all overlays.
type RebuildVectorOverlay struct {
	Overlays []command.Handle
}

// SelectAudio selects the audio track by language code.
type SelectAudio struct {
	Language string
}

// EnterPiP enters picture-in-picture mode.
type EnterPiP struct{}

// ExitPiP exits picture-in-picture mode.
type ExitPiP struct{}

func (Seek) isEffect()                 {}
func (Play) isEffect()                 {}
func (Pause) isEffect()                {}
func (EnableSubtitles) isEffect()      {}
func (DisableSubtitles) isEffect()     {}
func (ApplyColor) isEffect()           {}
func (RebuildFilterChain) isEffect()   {}
func (RebuildVectorOverlay) isEffect() {}
func (SelectAudio) isEffect()          {}
func (EnterPiP) isEffect()             {}
func (ExitPiP) isEffect()              {}

// Request wraps an effect with the dispatcher-assigned sequence number. IDs
// are strictly increasing in dispatch order.
type Request struct {
	ID     uint64
	Effect Effect
}

// Result reports the outcome of a previously submitted request. A nil Err
// means the engine confirmed the effect. Confirmed field values, when
// reported, override the dispatcher's optimistic values.
type Result struct {
	ID       uint64
	Err      error
	Position *float64
	Playing  *bool
}

// Interface is the media engine contract, for dependency injection and
// testing. Submit must not block on effect execution; outcomes arrive on
// Results in any order.
type Interface interface {
	Submit(req Request) error
	Results() <-chan Result
	Close() error
}

// Kind returns a stable short name for an effect, used in logs and
// failure-injection configuration.
func Kind(e Effect) string {
	switch e.(type) {
	case Seek:
		return "seek"
	case Play:
		return "play"
	case Pause:
		return "pause"
	case EnableSubtitles:
		return "enable_subtitles"
	case DisableSubtitles:
		return "disable_subtitles"
	case ApplyColor:
		return "apply_color"
	case RebuildFilterChain:
		return "rebuild_filter_chain"
	case RebuildVectorOverlay:
		return "rebuild_vector_overlay"
	case SelectAudio:
		return "select_audio"
	case EnterPiP:
		return "enter_pip"
	case ExitPiP:
		return "exit_pip"
	default:
		return "unknown"
	}
}
