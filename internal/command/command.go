// Package command defines the playback command set consumed by the dispatcher.
package command

// Handle is an opaque, identity-comparable reference to a resource owned by
// an external collaborator (a filter or a vector-overlay builder). It wraps
// a stable identifier rather than raw object identity so that handle
// equality stays meaningful across process boundaries. The zero value is
// the null handle.
type Handle string

// Valid reports whether h references a resource.
func (h Handle) Valid() bool { return h != "" }

// Command describes a single playback intent. The set of variants is closed:
// only the structs in this package implement it.
type Command interface {
	isCommand()
}

// Idle does nothing. Explicit no-op, useful as a neutral default.
type Idle struct{}

// Play requests playback to start or resume.
type Play struct{}

// Pause requests playback to pause.
type Pause struct{}

// Seek moves the playback position to Time (seconds). When Autoplay is set,
// playback starts once the seek completes.
type Seek struct {
	Time     float64
	Autoplay bool
}

// Begin seeks to the start of the media without changing the play state.
type Begin struct{}

// End seeks to the end of the media without changing the play state.
type End struct{}

// Mute silences audio output without altering the stored volume level.
type Mute struct{}

// Unmute restores audio output at the stored volume level.
type Unmute struct{}

// SetVolume sets the volume level. Out-of-range levels are clamped to [0, 1]
// at validation time, so an applied SetVolume always carries a valid level.
type SetVolume struct {
	Level float64
}

// SetSubtitles selects the subtitle language. An empty Language disables
// subtitles.
type SetSubtitles struct {
	Language string
}

// SetPlaybackSpeed sets the playback rate. Negative speeds are clamped to 0
// at validation time.
type SetPlaybackSpeed struct {
	Speed float64
}

// Loop enables looping playback.
type Loop struct{}

// Unloop disables looping playback.
type Unloop struct{}

// SetBrightness adjusts the brightness color control, conventionally [-1, 1].
type SetBrightness struct {
	Value float64
}

// SetContrast adjusts the contrast color control, conventionally [0, 4].
type SetContrast struct {
	Value float64
}

// ApplyFilter adds a filter to the active chain. When ClearExisting is set,
// the chain is replaced with just this filter.
type ApplyFilter struct {
	Filter        Handle
	ClearExisting bool
}

// RemoveAllFilters clears the active filter chain.
type RemoveAllFilters struct{}

// AddVector adds a vector-overlay builder to the active overlays. When
// ClearExisting is set, the overlays are replaced with just this builder.
type AddVector struct {
	Builder       Handle
	ClearExisting bool
}

// RemoveAllVectors clears the active vector overlays.
type RemoveAllVectors struct{}

// SelectAudioTrack selects the audio track by language code. Unknown codes
// are passed to the engine, which may fail asynchronously.
type SelectAudioTrack struct {
	Language string
}

// StartPiP enters picture-in-picture mode. No-op when already active.
type StartPiP struct{}

// StopPiP exits picture-in-picture mode. No-op when not active.
type StopPiP struct{}

func (Idle) isCommand()             {}
func (Play) isCommand()             {}
func (Pause) isCommand()            {}
func (Seek) isCommand()             {}
func (Begin) isCommand()            {}
func (End) isCommand()              {}
func (Mute) isCommand()             {}
func (Unmute) isCommand()           {}
func (SetVolume) isCommand()        {}
func (SetSubtitles) isCommand()     {}
func (SetPlaybackSpeed) isCommand() {}
func (Loop) isCommand()             {}
func (Unloop) isCommand()           {}
func (SetBrightness) isCommand()    {}
func (SetContrast) isCommand()      {}
func (ApplyFilter) isCommand()      {}
func (RemoveAllFilters) isCommand() {}
func (AddVector) isCommand()        {}
func (RemoveAllVectors) isCommand() {}
func (SelectAudioTrack) isCommand() {}
func (StartPiP) isCommand()         {}
func (StopPiP) isCommand()          {}

// Equal reports whether two commands carry the same intent: same variant and
// equal payload. Every variant is a comparable value type; filter and vector
// payloads are handles, so their comparison is identity comparison, never
// structural comparison of the underlying resource. Commands carrying
// numeric payloads are clamped before they circulate, so equality never has
// to reconcile clamped and unclamped values.
func Equal(a, b Command) bool {
	return a == b
}

// Name returns a short stable name for a command, used in logs and
// user-facing error messages.
func Name(c Command) string {
	switch c.(type) {
	case Idle:
		return "idle"
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Seek:
		return "seek"
	case Begin:
		return "begin"
	case End:
		return "end"
	case Mute:
		return "mute"
	case Unmute:
		return "unmute"
	case SetVolume:
		return "set volume"
	case SetSubtitles:
		return "set subtitles"
	case SetPlaybackSpeed:
		return "set playback speed"
	case Loop:
		return "loop"
	case Unloop:
		return "unloop"
	case SetBrightness:
		return "set brightness"
	case SetContrast:
		return "set contrast"
	case ApplyFilter:
		return "apply filter"
	case RemoveAllFilters:
		return "remove all filters"
	case AddVector:
		return "add vector"
	case RemoveAllVectors:
		return "remove all vectors"
	case SelectAudioTrack:
		return "select audio track"
	case StartPiP:
		return "start picture-in-picture"
	case StopPiP:
		return "stop picture-in-picture"
	default:
		return "unknown"
	}
}
