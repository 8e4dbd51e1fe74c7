package playback

import (
	"slices"

	"github.com/samber/lo"

	"github.com/llehouerou/reel/internal/command"
	"github.com/llehouerou/reel/internal/engine"
)

// Apply executes one validated command against st and returns the resulting
// state plus the side effects to forward to the engine, in dispatch order.
// It is a pure, deterministic field-wise transition: st is not mutated, and
// the same (cmd, st) always yields the same result.
//
// Fields confirmed later by the engine (CurrentTime after a seek, Playing
// after play/pause) are set optimistically here; the dispatcher tracks them
// as provisional until the engine reports back.
func Apply(cmd command.Command, st State) (State, []engine.Effect) {
	next := st.clone()

	switch c := cmd.(type) {
	case command.Idle:
		return next, nil

	case command.Play:
		next.Playing = true
		return next, []engine.Effect{engine.Play{}}

	case command.Pause:
		next.Playing = false
		return next, []engine.Effect{engine.Pause{}}

	case command.Begin:
		next.CurrentTime = 0
		return next, []engine.Effect{engine.Seek{Time: 0}}

	case command.End:
		// The media duration is the engine's to know; the confirmed
		// position arrives with the seek result.
		return next, []engine.Effect{engine.Seek{ToEnd: true}}

	case command.Seek:
		next.CurrentTime = c.Time
		effects := []engine.Effect{engine.Seek{Time: c.Time}}
		if c.Autoplay {
			next.Playing = true
			effects = append(effects, engine.Play{})
		}
		return next, effects

	case command.Mute:
		next.Muted = true
		return next, nil

	case command.Unmute:
		next.Muted = false
		return next, nil

	case command.SetVolume:
		// Does not touch Muted; volume and mute are independent.
		next.Volume = c.Level
		return next, nil

	case command.SetSubtitles:
		next.SubtitleLanguage = c.Language
		if c.Language == "" {
			return next, []engine.Effect{engine.DisableSubtitles{}}
		}
		return next, []engine.Effect{engine.EnableSubtitles{Language: c.Language}}

	case command.SetPlaybackSpeed:
		next.Speed = c.Speed
		return next, nil

	case command.Loop:
		next.Looping = true
		return next, nil

	case command.Unloop:
		next.Looping = false
		return next, nil

	case command.SetBrightness:
		next.Brightness = c.Value
		return next, []engine.Effect{engine.ApplyColor{Brightness: next.Brightness, Contrast: next.Contrast}}

	case command.SetContrast:
		next.Contrast = c.Value
		return next, []engine.Effect{engine.ApplyColor{Brightness: next.Brightness, Contrast: next.Contrast}}

	case command.ApplyFilter:
		if c.ClearExisting {
			next.ActiveFilters = []command.Handle{c.Filter}
		} else {
			next.ActiveFilters = appendHandle(next.ActiveFilters, c.Filter)
		}
		return next, []engine.Effect{engine.RebuildFilterChain{Chain: slices.Clone(next.ActiveFilters)}}

	case command.RemoveAllFilters:
		next.ActiveFilters = nil
		return next, []engine.Effect{engine.RebuildFilterChain{}}

	case command.AddVector:
		if c.ClearExisting {
			next.ActiveVectors = []command.Handle{c.Builder}
		} else {
			next.ActiveVectors = appendHandle(next.ActiveVectors, c.Builder)
		}
		return next, []engine.Effect{engine.RebuildVectorOverlay{Overlays: slices.Clone(next.ActiveVectors)}}

	case command.RemoveAllVectors:
		next.ActiveVectors = nil
		return next, []engine.Effect{engine.RebuildVectorOverlay{}}

	case command.SelectAudioTrack:
		next.SelectedAudioTrack = c.Language
		return next, []engine.Effect{engine.SelectAudio{Language: c.Language}}

	case command.StartPiP:
		if next.PiPActive {
			return next, nil
		}
		next.PiPActive = true
		return next, []engine.Effect{engine.EnterPiP{}}

	case command.StopPiP:
		if !next.PiPActive {
			return next, nil
		}
		next.PiPActive = false
		return next, []engine.Effect{engine.ExitPiP{}}
	}

	return next, nil
}

// appendHandle appends h to the chain, deduplicating by identity: a handle
// already present is moved to the end rather than duplicated.
func appendHandle(chain []command.Handle, h command.Handle) []command.Handle {
	return append(lo.Without(chain, h), h)
}
