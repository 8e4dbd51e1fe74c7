package playback

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/llehouerou/reel/internal/command"
)

// Validate checks cmd against the current state and platform capabilities.
// It is pure: no side effects, no state mutation. Out-of-range volume and
// speed values are corrected rather than rejected, so the returned command
// already carries clamped payloads. Seek targets beyond the media duration
// pass through unchanged; the engine owns that clamping.
func Validate(cmd command.Command, _ State, caps Capabilities) (command.Command, error) {
	switch c := cmd.(type) {
	case command.Seek:
		if math.IsNaN(c.Time) || math.IsInf(c.Time, 0) {
			return nil, fmt.Errorf("%w: seek time must be finite", ErrInvalidArgument)
		}
		if c.Time < 0 {
			return nil, fmt.Errorf("%w: seek time %g is negative", ErrInvalidArgument, c.Time)
		}

	case command.SetVolume:
		if math.IsNaN(c.Level) {
			return nil, fmt.Errorf("%w: volume level must be a number", ErrInvalidArgument)
		}
		c.Level = lo.Clamp(c.Level, 0, 1)
		return c, nil

	case command.SetPlaybackSpeed:
		if math.IsNaN(c.Speed) {
			return nil, fmt.Errorf("%w: playback speed must be a number", ErrInvalidArgument)
		}
		c.Speed = max(c.Speed, 0)
		return c, nil

	case command.ApplyFilter:
		if !c.Filter.Valid() {
			return nil, fmt.Errorf("%w: null filter handle", ErrInvalidArgument)
		}

	case command.AddVector:
		if !c.Builder.Valid() {
			return nil, fmt.Errorf("%w: null vector builder handle", ErrInvalidArgument)
		}

	case command.StartPiP:
		if !caps.PiP {
			return nil, fmt.Errorf("%w: picture-in-picture", ErrUnsupportedOperation)
		}

	case command.StopPiP:
		if !caps.PiP {
			return nil, fmt.Errorf("%w: picture-in-picture", ErrUnsupportedOperation)
		}
	}

	return cmd, nil
}
