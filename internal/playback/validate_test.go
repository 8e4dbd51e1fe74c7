package playback

import (
	"errors"
	"math"
	"testing"

	"github.com/llehouerou/reel/internal/command"
)

func TestValidate_VolumeClamping(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		want  float64
	}{
		{name: "above range clamps to 1", level: 1.5, want: 1.0},
		{name: "below range clamps to 0", level: -0.2, want: 0.0},
		{name: "in range unchanged", level: 0.4, want: 0.4},
		{name: "boundary 0 unchanged", level: 0, want: 0},
		{name: "boundary 1 unchanged", level: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(command.SetVolume{Level: tt.level}, NewState(), Capabilities{})
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			sv, ok := got.(command.SetVolume)
			if !ok {
				t.Fatalf("Validate() returned %T, want SetVolume", got)
			}
			if sv.Level != tt.want {
				t.Errorf("Level = %g, want %g", sv.Level, tt.want)
			}
		})
	}
}

func TestValidate_SpeedClamping(t *testing.T) {
	got, err := Validate(command.SetPlaybackSpeed{Speed: -3.0}, NewState(), Capabilities{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if sp := got.(command.SetPlaybackSpeed); sp.Speed != 0 {
		t.Errorf("Speed = %g, want 0", sp.Speed)
	}

	got, err = Validate(command.SetPlaybackSpeed{Speed: 2.0}, NewState(), Capabilities{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if sp := got.(command.SetPlaybackSpeed); sp.Speed != 2.0 {
		t.Errorf("Speed = %g, want 2.0", sp.Speed)
	}
}

func TestValidate_SeekRejections(t *testing.T) {
	tests := []struct {
		name string
		time float64
	}{
		{name: "NaN", time: math.NaN()},
		{name: "positive infinity", time: math.Inf(1)},
		{name: "negative", time: -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(command.Seek{Time: tt.time}, NewState(), Capabilities{})
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate(Seek{%v}) error = %v, want ErrInvalidArgument", tt.time, err)
			}
		})
	}
}

func TestValidate_SeekBeyondDurationPassesThrough(t *testing.T) {
	// The validator does not know the media duration; the engine clamps.
	got, err := Validate(command.Seek{Time: 1e9}, NewState(), Capabilities{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if sk := got.(command.Seek); sk.Time != 1e9 {
		t.Errorf("Time = %g, want 1e9 unchanged", sk.Time)
	}
}

func TestValidate_NullHandles(t *testing.T) {
	if _, err := Validate(command.ApplyFilter{}, NewState(), Capabilities{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ApplyFilter with null handle: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := Validate(command.AddVector{}, NewState(), Capabilities{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddVector with null handle: error = %v, want ErrInvalidArgument", err)
	}
}

func TestValidate_PiPCapability(t *testing.T) {
	if _, err := Validate(command.StartPiP{}, NewState(), Capabilities{}); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("StartPiP without capability: error = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := Validate(command.StopPiP{}, NewState(), Capabilities{}); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("StopPiP without capability: error = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := Validate(command.StartPiP{}, NewState(), Capabilities{PiP: true}); err != nil {
		t.Errorf("StartPiP with capability: error = %v, want nil", err)
	}
}

func TestValidate_OtherCommandsAlwaysAccepted(t *testing.T) {
	cmds := []command.Command{
		command.Idle{}, command.Play{}, command.Pause{}, command.Begin{},
		command.End{}, command.Mute{}, command.Unmute{}, command.Loop{},
		command.Unloop{}, command.SetSubtitles{Language: "en"},
		command.SetSubtitles{}, command.SetBrightness{Value: -0.5},
		command.SetContrast{Value: 3.5}, command.RemoveAllFilters{},
		command.RemoveAllVectors{}, command.SelectAudioTrack{Language: "xx"},
	}
	for _, c := range cmds {
		got, err := Validate(c, NewState(), Capabilities{})
		if err != nil {
			t.Errorf("Validate(%s) error = %v, want nil", command.Name(c), err)
		}
		if !command.Equal(got, c) {
			t.Errorf("Validate(%s) altered the command", command.Name(c))
		}
	}
}
