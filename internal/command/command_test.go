package command

import "testing"

func TestEqual_SameVariantSamePayload(t *testing.T) {
	tests := []struct {
		name string
		a, b Command
		want bool
	}{
		{
			name: "bare variants equal",
			a:    Play{},
			b:    Play{},
			want: true,
		},
		{
			name: "different variants differ",
			a:    Play{},
			b:    Pause{},
			want: false,
		},
		{
			name: "seek with equal payload",
			a:    Seek{Time: 12.5, Autoplay: true},
			b:    Seek{Time: 12.5, Autoplay: true},
			want: true,
		},
		{
			name: "seek with different autoplay",
			a:    Seek{Time: 12.5, Autoplay: true},
			b:    Seek{Time: 12.5, Autoplay: false},
			want: false,
		},
		{
			name: "volume equal after clamping",
			a:    SetVolume{Level: 1.0},
			b:    SetVolume{Level: 1.0},
			want: true,
		},
		{
			name: "subtitles empty vs set",
			a:    SetSubtitles{},
			b:    SetSubtitles{Language: "en"},
			want: false,
		},
		{
			name: "idle never equals another variant",
			a:    Idle{},
			b:    RemoveAllFilters{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual_HandleIdentity(t *testing.T) {
	// Two handles constructed independently with the same identifier are the
	// same resource reference.
	a := AddVector{Builder: Handle("overlay-1")}
	b := AddVector{Builder: Handle("overlay-1")}
	if !Equal(a, b) {
		t.Error("AddVector with identical builder handles should be equal")
	}

	c := AddVector{Builder: Handle("overlay-2")}
	if Equal(a, c) {
		t.Error("AddVector with distinct builder handles should not be equal")
	}

	f1 := ApplyFilter{Filter: Handle("sepia")}
	f2 := ApplyFilter{Filter: Handle("sepia"), ClearExisting: true}
	if Equal(f1, f2) {
		t.Error("ApplyFilter differing in ClearExisting should not be equal")
	}
}

func TestHandle_Valid(t *testing.T) {
	if Handle("").Valid() {
		t.Error("zero handle should not be valid")
	}
	if !Handle("sepia").Valid() {
		t.Error("non-empty handle should be valid")
	}
}

func TestName_CoversAllVariants(t *testing.T) {
	cmds := []Command{
		Idle{}, Play{}, Pause{}, Seek{}, Begin{}, End{}, Mute{}, Unmute{},
		SetVolume{}, SetSubtitles{}, SetPlaybackSpeed{}, Loop{}, Unloop{},
		SetBrightness{}, SetContrast{}, ApplyFilter{}, RemoveAllFilters{},
		AddVector{}, RemoveAllVectors{}, SelectAudioTrack{}, StartPiP{}, StopPiP{},
	}
	seen := make(map[string]bool)
	for _, c := range cmds {
		name := Name(c)
		if name == "unknown" {
			t.Errorf("Name(%T) = unknown", c)
		}
		if seen[name] {
			t.Errorf("Name(%T) = %q collides with another variant", c, name)
		}
		seen[name] = true
	}
}
