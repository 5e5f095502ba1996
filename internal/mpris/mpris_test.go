//go:build linux

package mpris

import (
	"strings"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/handoff/internal/playback"
)

func TestPlayerAdapter_Metadata(t *testing.T) {
	s := loadedSession(&ctrlLog{}, 90000)
	p := &playerAdapter{session: s, ctrl: &ctrlLog{}}

	meta, err := p.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "Clip" {
		t.Errorf("Title = %q, want Clip", meta.Title)
	}
	if meta.Length != types.Microseconds(90_000_000) {
		t.Errorf("Length = %d, want 90000000", meta.Length)
	}
	if !strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/") {
		t.Errorf("TrackId = %q", meta.TrackId)
	}
}

func TestPlayerAdapter_StatusAndPosition(t *testing.T) {
	s := loadedSession(&ctrlLog{}, 90000)
	p := &playerAdapter{session: s, ctrl: &ctrlLog{}}

	s.Notify(playback.PlayingChange{Playing: true})
	s.Notify(playback.ProgressChange{TimeMs: 1500, DurationMs: 90000})

	status, _ := p.PlaybackStatus()
	if status != types.PlaybackStatusPlaying {
		t.Errorf("PlaybackStatus() = %v, want Playing", status)
	}
	pos, _ := p.Position()
	if pos != 1_500_000 {
		t.Errorf("Position() = %d, want 1500000", pos)
	}
}

func TestPlayerAdapter_Commands(t *testing.T) {
	ctrl := &ctrlLog{}
	s := NewSession(ctrl, 10*time.Second)
	s.Notify(playback.MediaLoaded{Info: playback.Snapshot{State: playback.State{Loaded: true, DurationMs: 40000}}})
	p := &playerAdapter{session: s, ctrl: ctrl}

	_ = p.Play()
	_ = p.PlayPause()
	_ = p.Next()
	_ = p.Seek(types.Microseconds(-2_000_000))
	_ = p.SetPosition("", types.Microseconds(10_000_000))
	_ = p.Stop()

	want := "[play toggle seekBy:10000 seekBy:-2000 seekTo:0.25 stop]"
	if got := "[" + strings.Join(ctrl.calls, " ") + "]"; got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}
}

func TestPlayerAdapter_CannotSeekWithoutDuration(t *testing.T) {
	p := &playerAdapter{session: NewSession(&ctrlLog{}, time.Second), ctrl: &ctrlLog{}}

	if ok, _ := p.CanSeek(); ok {
		t.Error("CanSeek() = true without media")
	}
	if ok, _ := p.CanPlay(); ok {
		t.Error("CanPlay() = true without media")
	}
}
