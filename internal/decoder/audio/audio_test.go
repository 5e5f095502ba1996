package audio

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/decoder"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{1.5, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-1, -10},
	}
	for _, tt := range tests {
		if got := levelToVolume(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/music/song.mp3", true},
		{"/music/SONG.FLAC", true},
		{"/video/clip.mkv", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSkipID3v2(t *testing.T) {
	tag := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 5}
	data := append(append(tag, 1, 2, 3, 4, 5), []byte("fLaC")...)
	r := bytes.NewReader(data)

	if err := skipID3v2(r); err != nil {
		t.Fatalf("skipID3v2() error = %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "fLaC" {
		t.Errorf("remaining = %q, want fLaC", rest)
	}
}

func TestSkipID3v2_NoTag(t *testing.T) {
	r := bytes.NewReader([]byte("fLaC-stream-data"))

	if err := skipID3v2(r); err != nil {
		t.Fatalf("skipID3v2() error = %v", err)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "fLaC-stream-data" {
		t.Errorf("reader not rewound: %q", rest)
	}
}

func TestSkipID3v2_ShortInput(t *testing.T) {
	r := bytes.NewReader([]byte("ID3"))

	if err := skipID3v2(r); err != nil {
		t.Fatalf("skipID3v2() error = %v", err)
	}
	if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
		t.Errorf("position = %d, want 0", pos)
	}
}

func TestLoad_RejectsUnsupported(t *testing.T) {
	d := New(zerolog.Nop())
	defer d.Release()

	tests := []decoder.Media{
		{Locator: "https://example.com/stream.mp3", Remote: true},
		{Locator: "/video/clip.mkv"},
	}
	for _, m := range tests {
		if err := d.Load(m); !errors.Is(err, decoder.ErrUnsupportedMedia) {
			t.Errorf("Load(%q) error = %v, want ErrUnsupportedMedia", m.Locator, err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	d := New(zerolog.Nop())
	defer d.Release()

	err := d.Load(decoder.Media{Locator: filepath.Join(t.TempDir(), "missing.mp3")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not exist", err)
	}
}

func TestDecoder_NoVideoOutput(t *testing.T) {
	d := New(zerolog.Nop())
	defer d.Release()

	if err := d.AttachViews(nil, nil); !errors.Is(err, decoder.ErrNoVideoOutput) {
		t.Errorf("AttachViews() error = %v", err)
	}
	if err := d.SetScale(0); !errors.Is(err, decoder.ErrNoVideoOutput) {
		t.Errorf("SetScale() error = %v", err)
	}
	if d.ViewsAttached() {
		t.Error("ViewsAttached() = true")
	}
}

func TestDecoder_IdleCallsAreSafe(t *testing.T) {
	d := New(zerolog.Nop())
	var events []decoder.Event
	d.SetEventHandler(func(e decoder.Event) { events = append(events, e) })

	d.Play()
	d.Pause()
	d.Stop()
	d.SetTime(1000)
	d.SetPosition(0.5)
	d.SetVolume(150)

	if d.Time() != 0 || d.Length() != 0 || d.Position() != 0 {
		t.Error("idle decoder reports a clock")
	}
	if d.Volume() != 100 {
		t.Errorf("Volume() = %d, want 100", d.Volume())
	}
	if len(d.Tracks(decoder.TrackAudio)) != 0 {
		t.Error("idle decoder reports tracks")
	}
	if len(events) != 0 {
		t.Errorf("idle decoder emitted %v", events)
	}

	d.Release()
	d.Release()
}
