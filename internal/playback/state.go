// internal/playback/state.go
package playback

import "github.com/llehouerou/handoff/internal/decoder"

// Status is the transport status derived from decoder events.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s Status) IsActive() bool {
	return s == StatusPlaying || s == StatusPaused
}

// TrackInfo is one selectable track of the loaded media.
type TrackInfo struct {
	ID   int
	Name string
}

// State is the live playback state. It is owned by the Controller and
// never handed out; observers and callers get a Snapshot.
//
// IsPlaying and IsPaused are never both true. TimeMs never exceeds
// DurationMs while the duration is known (DurationMs 0 means unknown).
type State struct {
	Loaded  bool
	Locator string
	Title   string

	Status    Status
	IsPlaying bool
	IsPaused  bool

	Position   float64 // [0,1]
	TimeMs     int64
	DurationMs int64

	VideoWidth  int // 0 until the output reports a layout
	VideoHeight int

	AudioTracks []TrackInfo
	TextTracks  []TrackInfo
	VideoTracks []TrackInfo
}

func defaultState() State {
	return State{IsPaused: true}
}

func (s State) clone() State {
	s.AudioTracks = cloneTracks(s.AudioTracks)
	s.TextTracks = cloneTracks(s.TextTracks)
	s.VideoTracks = cloneTracks(s.VideoTracks)
	return s
}

func cloneTracks(tracks []TrackInfo) []TrackInfo {
	if tracks == nil {
		return nil
	}
	return append([]TrackInfo(nil), tracks...)
}

func trackInfos(tracks []decoder.Track) []TrackInfo {
	result := make([]TrackInfo, len(tracks))
	for i, t := range tracks {
		result[i] = TrackInfo{ID: t.ID, Name: t.Name}
	}
	return result
}

// Snapshot is an immutable copy of the playback state plus the mixer.
// Volume is the remembered level: the one restored on unmute.
type Snapshot struct {
	State

	Volume int // [0,100]
	Muted  bool
}

// EffectiveVolume is the volume the decoder outputs: 0 when muted.
func (s Snapshot) EffectiveVolume() int {
	if s.Muted {
		return 0
	}
	return s.Volume
}
