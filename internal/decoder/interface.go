// Package decoder defines the boundary to the media decoding and rendering
// backend. Everything behind Interface (demuxing, frame decode, hardware
// acceleration) is owned by the backend.
package decoder

import "errors"

var (
	// ErrUnsupportedMedia is returned by Load when the backend cannot open the locator.
	ErrUnsupportedMedia = errors.New("unsupported media")
	// ErrNoVideoOutput is returned by output calls on backends without a video output.
	ErrNoVideoOutput = errors.New("no video output")
)

// RenderTarget is an opaque, platform-provided drawable destination for
// decoded video frames. The surface producer owns its lifetime; Valid
// reports whether it can still be drawn to.
type RenderTarget interface {
	Valid() bool
}

// LayoutFunc receives the video dimensions reported by the video output.
type LayoutFunc func(width, height int)

// TrackType selects one of the elementary stream kinds of a media.
type TrackType int

const (
	TrackAudio TrackType = iota
	TrackVideo
	TrackText
)

// String returns the track type name.
func (t TrackType) String() string {
	switch t {
	case TrackAudio:
		return "audio"
	case TrackVideo:
		return "video"
	case TrackText:
		return "text"
	default:
		return "unknown"
	}
}

// NoTrack is the text track id that clears the selection.
const NoTrack = -1

// Track describes one selectable elementary stream.
// IDs are stable for the lifetime of the loaded media.
type Track struct {
	ID   int
	Name string
}

// HWAccel is the hardware decoding policy for a media.
type HWAccel struct {
	Enabled bool
	Forced  bool
}

// Media describes what to open.
type Media struct {
	Locator string
	Remote  bool     // network locator (URI) rather than a local path
	Options []string // per-media backend options
	HWAccel *HWAccel // nil leaves the backend default
}

// Metadata is the descriptive information the backend found in the media.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// Interface is the decoder contract. Implementations must be safe to call
// from multiple goroutines; each call is a single forwarded command whose
// outcome is reported later through the event handler.
type Interface interface {
	Load(m Media) error
	Play()
	Pause()
	Stop()

	Time() int64 // ms
	SetTime(ms int64)
	Length() int64 // ms, 0 when unknown
	Position() float64
	SetPosition(f float64)

	Volume() int
	SetVolume(v int)
	SetAspectRatio(ratio string)

	Tracks(t TrackType) []Track
	SelectTrack(t TrackType, id int)
	UnselectTrack(t TrackType)
	Metadata() Metadata

	AttachViews(target RenderTarget, layout LayoutFunc) error
	DetachViews()
	ViewsAttached() bool
	SetWindowSize(width, height int)
	SetScale(scale float64) error

	// SetEventHandler installs the callback invoked from the decoder's
	// event goroutine. A nil handler stops delivery.
	SetEventHandler(fn func(Event))
	Release()
}

// Factory constructs a decoder backend with the given init options.
type Factory func(initOptions []string) (Interface, error)
