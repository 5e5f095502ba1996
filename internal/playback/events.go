package playback

// Notification is delivered to observers on the controller's delivery
// goroutine. The concrete types below are the only implementations.
type Notification interface {
	isNotification()
}

// PlayingChange is emitted when output starts (Playing true) or pauses.
type PlayingChange struct {
	Playing bool
}

// StopEvent is emitted when the decoder stops.
type StopEvent struct{}

// EndEvent is emitted at end of stream.
type EndEvent struct{}

// ErrorEvent is emitted when loading or decoding fails. The session is
// not torn down; that is the caller's decision.
type ErrorEvent struct {
	Message string
}

// BufferingChange reports the input buffer fill level.
type BufferingChange struct {
	Buffering bool // Percent < 100
	Percent   float64
}

// ProgressChange reports the playback clock.
type ProgressChange struct {
	Position   float64
	TimeMs     int64
	DurationMs int64
}

// VideoSizeChange reports new video dimensions, both positive.
type VideoSizeChange struct {
	Width  int
	Height int
}

// MediaLoaded is emitted after a successful load.
type MediaLoaded struct {
	Info Snapshot
}

// MediaUnloaded is emitted when loaded media is torn down, by Unload or by
// the next Load.
type MediaUnloaded struct{}

// MetadataChange is emitted when the title changes after load.
type MetadataChange struct {
	Title string
}

// VolumeChange is emitted when the remembered volume or the mute flag changes.
type VolumeChange struct {
	Volume int
	Muted  bool
}

func (PlayingChange) isNotification()   {}
func (StopEvent) isNotification()       {}
func (EndEvent) isNotification()        {}
func (ErrorEvent) isNotification()      {}
func (BufferingChange) isNotification() {}
func (ProgressChange) isNotification()  {}
func (VideoSizeChange) isNotification() {}
func (MediaLoaded) isNotification()     {}
func (MediaUnloaded) isNotification()   {}
func (MetadataChange) isNotification()  {}
func (VolumeChange) isNotification()    {}
