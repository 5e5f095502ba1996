package decoder

// Event is an asynchronous notification from the decoder. The concrete
// types below are the only implementations.
type Event interface {
	isEvent()
}

// Playing is emitted when output starts or resumes.
type Playing struct{}

// Paused is emitted when output is paused.
type Paused struct{}

// Stopped is emitted when the decoder stops.
type Stopped struct{}

// EndReached is emitted at end of stream.
type EndReached struct{}

// EncounteredError is emitted when decoding fails.
type EncounteredError struct {
	Message string
}

// Buffering reports the fill level of the input buffer in percent.
type Buffering struct {
	Percent float64
}

// TimeChanged reports the playback clock.
type TimeChanged struct {
	TimeMs   int64
	LengthMs int64
	Position float64
}

// VideoLayoutChanged reports new video dimensions from the output.
type VideoLayoutChanged struct {
	Width  int
	Height int
}

func (Playing) isEvent()            {}
func (Paused) isEvent()             {}
func (Stopped) isEvent()            {}
func (EndReached) isEvent()         {}
func (EncounteredError) isEvent()   {}
func (Buffering) isEvent()          {}
func (TimeChanged) isEvent()        {}
func (VideoLayoutChanged) isEvent() {}
