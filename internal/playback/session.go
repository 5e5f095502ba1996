package playback

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/decoder"
	"github.com/llehouerou/handoff/internal/errmsg"
	"github.com/llehouerou/handoff/internal/surface"
)

// Session is the handle of one loaded media: the render-target half of
// the controller. It is what the surface bridge holds. After the media is
// unloaded every method is a no-op.
type Session struct {
	id     string
	gen    uint64
	logger zerolog.Logger
	post   func(item)

	mu       sync.Mutex
	dec      decoder.Interface // guarded by mu
	released bool              // guarded by mu
}

func newSession(dec decoder.Interface, gen uint64, post func(item), logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		gen:    gen,
		dec:    dec,
		post:   post,
		logger: logger.With().Str("session", id).Logger(),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// AttachRenderTarget binds target to the decoder output, unbinding any
// previous target first. Layout reports from the output update the video
// size and are then passed to layout.
func (s *Session) AttachRenderTarget(target decoder.RenderTarget, layout decoder.LayoutFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released || target == nil || !target.Valid() {
		return false
	}
	if s.dec.ViewsAttached() {
		s.dec.DetachViews()
	}
	if err := s.dec.AttachViews(target, s.layoutFunc(layout)); err != nil {
		s.logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpSurfaceAttach, err))
		return false
	}
	s.logger.Debug().Msg("surface attached")
	return true
}

// DetachRenderTarget unbinds the current target, if any.
func (s *Session) DetachRenderTarget() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released || !s.dec.ViewsAttached() {
		return
	}
	s.dec.DetachViews()
	s.logger.Debug().Msg("surface detached")
}

// SetWindowSize forwards the output size and requests an auto-fit scale
// while a target is bound. The refit error is returned for logging only.
func (s *Session) SetWindowSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil
	}
	s.dec.SetWindowSize(width, height)
	if !s.dec.ViewsAttached() {
		return nil
	}
	if err := s.dec.SetScale(0); err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpOutputRefit, err)
	}
	return nil
}

// live reports whether the session still owns a decoder.
func (s *Session) live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.released
}

// release detaches the output and makes the handle inert. The decoder
// itself is released by the controller.
func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return
	}
	if s.dec.ViewsAttached() {
		s.dec.DetachViews()
	}
	s.released = true
}

func (s *Session) layoutFunc(next decoder.LayoutFunc) decoder.LayoutFunc {
	return func(width, height int) {
		s.post(item{gen: s.gen, event: decoder.VideoLayoutChanged{Width: width, Height: height}})
		if next != nil {
			next(width, height)
		}
	}
}

// Verify Session implements surface.Session at compile time.
var _ surface.Session = (*Session)(nil)
