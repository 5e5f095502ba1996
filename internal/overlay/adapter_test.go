package overlay

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/handoff/internal/decoder"
	"github.com/llehouerou/handoff/internal/playback"
	"github.com/llehouerou/handoff/internal/surface"
)

type fakeHost struct {
	available bool
	enterErr  error
	region    *Rect
	entered   []Params
	updated   []Params
}

func (h *fakeHost) Available() bool { return h.available }

func (h *fakeHost) Enter(p Params) error {
	if h.enterErr != nil {
		return h.enterErr
	}
	h.entered = append(h.entered, p)
	return nil
}

func (h *fakeHost) Update(p Params) error {
	h.updated = append(h.updated, p)
	return nil
}

func (h *fakeHost) SourceRegion() (Rect, bool) {
	if h.region == nil {
		return Rect{}, false
	}
	return *h.region, true
}

type fakeSurfaces struct {
	session       bool
	videoW        int
	videoH        int
	overlayActive bool
	attached      []decoder.RenderTarget
	detached      []decoder.RenderTarget
}

func (s *fakeSurfaces) HasActiveSession() bool       { return s.session }
func (s *fakeSurfaces) VideoSize() (int, int)        { return s.videoW, s.videoH }
func (s *fakeSurfaces) OverlayActive() bool          { return s.overlayActive }
func (s *fakeSurfaces) SetOverlayActive(active bool) { s.overlayActive = active }

func (s *fakeSurfaces) Attach(t decoder.RenderTarget, _ decoder.LayoutFunc) bool {
	if !s.session {
		return false
	}
	s.attached = append(s.attached, t)
	return true
}

func (s *fakeSurfaces) DetachTarget(t decoder.RenderTarget) {
	s.detached = append(s.detached, t)
}

type fakePlayer struct {
	transportLog
	playing bool
}

func (p *fakePlayer) IsPlaying() bool { return p.playing }

type entrySlot struct {
	handler EntryHandler
	sets    int
}

func (e *entrySlot) SetEntryHandler(h EntryHandler) {
	e.handler = h
	e.sets++
}

type screen struct{}

func (screen) Valid() bool { return true }

func newTestAdapter(opts ...Option) (*Adapter, *fakeHost, *fakeSurfaces, *fakePlayer) {
	host := &fakeHost{available: true}
	surfaces := &fakeSurfaces{session: true}
	player := &fakePlayer{}
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return NewAdapter(host, surfaces, player, opts...), host, surfaces, player
}

func TestAdapter_CanEnterOverlay(t *testing.T) {
	tests := []struct {
		name      string
		session   bool
		available bool
		want      bool
	}{
		{"session and capability", true, true, true},
		{"no session", false, true, false},
		{"no capability", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, host, surfaces, _ := newTestAdapter()
			surfaces.session = tt.session
			host.available = tt.available
			assert.Equal(t, tt.want, a.CanEnterOverlay())
		})
	}
}

func TestAdapter_EnterUnavailableNeverReachesHost(t *testing.T) {
	a, host, surfaces, _ := newTestAdapter()
	surfaces.session = false

	err := a.Enter()

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, host.entered)
}

func TestAdapter_EnterClampsAspect(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		expect Rational
	}{
		{"wide", 4000, 1000, MaxAspect},
		{"tall", 200, 1000, MinAspect},
		{"hd", 1920, 1080, Rational{16, 9}},
		{"unknown", 0, 0, DefaultAspect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, host, surfaces, _ := newTestAdapter()
			surfaces.videoW, surfaces.videoH = tt.w, tt.h

			require.NoError(t, a.Enter())

			require.Len(t, host.entered, 1)
			assert.Equal(t, tt.expect, host.entered[0].AspectRatio)
		})
	}
}

func TestAdapter_DefaultAspectOption(t *testing.T) {
	a, host, _, _ := newTestAdapter(WithDefaultAspect(Rational{4, 3}))

	require.NoError(t, a.Enter())

	assert.Equal(t, Rational{4, 3}, host.entered[0].AspectRatio)
}

func TestAdapter_ParamsSourceRegionAndActions(t *testing.T) {
	a, host, _, player := newTestAdapter()
	host.region = &Rect{X: 2, Y: 1, Width: 80, Height: 24}
	player.playing = true

	p := a.Params()

	require.NotNil(t, p.SourceRegion)
	assert.Equal(t, *host.region, *p.SourceRegion)
	require.Len(t, p.Actions, 3)
	assert.Equal(t, TriggerPause, p.Actions[1].Trigger)
}

func TestAdapter_EnterHostFailure(t *testing.T) {
	a, host, _, _ := newTestAdapter()
	host.enterErr = errors.New("denied")

	assert.False(t, a.RequestEnter())
}

func TestAdapter_UserLeaveHint(t *testing.T) {
	a, host, _, player := newTestAdapter()

	assert.False(t, a.UserLeaveHint(), "paused playback must not enter overlay")
	assert.Empty(t, host.entered)

	player.playing = true
	assert.True(t, a.UserLeaveHint())
	assert.Len(t, host.entered, 1)
}

func TestAdapter_NotifyRebuildsOnlyInOverlay(t *testing.T) {
	a, host, surfaces, player := newTestAdapter()

	a.Notify(playback.VideoSizeChange{Width: 1920, Height: 1080})
	assert.Empty(t, host.updated)

	surfaces.overlayActive = true
	surfaces.videoW, surfaces.videoH = 1920, 1080
	player.playing = true
	a.Notify(playback.VideoSizeChange{Width: 1920, Height: 1080})
	a.Notify(playback.ProgressChange{TimeMs: 1000})
	player.playing = false
	a.Notify(playback.PlayingChange{Playing: false})

	require.Len(t, host.updated, 2)
	assert.Equal(t, Rational{16, 9}, host.updated[0].AspectRatio)
	assert.Equal(t, TriggerPause, host.updated[0].Actions[1].Trigger)
	assert.Equal(t, TriggerPlay, host.updated[1].Actions[1].Trigger)
}

func TestAdapter_ModeChangedExitDetachesOverlay(t *testing.T) {
	b := NewBroadcaster()
	a, _, surfaces, _ := newTestAdapter(WithBroadcaster(b))
	changes, stop := b.Listen()
	defer stop()

	mini := screen{}
	require.True(t, a.AttachOverlay(mini))
	a.ModeChanged(true, 320, 180)
	assert.True(t, surfaces.overlayActive)
	assert.Empty(t, surfaces.detached)

	a.ModeChanged(false, 1280, 720)
	assert.False(t, surfaces.overlayActive)
	assert.Equal(t, []decoder.RenderTarget{mini}, surfaces.detached)

	assert.Equal(t, ModeChange{InOverlay: true, Width: 320, Height: 180}, <-changes)
	assert.Equal(t, ModeChange{InOverlay: false, Width: 1280, Height: 720}, <-changes)

	a.ModeChanged(false, 1280, 720)
	assert.Len(t, surfaces.detached, 1, "second exit must not detach again")
}

func TestAdapter_Trigger(t *testing.T) {
	a, _, _, player := newTestAdapter(WithSkipInterval(5*time.Second))

	assert.True(t, a.Trigger(TriggerRewind))
	assert.False(t, a.Trigger("unknown"))
	assert.Equal(t, []string{"seek:-5000"}, player.calls)
}

func TestAdapter_EntryRegistration(t *testing.T) {
	slot := &entrySlot{}
	a, _, _, _ := newTestAdapter(WithEntryRegistry(slot))

	a.SessionAvailabilityChanged(true)
	assert.Same(t, a, slot.handler)

	a.SessionAvailabilityChanged(false)
	assert.Nil(t, slot.handler)
	assert.Equal(t, 2, slot.sets)
}

// End to end with the real bridge: leaving overlay hands the output back.
type mainView struct {
	b      *surface.Bridge
	target decoder.RenderTarget
}

func (m *mainView) SessionAvailabilityChanged(bool) {}
func (m *mainView) SurfaceDetached()                { m.b.Attach(m.target, nil) }

type bridgeSession struct {
	dec *decoder.Mock
}

func (s *bridgeSession) ID() string { return "s" }
func (s *bridgeSession) AttachRenderTarget(t decoder.RenderTarget, l decoder.LayoutFunc) bool {
	return s.dec.AttachViews(t, l) == nil
}
func (s *bridgeSession) DetachRenderTarget()          { s.dec.DetachViews() }
func (s *bridgeSession) SetWindowSize(int, int) error { return nil }

type named string

func (n named) Valid() bool    { return true }
func (n named) String() string { return string(n) }

func TestAdapter_OverlayRoundTripWithBridge(t *testing.T) {
	b := surface.NewBridge(zerolog.Nop())
	host := &fakeHost{available: true}
	a := NewAdapter(host, b, &fakePlayer{playing: true})
	b.AddListener(a)
	main := named("main")
	b.AddListener(&mainView{b: b, target: main})

	sess := &bridgeSession{dec: decoder.NewMock()}
	b.RegisterSession(sess)
	require.True(t, b.Attach(main, nil))

	require.True(t, a.UserLeaveHint())
	require.True(t, a.AttachOverlay(named("mini")))
	a.ModeChanged(true, 320, 180)
	assert.True(t, b.OverlayActive())

	a.ModeChanged(false, 1280, 720)

	assert.False(t, b.OverlayActive())
	assert.Equal(t, main, b.Target())
	assert.Equal(t, []string{
		"attach:main",
		"detach:main",
		"attach:mini",
		"detach:mini",
		"attach:main",
	}, sess.dec.Calls())
}
