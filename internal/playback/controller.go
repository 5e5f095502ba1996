package playback

import (
	"context"
	"math"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/decoder"
	"github.com/llehouerou/handoff/internal/errmsg"
	"github.com/llehouerou/handoff/internal/surface"
)

const (
	minVolume = 0
	maxVolume = 100
)

// LoadRequest describes the media to load.
type LoadRequest struct {
	Locator      string
	Remote       bool
	Title        string // empty falls back to decoder metadata, then the locator
	InitOptions  []string
	MediaOptions []string
	HWAccel      *decoder.HWAccel
}

// SessionRegistry is told about every session the controller creates and
// tears down. The surface bridge implements it.
type SessionRegistry interface {
	RegisterSession(s surface.Session)
	UnregisterSession(s surface.Session)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.With().Str("component", "controller").Logger()
	}
}

// WithSessionRegistry registers every loaded session with r.
func WithSessionRegistry(r SessionRegistry) Option {
	return func(c *Controller) {
		c.sessions = r
	}
}

// WithInitialVolume sets the volume applied to the first decoder.
func WithInitialVolume(volume int, muted bool) Option {
	return func(c *Controller) {
		c.volume = clampVolume(volume)
		c.muted = muted
	}
}

// Controller owns the single live decoder. Control calls forward to the
// decoder and never fail; decoder events come back through a mailbox and
// are applied to the state and fanned out on one delivery goroutine.
//
// Lock order: loadMu, then mu, then stateMu.
type Controller struct {
	logger   zerolog.Logger
	factory  decoder.Factory
	sessions SessionRegistry

	// loadMu serializes Load, Unload and Release, including the calls into
	// the session registry, so that mu is never held across them.
	loadMu sync.Mutex

	mu       sync.Mutex
	dec      decoder.Interface // guarded by mu
	session  *Session          // guarded by mu
	volume   int               // guarded by mu
	muted    bool              // guarded by mu
	released bool              // guarded by mu

	stateMu sync.RWMutex
	state   State // guarded by stateMu

	// gen identifies the current session. Teardown bumps it under stateMu,
	// which turns every queued event of the old decoder stale.
	gen atomic.Uint64

	observers *Registry
	subsMu    sync.Mutex
	subs      map[*Subscription]struct{}

	box  *mailbox
	stop chan struct{}
	done chan struct{}
}

// New creates a controller with no media loaded and starts its delivery
// goroutine. Call Release to stop it.
func New(factory decoder.Factory, opts ...Option) *Controller {
	c := &Controller{
		logger:    zerolog.Nop(),
		factory:   factory,
		volume:    maxVolume,
		state:     defaultState(),
		observers: NewRegistry(),
		subs:      make(map[*Subscription]struct{}),
		box:       newMailbox(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	c.gen.Store(1)
	for _, opt := range opts {
		opt(c)
	}
	go c.run()
	return c
}

// Load tears down the current media, if any, and opens req with a fresh
// decoder. Failures leave the controller unloaded and are reported as an
// ErrorEvent.
func (c *Controller) Load(req LoadRequest) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	if c.isReleased() {
		return
	}
	c.unload()

	c.mu.Lock()
	gen := c.gen.Load()
	log := c.logger.With().Str("locator", req.Locator).Logger()

	dec, err := c.factory(req.InitOptions)
	if err != nil {
		c.mu.Unlock()
		log.Error().Err(err).Msg("load: decoder init failed")
		c.post(item{gen: gen, note: ErrorEvent{Message: errmsg.Format(errmsg.OpDecoderInit, err)}})
		return
	}

	dec.SetEventHandler(func(e decoder.Event) {
		c.box.put(item{gen: gen, event: e})
	})
	media := decoder.Media{
		Locator: req.Locator,
		Remote:  req.Remote,
		Options: req.MediaOptions,
		HWAccel: req.HWAccel,
	}
	if err := dec.Load(media); err != nil {
		dec.SetEventHandler(nil)
		dec.Release()
		c.mu.Unlock()
		log.Error().Err(err).Msg("load: media rejected")
		c.post(item{gen: gen, note: ErrorEvent{Message: errmsg.FormatWith(errmsg.OpMediaLoad, req.Locator, err)}})
		return
	}
	dec.SetVolume(c.effectiveVolumeLocked())

	sess := newSession(dec, gen, c.box.put, c.logger)
	c.dec = dec
	c.session = sess

	length := max(dec.Length(), 0)
	c.stateMu.Lock()
	c.state = State{
		Loaded:      true,
		Locator:     req.Locator,
		Title:       mediaTitle(req, dec.Metadata()),
		Status:      StatusStopped,
		IsPaused:    true,
		DurationMs:  length,
		AudioTracks: trackInfos(dec.Tracks(decoder.TrackAudio)),
		TextTracks:  trackInfos(dec.Tracks(decoder.TrackText)),
		VideoTracks: trackInfos(dec.Tracks(decoder.TrackVideo)),
	}
	info := c.snapshotLocked()
	c.stateMu.Unlock()
	c.mu.Unlock()

	log.Debug().Str("session", sess.ID()).Int64("duration_ms", length).Msg("load")
	c.post(item{gen: gen, note: MediaLoaded{Info: info}})

	if c.sessions != nil {
		c.sessions.RegisterSession(sess)
	}
}

// Unload tears down the current media. Safe to call repeatedly.
func (c *Controller) Unload() {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	if c.isReleased() {
		return
	}
	c.unload()
}

// Release unloads and stops the delivery goroutine. Subscriptions are
// closed and observers dropped. Every later call is a no-op.
func (c *Controller) Release() {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	if c.isReleased() {
		return
	}
	c.unload()

	c.mu.Lock()
	c.released = true
	c.mu.Unlock()

	close(c.stop)
	c.box.close()
	c.observers.Clear()

	c.subsMu.Lock()
	for sub := range c.subs {
		sub.close()
	}
	clear(c.subs)
	c.subsMu.Unlock()

	c.logger.Debug().Msg("released")
}

// unload unregisters the live session and resets everything. loadMu must
// be held.
func (c *Controller) unload() {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()

	if sess != nil && c.sessions != nil {
		c.sessions.UnregisterSession(sess)
	}

	c.mu.Lock()
	wasLoaded := c.dec != nil
	c.teardownLocked()
	c.mu.Unlock()

	if wasLoaded {
		c.post(item{gen: c.gen.Load(), note: MediaUnloaded{}})
	}
}

func (c *Controller) teardownLocked() {
	if c.session != nil {
		c.session.release()
		c.session = nil
	}
	if c.dec != nil {
		c.dec.SetEventHandler(nil)
		c.dec.Stop()
		c.dec.Release()
		c.dec = nil
		c.logger.Debug().Msg("teardown")
	}

	c.stateMu.Lock()
	c.gen.Add(1)
	c.state = defaultState()
	c.stateMu.Unlock()
}

func (c *Controller) isReleased() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// Play starts or resumes output. No-op when nothing is loaded.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dec == nil {
		return
	}
	c.logger.Debug().Msg("play()")
	c.dec.Play()
}

// Pause pauses output. No-op when nothing is loaded.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dec == nil {
		return
	}
	c.logger.Debug().Msg("pause()")
	c.dec.Pause()
}

// TogglePlayPause pauses while playing and plays otherwise.
func (c *Controller) TogglePlayPause() {
	if c.IsPlaying() {
		c.Pause()
		return
	}
	c.Play()
}

// Stop stops output and rewinds the clock. The media stays loaded.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dec == nil {
		return
	}
	c.logger.Debug().Msg("stop()")
	c.dec.Stop()

	c.stateMu.Lock()
	c.state.Status = StatusStopped
	c.state.IsPlaying = false
	c.state.IsPaused = true
	c.state.TimeMs = 0
	c.state.Position = 0
	c.stateMu.Unlock()
}

// SeekToFraction seeks to f of the duration. f is clamped to [0,1].
func (c *Controller) SeekToFraction(f float64) {
	switch {
	case math.IsNaN(f) || f < 0:
		f = 0
	case f > 1:
		f = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dec == nil {
		return
	}
	c.logger.Debug().Float64("position", f).Msg("seekToFraction")
	c.dec.SetPosition(f)
}

// SeekByOffsetMs moves the clock by delta. The target is clamped to
// [0, duration], or only to 0 while the duration is unknown.
func (c *Controller) SeekByOffsetMs(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dec == nil {
		return
	}

	duration := c.dec.Length()
	if duration <= 0 {
		c.stateMu.RLock()
		duration = c.state.DurationMs
		c.stateMu.RUnlock()
	}
	target := clampTime(addSaturating(c.dec.Time(), delta), duration)

	c.logger.Debug().Int64("delta_ms", delta).Int64("target_ms", target).Msg("seekByMs")
	c.dec.SetTime(target)
}

// SetVolume sets the remembered volume, clamped to [0,100]. While muted the
// output stays silent and the new value is what unmute restores.
func (c *Controller) SetVolume(volume int) {
	volume = clampVolume(volume)

	c.mu.Lock()
	c.volume = volume
	muted := c.muted
	if c.dec != nil && !muted {
		c.dec.SetVolume(volume)
	}
	c.mu.Unlock()

	c.logger.Debug().Int("volume", volume).Bool("muted", muted).Msg("setVolume")
	c.post(item{note: VolumeChange{Volume: volume, Muted: muted}})
}

// SetMuted mutes or unmutes. Unmute restores the remembered volume.
func (c *Controller) SetMuted(muted bool) {
	c.mu.Lock()
	if c.muted == muted {
		c.mu.Unlock()
		return
	}
	c.muted = muted
	volume := c.volume
	if c.dec != nil {
		c.dec.SetVolume(c.effectiveVolumeLocked())
	}
	c.mu.Unlock()

	c.logger.Debug().Bool("muted", muted).Msg("setMuted")
	c.post(item{note: VolumeChange{Volume: volume, Muted: muted}})
}

// ToggleMute flips the mute flag.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	muted := c.muted
	c.mu.Unlock()
	c.SetMuted(!muted)
}

// Volume returns the remembered volume and the mute flag as one pair.
func (c *Controller) Volume() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume, c.muted
}

func (c *Controller) effectiveVolumeLocked() int {
	if c.muted {
		return 0
	}
	return c.volume
}

// SelectAudioTrack selects the audio track id. Unknown ids are ignored.
func (c *Controller) SelectAudioTrack(id int) {
	c.selectTrack(decoder.TrackAudio, id)
}

// SelectTextTrack selects the text track id; decoder.NoTrack clears the
// selection. Unknown ids are ignored.
func (c *Controller) SelectTextTrack(id int) {
	c.selectTrack(decoder.TrackText, id)
}

func (c *Controller) selectTrack(t decoder.TrackType, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dec == nil {
		return
	}

	if t == decoder.TrackText && id == decoder.NoTrack {
		c.logger.Debug().Stringer("type", t).Msg("unselectTrack")
		c.dec.UnselectTrack(t)
		return
	}

	c.stateMu.RLock()
	known := hasTrack(c.tracksLocked(t), id)
	c.stateMu.RUnlock()
	if !known {
		c.logger.Debug().Stringer("type", t).Int("id", id).Msg("selectTrack: unknown id ignored")
		return
	}
	c.logger.Debug().Stringer("type", t).Int("id", id).Msg("selectTrack")
	c.dec.SelectTrack(t, id)
}

func (c *Controller) tracksLocked(t decoder.TrackType) []TrackInfo {
	switch t {
	case decoder.TrackAudio:
		return c.state.AudioTracks
	case decoder.TrackText:
		return c.state.TextTracks
	case decoder.TrackVideo:
		return c.state.VideoTracks
	default:
		return nil
	}
}

func hasTrack(tracks []TrackInfo, id int) bool {
	for _, t := range tracks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// SetAspectRatio forces the output aspect ratio ("16:9"); empty restores
// the source ratio.
func (c *Controller) SetAspectRatio(ratio string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dec == nil {
		return
	}
	c.logger.Debug().Str("ratio", ratio).Msg("setAspectRatio")
	c.dec.SetAspectRatio(ratio)
}

// SetTitle replaces the title of the loaded media and emits MetadataChange.
func (c *Controller) SetTitle(title string) {
	c.stateMu.Lock()
	if !c.state.Loaded || c.state.Title == title {
		c.stateMu.Unlock()
		return
	}
	c.state.Title = title
	gen := c.gen.Load()
	c.stateMu.Unlock()

	c.post(item{gen: gen, note: MetadataChange{Title: title}})
}

// AttachRenderTarget binds target to the live session's output. Prefer the
// surface bridge, which keeps the exclusive-attachment bookkeeping.
func (c *Controller) AttachRenderTarget(target decoder.RenderTarget, layout decoder.LayoutFunc) bool {
	sess := c.Session()
	if sess == nil {
		return false
	}
	return sess.AttachRenderTarget(target, layout)
}

// DetachRenderTarget unbinds the live session's output.
func (c *Controller) DetachRenderTarget() {
	if sess := c.Session(); sess != nil {
		sess.DetachRenderTarget()
	}
}

// SetWindowSize forwards the output size. Refit failures are logged.
func (c *Controller) SetWindowSize(width, height int) {
	sess := c.Session()
	if sess == nil {
		return
	}
	if err := sess.SetWindowSize(width, height); err != nil {
		c.logger.Warn().Err(err).Msg("setWindowSize: refit failed")
	}
}

// Session returns the live session, or nil when nothing is loaded.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// MediaInfo returns a snapshot of the loaded media, or false when nothing
// is loaded.
func (c *Controller) MediaInfo() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if !c.state.Loaded {
		return Snapshot{}, false
	}
	return c.snapshotLocked(), true
}

// snapshotLocked needs mu and stateMu.
func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:  c.state.clone(),
		Volume: c.volume,
		Muted:  c.muted,
	}
}

// IsPlaying reports whether the decoder last said it is playing.
func (c *Controller) IsPlaying() bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state.IsPlaying
}

// Status returns the transport status.
func (c *Controller) Status() Status {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state.Status
}

// VideoSize returns the video dimensions reported by the output, 0x0 when
// unknown.
func (c *Controller) VideoSize() (int, int) {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state.VideoWidth, c.state.VideoHeight
}

// AddObserver subscribes o to notifications. See Registry.Add.
func (c *Controller) AddObserver(o Observer) bool {
	return c.observers.Add(o)
}

// RemoveObserver unsubscribes o. Safe to call from inside Notify.
func (c *Controller) RemoveObserver(o Observer) bool {
	return c.observers.Remove(o)
}

// Subscribe returns a channel-backed subscription. It is closed by
// Unsubscribe or Release.
func (c *Controller) Subscribe() *Subscription {
	sub := newSubscription()
	if c.isReleased() {
		sub.close()
		return sub
	}
	c.subsMu.Lock()
	c.subs[sub] = struct{}{}
	c.subsMu.Unlock()
	c.observers.Add(sub)
	return sub
}

// Unsubscribe removes and closes sub.
func (c *Controller) Unsubscribe(sub *Subscription) {
	c.observers.Remove(sub)

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	if _, ok := c.subs[sub]; !ok {
		return
	}
	delete(c.subs, sub)
	sub.close()
}

// Sync waits until every notification queued before the call has been
// delivered, or ctx is done.
func (c *Controller) Sync(ctx context.Context) error {
	ack := make(chan struct{})
	c.post(item{ack: ack})
	select {
	case <-ack:
		return nil
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) post(it item) {
	c.box.put(it)
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		case <-c.box.ready:
		}
		for _, it := range c.box.take() {
			select {
			case <-c.stop:
				return
			default:
			}
			c.deliver(it)
		}
	}
}

func (c *Controller) deliver(it item) {
	if it.ack != nil {
		close(it.ack)
		return
	}

	c.stateMu.Lock()
	if it.gen != 0 && it.gen != c.gen.Load() {
		c.stateMu.Unlock()
		c.logger.Debug().Uint64("gen", it.gen).Msg("dropping stale event")
		return
	}
	n := it.note
	if it.event != nil {
		n = c.applyLocked(it.event)
	}
	c.stateMu.Unlock()

	if n != nil {
		c.observers.Notify(n)
	}
}

// applyLocked folds a decoder event into the state and returns the
// notification to fan out, or nil. stateMu must be held.
func (c *Controller) applyLocked(e decoder.Event) Notification {
	s := &c.state
	switch e := e.(type) {
	case decoder.Playing:
		s.Status = StatusPlaying
		s.IsPlaying = true
		s.IsPaused = false
		return PlayingChange{Playing: true}

	case decoder.Paused:
		s.Status = StatusPaused
		s.IsPlaying = false
		s.IsPaused = true
		return PlayingChange{Playing: false}

	case decoder.Stopped:
		s.Status = StatusStopped
		s.IsPlaying = false
		s.IsPaused = true
		return StopEvent{}

	case decoder.EndReached:
		s.Status = StatusStopped
		s.IsPlaying = false
		return EndEvent{}

	case decoder.EncounteredError:
		c.logger.Error().Str("message", e.Message).Msg("decoder error")
		return ErrorEvent{Message: e.Message}

	case decoder.Buffering:
		return BufferingChange{Buffering: e.Percent < 100, Percent: e.Percent}

	case decoder.TimeChanged:
		if e.LengthMs > 0 {
			s.DurationMs = e.LengthMs
		}
		s.TimeMs = clampTime(e.TimeMs, s.DurationMs)
		s.Position = clampFraction(e.Position)
		return ProgressChange{Position: s.Position, TimeMs: s.TimeMs, DurationMs: s.DurationMs}

	case decoder.VideoLayoutChanged:
		if e.Width <= 0 || e.Height <= 0 {
			return nil
		}
		s.VideoWidth = e.Width
		s.VideoHeight = e.Height
		return VideoSizeChange{Width: e.Width, Height: e.Height}

	default:
		return nil
	}
}

func clampVolume(v int) int {
	return min(max(v, minVolume), maxVolume)
}

func clampFraction(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return min(max(f, 0), 1)
}

// clampTime bounds ms to [0, duration]; duration <= 0 means unknown and
// leaves the upper end open.
func clampTime(ms, duration int64) int64 {
	if ms < 0 {
		return 0
	}
	if duration > 0 && ms > duration {
		return duration
	}
	return ms
}

func addSaturating(a, b int64) int64 {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return math.MaxInt64
	case b < 0 && sum > a:
		return math.MinInt64
	}
	return sum
}

func mediaTitle(req LoadRequest, meta decoder.Metadata) string {
	if t := strings.TrimSpace(req.Title); t != "" {
		return t
	}
	if t := strings.TrimSpace(meta.Title); t != "" {
		return t
	}
	if req.Remote {
		if u, err := url.Parse(req.Locator); err == nil && u.Path != "" && u.Path != "/" {
			return path.Base(u.Path)
		}
		return req.Locator
	}
	return filepath.Base(req.Locator)
}
