package decoder

import (
	"fmt"
	"sync"
)

// Mock is a recording test double for Interface.
type Mock struct {
	mu sync.Mutex

	media     Media
	loaded    bool
	loadErr   error
	playing   bool
	timeMs    int64
	lengthMs  int64
	volume    int
	aspect    string
	tracks    map[TrackType][]Track
	selected  map[TrackType]int
	meta      Metadata
	target    RenderTarget
	layout    LayoutFunc
	windowW   int
	windowH   int
	scaleErr  error
	attachErr error
	handler   func(Event)
	released  bool
	calls     []string
	timeCalls []int64
	posCalls  []float64
	volCalls  []int
}

// NewMock creates a new mock decoder.
func NewMock() *Mock {
	return &Mock{
		volume:   100,
		tracks:   make(map[TrackType][]Track),
		selected: map[TrackType]int{TrackAudio: NoTrack, TrackVideo: NoTrack, TrackText: NoTrack},
	}
}

// MockFactory returns a Factory that hands out m.
func MockFactory(m *Mock) Factory {
	return func(_ []string) (Interface, error) {
		return m, nil
	}
}

func (m *Mock) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *Mock) Load(media Media) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("load:%s", media.Locator)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.media = media
	m.loaded = true
	return nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("play")
	m.playing = true
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("pause")
	m.playing = false
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("stop")
	m.playing = false
}

func (m *Mock) Time() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeMs
}

func (m *Mock) SetTime(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("time:%d", ms)
	m.timeCalls = append(m.timeCalls, ms)
	m.timeMs = ms
}

func (m *Mock) Length() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lengthMs
}

func (m *Mock) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lengthMs <= 0 {
		return 0
	}
	return float64(m.timeMs) / float64(m.lengthMs)
}

func (m *Mock) SetPosition(f float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("position:%g", f)
	m.posCalls = append(m.posCalls, f)
	m.timeMs = int64(f * float64(m.lengthMs))
}

func (m *Mock) Volume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) SetVolume(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volCalls = append(m.volCalls, v)
	m.volume = v
}

func (m *Mock) SetAspectRatio(ratio string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aspect = ratio
}

func (m *Mock) Tracks(t TrackType) []Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Track(nil), m.tracks[t]...)
}

func (m *Mock) SelectTrack(t TrackType, id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("select:%s:%d", t, id)
	m.selected[t] = id
}

func (m *Mock) UnselectTrack(t TrackType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("unselect:%s", t)
	m.selected[t] = NoTrack
}

func (m *Mock) Metadata() Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meta
}

func (m *Mock) AttachViews(target RenderTarget, layout LayoutFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attachErr != nil {
		return m.attachErr
	}
	if m.target != nil {
		// A real output would keep drawing into the old surface.
		return fmt.Errorf("views already attached")
	}
	m.record("attach:%v", target)
	m.target = target
	m.layout = layout
	return nil
}

func (m *Mock) DetachViews() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.target == nil {
		return
	}
	m.record("detach:%v", m.target)
	m.target = nil
	m.layout = nil
}

func (m *Mock) ViewsAttached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target != nil
}

func (m *Mock) SetWindowSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("window:%dx%d", width, height)
	m.windowW, m.windowH = width, height
}

func (m *Mock) SetScale(scale float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("scale:%g", scale)
	return m.scaleErr
}

func (m *Mock) SetEventHandler(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("release")
	m.released = true
	m.handler = nil
	m.target = nil
	m.layout = nil
}

// Test helpers

// Emit delivers e to the installed handler on the caller's goroutine,
// standing in for the decoder event thread.
func (m *Mock) Emit(e Event) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h != nil {
		h(e)
	}
}

// SimulateLayout invokes the layout callback of the attached output.
func (m *Mock) SimulateLayout(width, height int) {
	m.mu.Lock()
	l := m.layout
	m.mu.Unlock()
	if l != nil {
		l(width, height)
	}
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetAttachError makes AttachViews fail, like an audio-only output.
func (m *Mock) SetAttachError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachErr = err
}

func (m *Mock) SetScaleError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scaleErr = err
}

func (m *Mock) SetTimes(timeMs, lengthMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeMs, m.lengthMs = timeMs, lengthMs
}

func (m *Mock) SetTracks(t TrackType, tracks ...Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks[t] = tracks
}

func (m *Mock) SetMetadata(meta Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta = meta
}

func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Mock) TimeCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.timeCalls...)
}

func (m *Mock) PositionCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.posCalls...)
}

func (m *Mock) VolumeCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.volCalls...)
}

func (m *Mock) Selected(t TrackType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected[t]
}

func (m *Mock) Target() RenderTarget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

func (m *Mock) Media() Media {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.media
}

func (m *Mock) AspectRatio() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aspect
}

// Handler returns the installed event handler.
func (m *Mock) Handler() func(Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handler
}

func (m *Mock) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
