// Package audio is a decoder backend for local audio files built on beep.
// It has no video output: render targets are refused and layout events
// never fire.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/decoder"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"

	tickInterval = 250 * time.Millisecond
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Decoder plays one local mp3 or flac file through the system speaker.
type Decoder struct {
	logger zerolog.Logger

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    int // [0,100]
	meta     decoder.Metadata
	started  bool
	playing  bool
	aspect   string
	handler  func(decoder.Event)
	released bool

	ended chan struct{}
	quit  chan struct{}
}

// Factory returns a decoder.Factory building audio decoders. Init options
// are accepted and ignored.
func Factory(logger zerolog.Logger) decoder.Factory {
	return func(_ []string) (decoder.Interface, error) {
		return New(logger), nil
	}
}

// New creates an idle decoder and starts its clock goroutine.
func New(logger zerolog.Logger) *Decoder {
	d := &Decoder{
		logger: logger.With().Str("component", "audio").Logger(),
		level:  100,
		ended:  make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
	go d.loop()
	return d
}

// Supported reports whether locator names a file this backend can open.
func Supported(locator string) bool {
	ext := strings.ToLower(filepath.Ext(locator))
	return ext == extMP3 || ext == extFLAC
}

func (d *Decoder) Load(m decoder.Media) error {
	if m.Remote || !Supported(m.Locator) {
		return fmt.Errorf("%w: %s", decoder.ErrUnsupportedMedia, m.Locator)
	}

	f, err := os.Open(m.Locator)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(m.Locator)) {
	case extMP3:
		streamer, format, err = mp3.Decode(f)
	case extFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err := skipID3v2(f); err != nil {
			f.Close()
			return err
		}
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		f.Close()
		return err
	}

	meta, _ := readMetadata(m.Locator)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeLocked()
	d.file = f
	d.streamer = streamer
	d.format = format
	d.meta = meta
	d.logger.Debug().Str("path", m.Locator).Int("sample_rate", int(format.SampleRate)).Msg("loaded")
	return nil
}

func (d *Decoder) Play() {
	d.mu.Lock()
	if d.streamer == nil || d.playing {
		d.mu.Unlock()
		return
	}
	if !d.started {
		if err := d.startLocked(); err != nil {
			d.mu.Unlock()
			d.logger.Error().Err(err).Msg("speaker init failed")
			d.emit(decoder.EncounteredError{Message: err.Error()})
			return
		}
	} else {
		speaker.Lock()
		d.ctrl.Paused = false
		speaker.Unlock()
	}
	d.playing = true
	d.mu.Unlock()

	d.emit(decoder.Playing{})
}

// startLocked hands the stream to the speaker, resampling to the speaker
// rate when needed.
func (d *Decoder) startLocked() error {
	rate, err := initSpeaker(d.format.SampleRate)
	if err != nil {
		return err
	}

	var s beep.Streamer = d.streamer
	if d.format.SampleRate != rate {
		s = beep.Resample(4, d.format.SampleRate, rate, d.streamer)
	}
	d.ctrl = &beep.Ctrl{Streamer: s}
	d.volume = &effects.Volume{Streamer: d.ctrl, Base: 2}
	d.applyVolumeLocked()

	ended := d.ended
	speaker.Play(beep.Seq(d.volume, beep.Callback(func() {
		select {
		case ended <- struct{}{}:
		default:
		}
	})))
	d.started = true
	return nil
}

func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return rate, nil
}

func (d *Decoder) Pause() {
	d.mu.Lock()
	if !d.playing || d.ctrl == nil {
		d.mu.Unlock()
		return
	}
	speaker.Lock()
	d.ctrl.Paused = true
	speaker.Unlock()
	d.playing = false
	d.mu.Unlock()

	d.emit(decoder.Paused{})
}

// Stop halts output and rewinds to the start. The file stays loaded.
func (d *Decoder) Stop() {
	d.mu.Lock()
	if d.streamer == nil {
		d.mu.Unlock()
		return
	}
	d.stopOutputLocked()
	speaker.Lock()
	err := d.streamer.Seek(0)
	speaker.Unlock()
	d.mu.Unlock()

	if err != nil {
		d.logger.Warn().Err(err).Msg("rewind failed")
	}
	d.emit(decoder.Stopped{})
}

func (d *Decoder) stopOutputLocked() {
	if d.started {
		speaker.Clear()
	}
	d.started = false
	d.playing = false
	d.ctrl = nil
	d.volume = nil
}

func (d *Decoder) Time() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := d.format.SampleRate.D(d.streamer.Position())
	speaker.Unlock()
	return pos.Milliseconds()
}

func (d *Decoder) Length() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil {
		return 0
	}
	return d.format.SampleRate.D(d.streamer.Len()).Milliseconds()
}

func (d *Decoder) Position() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streamer == nil || d.streamer.Len() == 0 {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return float64(d.streamer.Position()) / float64(d.streamer.Len())
}

func (d *Decoder) SetTime(ms int64) {
	d.mu.Lock()
	if d.streamer == nil {
		d.mu.Unlock()
		return
	}
	d.seekLocked(d.format.SampleRate.N(time.Duration(ms) * time.Millisecond))
	d.mu.Unlock()
	d.emitTime()
}

func (d *Decoder) SetPosition(f float64) {
	d.mu.Lock()
	if d.streamer == nil {
		d.mu.Unlock()
		return
	}
	d.seekLocked(int(f * float64(d.streamer.Len())))
	d.mu.Unlock()
	d.emitTime()
}

func (d *Decoder) seekLocked(sample int) {
	sample = min(max(sample, 0), d.streamer.Len())
	speaker.Lock()
	err := d.streamer.Seek(sample)
	speaker.Unlock()
	if err != nil {
		d.logger.Warn().Err(err).Int("sample", sample).Msg("seek failed")
	}
}

func (d *Decoder) Volume() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.level
}

func (d *Decoder) SetVolume(v int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.level = min(max(v, 0), 100)
	d.applyVolumeLocked()
}

func (d *Decoder) applyVolumeLocked() {
	if d.volume == nil {
		return
	}
	speaker.Lock()
	d.volume.Volume = levelToVolume(float64(d.level) / 100)
	d.volume.Silent = d.level == 0
	speaker.Unlock()
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume value.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent)
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// SetAspectRatio is recorded for completeness; there is no picture.
func (d *Decoder) SetAspectRatio(ratio string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.aspect = ratio
}

// Tracks returns the single audio track of a loaded file.
func (d *Decoder) Tracks(t decoder.TrackType) []decoder.Track {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t != decoder.TrackAudio || d.streamer == nil {
		return nil
	}
	return []decoder.Track{{ID: 0, Name: fmt.Sprintf("Audio (%d Hz)", d.format.SampleRate)}}
}

func (d *Decoder) SelectTrack(decoder.TrackType, int) {}

func (d *Decoder) UnselectTrack(decoder.TrackType) {}

func (d *Decoder) Metadata() decoder.Metadata {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.meta
}

func (d *Decoder) AttachViews(decoder.RenderTarget, decoder.LayoutFunc) error {
	return decoder.ErrNoVideoOutput
}

func (d *Decoder) DetachViews() {}

func (d *Decoder) ViewsAttached() bool { return false }

func (d *Decoder) SetWindowSize(int, int) {}

func (d *Decoder) SetScale(float64) error {
	return decoder.ErrNoVideoOutput
}

func (d *Decoder) SetEventHandler(fn func(decoder.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = fn
}

// Release stops output, closes the file and ends the clock goroutine.
func (d *Decoder) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return
	}
	d.released = true
	d.closeLocked()
	d.handler = nil
	close(d.quit)
}

func (d *Decoder) closeLocked() {
	d.stopOutputLocked()
	if d.streamer != nil {
		d.streamer.Close()
		d.streamer = nil
	}
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
	d.meta = decoder.Metadata{}
}

func (d *Decoder) emit(e decoder.Event) {
	d.mu.Lock()
	h := d.handler
	d.mu.Unlock()
	if h != nil {
		h(e)
	}
}

func (d *Decoder) emitTime() {
	d.mu.Lock()
	if d.streamer == nil {
		d.mu.Unlock()
		return
	}
	speaker.Lock()
	pos, n := d.streamer.Position(), d.streamer.Len()
	speaker.Unlock()
	rate := d.format.SampleRate
	d.mu.Unlock()

	e := decoder.TimeChanged{
		TimeMs:   rate.D(pos).Milliseconds(),
		LengthMs: rate.D(n).Milliseconds(),
	}
	if n > 0 {
		e.Position = float64(pos) / float64(n)
	}
	d.emit(e)
}

// loop reports the clock while playing and the end of stream.
func (d *Decoder) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-d.quit:
			return
		case <-ticker.C:
			d.mu.Lock()
			playing := d.playing
			d.mu.Unlock()
			if playing {
				d.emitTime()
			}
		case <-d.ended:
			d.mu.Lock()
			d.started = false
			d.playing = false
			d.ctrl = nil
			d.volume = nil
			d.mu.Unlock()
			d.emitTime()
			d.emit(decoder.EndReached{})
		}
	}
}

// Verify Decoder implements decoder.Interface at compile time.
var _ decoder.Interface = (*Decoder)(nil)
