//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/handoff/internal/errmsg"
	"github.com/llehouerou/handoff/internal/playback"
)

// Adapter exposes the playback controller over MPRIS on the session bus.
type Adapter struct {
	*Session

	server *server.Server
	logger zerolog.Logger
}

// New creates and starts a new MPRIS adapter. The returned adapter must be
// registered as a controller observer to publish state.
func New(ctrl Controller, skip time.Duration, logger zerolog.Logger) (*Adapter, error) {
	a := &Adapter{
		Session: NewSession(ctrl, skip),
		logger:  logger.With().Str("component", "mpris").Logger(),
	}

	root := &rootAdapter{}
	player := &playerAdapter{session: a.Session, ctrl: ctrl}
	a.server = server.NewServer("handoff", root, player)

	go func() {
		if err := a.server.Listen(); err != nil {
			a.logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpSessionBus, err))
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error            { return nil }
func (r *rootAdapter) Quit() error             { return nil }
func (r *rootAdapter) CanQuit() (bool, error)  { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Handoff", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "video/mp4", "video/x-matroska", "video/webm"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	session *Session
	ctrl    Controller
}

// Next and Previous skip within the media: there is no queue.
func (p *playerAdapter) Next() error {
	p.session.FastForward()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.session.Rewind()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.ctrl.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.ctrl.TogglePlayPause()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.ctrl.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	p.ctrl.Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.ctrl.SeekByOffsetMs(int64(offset) / 1000)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.session.SeekTo(int64(position) / 1000)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap, _ := p.session.Snapshot()
	switch snap.Status {
	case playback.StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatusPaused:
		return types.PlaybackStatusPaused, nil
	case playback.StatusStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap, ok := p.session.Snapshot()
	if !ok {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.Locator)),
		Length:  types.Microseconds(snap.DurationMs * 1000),
		Title:   snap.Title,
	}
	if art := FindArtwork(snap.Locator); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.session.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.session.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	snap, _ := p.session.Snapshot()
	return snap.TimeMs * 1000, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error)     { return p.loaded(), nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return p.loaded(), nil }
func (p *playerAdapter) CanPlay() (bool, error)       { return p.loaded(), nil }
func (p *playerAdapter) CanPause() (bool, error)      { return p.loaded(), nil }
func (p *playerAdapter) CanControl() (bool, error)    { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) {
	snap, ok := p.session.Snapshot()
	return ok && snap.DurationMs > 0, nil
}

func (p *playerAdapter) loaded() bool {
	_, ok := p.session.Snapshot()
	return ok
}

func formatTrackID(locator string) string {
	h := fnv.New64a()
	h.Write([]byte(locator))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
