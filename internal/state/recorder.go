package state

import "github.com/llehouerou/handoff/internal/playback"

// VolumeRecorder persists every mixer change it observes.
type VolumeRecorder struct {
	store Interface
}

// NewVolumeRecorder returns an observer saving into store.
func NewVolumeRecorder(store Interface) *VolumeRecorder {
	return &VolumeRecorder{store: store}
}

// Notify implements playback.Observer.
func (r *VolumeRecorder) Notify(n playback.Notification) {
	if v, ok := n.(playback.VolumeChange); ok {
		r.store.SaveVolume(v.Volume, v.Muted)
	}
}

// Initial returns the volume to start with: the saved state when there is
// one, fallback otherwise.
func Initial(store Interface, fallback int) (volume int, muted bool, err error) {
	saved, err := store.GetVolume()
	if err != nil || saved == nil {
		return fallback, false, err
	}
	return saved.Volume, saved.Muted, nil
}

var _ playback.Observer = (*VolumeRecorder)(nil)
