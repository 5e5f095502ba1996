package state

import (
	"database/sql"
	"errors"
	"time"
)

// VolumeState represents the saved mixer state. Volume is in [0,100].
type VolumeState struct {
	Volume int
	Muted  bool
}

// GetVolume returns the saved mixer state, or nil if none was saved.
func (m *Manager) GetVolume() (*VolumeState, error) {
	m.saveMu.Lock()
	pending := m.pending
	m.saveMu.Unlock()
	if pending != nil {
		v := *pending
		return &v, nil
	}
	return getVolume(m.db)
}

// SaveVolume records the mixer state. Writes are debounced; Close flushes.
func (m *Manager) SaveVolume(volume int, muted bool) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &VolumeState{Volume: volume, Muted: muted}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func getVolume(db *sql.DB) (*VolumeState, error) {
	var v VolumeState
	row := db.QueryRow(`SELECT volume, muted FROM mixer_state WHERE id = 1`)
	err := row.Scan(&v.Volume, &v.Muted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func saveVolume(db *sql.DB, v VolumeState) error {
	_, err := db.Exec(`
		INSERT INTO mixer_state (id, volume, muted, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted,
			updated_at = excluded.updated_at
	`, v.Volume, v.Muted, time.Now().Unix())
	return err
}
