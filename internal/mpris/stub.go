//go:build !linux

package mpris

import (
	"time"

	"github.com/rs/zerolog"
)

// Adapter only tracks state on non-Linux platforms.
type Adapter struct {
	*Session
}

// New returns an adapter without a bus connection on non-Linux platforms.
func New(ctrl Controller, skip time.Duration, _ zerolog.Logger) (*Adapter, error) {
	return &Adapter{Session: NewSession(ctrl, skip)}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
