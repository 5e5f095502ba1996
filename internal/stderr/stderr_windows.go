//go:build windows

// Package stderr is a no-op on Windows, where the audio output does not
// write to the console.
package stderr

import "github.com/rs/zerolog"

// Capture is a placeholder on Windows.
type Capture struct{}

// Start does nothing on Windows.
func Start(zerolog.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// Stop does nothing on Windows.
func (c *Capture) Stop() {}
