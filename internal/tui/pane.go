package tui

import "sync/atomic"

// Pane is a terminal region that can receive the decoded output.
type Pane struct {
	name string
	gone atomic.Bool
}

// NewPane creates a live pane.
func NewPane(name string) *Pane {
	return &Pane{name: name}
}

// Valid implements decoder.RenderTarget.
func (p *Pane) Valid() bool { return !p.gone.Load() }

func (p *Pane) String() string { return p.name }

// Destroy marks the pane as torn down; attaching it fails afterwards.
func (p *Pane) Destroy() { p.gone.Store(true) }

// Revive makes a destroyed pane attachable again.
func (p *Pane) Revive() { p.gone.Store(false) }
