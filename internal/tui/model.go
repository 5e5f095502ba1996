// Package tui is the terminal host: it owns the main and the overlay panes
// and turns key presses into controller commands and surface handoffs.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/handoff/internal/keymap"
	"github.com/llehouerou/handoff/internal/overlay"
	"github.com/llehouerou/handoff/internal/playback"
	"github.com/llehouerou/handoff/internal/surface"
	"github.com/llehouerou/handoff/internal/ui/playerbar"
)

const volumeStep = 5

// aspectCycle lists the aspect overrides the aspect key steps through;
// "" restores the media's own ratio.
var aspectCycle = []string{"", "16:9", "4:3", "21:9"}

// Deps are the collaborators of the terminal model.
type Deps struct {
	Controller   *playback.Controller
	Bridge       *surface.Bridge
	Overlay      *overlay.Adapter
	Host         *Host
	Main         *Pane
	Mini         *Pane
	SkipInterval time.Duration
}

// Model is the bubbletea model of the terminal host.
type Model struct {
	ctrl    *playback.Controller
	bridge  *surface.Bridge
	overlay *overlay.Adapter
	host    *Host
	sub     *playback.Subscription
	keys    *keymap.Resolver
	help    help.Model
	main    *Pane
	mini    *Pane
	skip    time.Duration

	bar       playerbar.State
	actions   []overlay.Action
	inOverlay bool
	status    string

	audioIdx  int
	textIdx   int
	aspectIdx int

	Width  int
	Height int
}

// New creates the model and subscribes it to the controller.
func New(d Deps) Model {
	skip := d.SkipInterval
	if skip <= 0 {
		skip = overlay.DefaultSkipInterval
	}
	m := Model{
		ctrl:    d.Controller,
		bridge:  d.Bridge,
		overlay: d.Overlay,
		host:    d.Host,
		sub:     d.Controller.Subscribe(),
		keys:    keymap.NewResolver(keymap.All),
		help:    help.New(),
		main:    d.Main,
		mini:    d.Mini,
		skip:    skip,
		textIdx: -1,
	}
	if info, ok := d.Controller.MediaInfo(); ok {
		m.bar = playerbar.NewState(info)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(watchSubscription(m.sub), watchProgress(m.sub))
}

// InOverlay reports whether the overlay pane is shown.
func (m Model) InOverlay() bool { return m.inOverlay }

// Status returns the last status line.
func (m Model) Status() string { return m.status }
