// Package layout provides pure functions for UI dimension calculations.
package layout

const (
	// HeaderHeight is the header bar above the main view.
	HeaderHeight = 1
	// FooterHeight is the status or help line under the player bar.
	FooterHeight = 1

	// MinOverlayWidth is the narrowest terminal that can show the overlay.
	MinOverlayWidth = 30
	// MaxOverlayWidth caps the overlay pane on wide terminals.
	MaxOverlayWidth = 44
	// OverlayHeight is the overlay pane height, borders included.
	OverlayHeight = 5
)

// MainSize returns the size of the main view: the window minus the header,
// the player bar and the footer.
func MainSize(windowWidth, windowHeight, barHeight int) (int, int) {
	return max(windowWidth, 0), max(windowHeight-HeaderHeight-barHeight-FooterHeight, 0)
}

// OverlayFits reports whether a window this wide can show the overlay.
func OverlayFits(windowWidth int) bool {
	return windowWidth >= MinOverlayWidth
}

// OverlaySize returns the overlay pane size: half the window, kept within
// [MinOverlayWidth, MaxOverlayWidth].
func OverlaySize(windowWidth int) (int, int) {
	return min(MaxOverlayWidth, max(windowWidth/2, MinOverlayWidth)), OverlayHeight
}
