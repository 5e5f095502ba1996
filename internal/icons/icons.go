// Package icons holds the transport glyphs shown by the player bar, the
// overlay and the notification buttons.
package icons

import "sync/atomic"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs of one style.
type Icons struct {
	Play    string
	Pause   string
	Stop    string
	Rewind  string
	Forward string
	Volume  string
	Muted   string
}

var (
	nerdIcons = Icons{
		Play:    "", // nf-fa-play
		Pause:   "", // nf-fa-pause
		Stop:    "", // nf-fa-stop
		Rewind:  "", // nf-fa-backward
		Forward: "", // nf-fa-forward
		Volume:  "", // nf-fa-volume_up
		Muted:   "", // nf-fa-volume_off
	}

	unicodeIcons = Icons{
		Play:    "▶",
		Pause:   "⏸",
		Stop:    "■",
		Rewind:  "⏪",
		Forward: "⏩",
		Volume:  "vol",
		Muted:   "mute",
	}

	noneIcons = Icons{
		Play:    ">",
		Pause:   "||",
		Stop:    "[]",
		Rewind:  "<<",
		Forward: ">>",
		Volume:  "vol",
		Muted:   "mute",
	}

	current atomic.Pointer[Icons]
)

func init() {
	current.Store(&unicodeIcons)
}

// Init selects the style. Unknown styles fall back to unicode.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current.Store(&nerdIcons)
	case StyleNone:
		current.Store(&noneIcons)
	default:
		current.Store(&unicodeIcons)
	}
}

// Current returns the active icon set.
func Current() Icons {
	return *current.Load()
}

func Play() string    { return current.Load().Play }
func Pause() string   { return current.Load().Pause }
func Stop() string    { return current.Load().Stop }
func Rewind() string  { return current.Load().Rewind }
func Forward() string { return current.Load().Forward }

// Volume returns the volume label, the muted one when muted.
func Volume(muted bool) string {
	if muted {
		return current.Load().Muted
	}
	return current.Load().Volume
}
