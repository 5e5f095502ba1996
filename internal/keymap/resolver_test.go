//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	bindings := []Binding{
		bind(ActionQuit, "global", "quit", "q", "ctrl+c"),
		bind(ActionPlayPause, "playback", "play/pause", "space", " "),
		bind(ActionSeekForward, "playback", "forward", "right", "l"),
	}

	r := NewResolver(bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"space", ActionPlayPause},
		{"l", ActionSeekForward},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := r.Resolve(tt.key); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestResolver_FirstBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		bind(ActionStop, "playback", "stop", "s"),
		bind(ActionCycleText, "playback", "subtitles", "s"),
	})

	if got := r.Resolve("s"); got != ActionStop {
		t.Errorf("Resolve(s) = %q, want %q", got, ActionStop)
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver(All)

	keys := r.KeysFor(ActionQuit)
	if !slices.Equal(keys, []string{"q", "ctrl+c"}) {
		t.Errorf("KeysFor(quit) = %v", keys)
	}
	if keys := r.KeysFor("nonexistent"); keys != nil {
		t.Errorf("KeysFor(nonexistent) = %v, want nil", keys)
	}
}

func TestAll_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range All {
		for _, k := range b.Key.Keys() {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %q and %q", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestResolver_Help(t *testing.T) {
	r := NewResolver(All)

	if got := len(r.ShortHelp()); got != 6 {
		t.Errorf("ShortHelp() len = %d, want 6", got)
	}
	full := r.FullHelp()
	if len(full) != 3 {
		t.Fatalf("FullHelp() columns = %d, want 3", len(full))
	}
	if got := len(full[1]); got != len(ByContext("overlay")) {
		t.Errorf("overlay column = %d bindings, want %d", got, len(ByContext("overlay")))
	}
}

func TestQuickActionsAreBound(t *testing.T) {
	r := NewResolver(All)
	for _, a := range QuickActions {
		if len(r.KeysFor(a)) == 0 {
			t.Errorf("%q has no key", a)
		}
	}
}
