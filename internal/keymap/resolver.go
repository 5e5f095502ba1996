package keymap

import "github.com/charmbracelet/bubbles/key"

// Resolver maps key strings to actions. It also serves as the help.KeyMap
// of the bubbles help view.
type Resolver struct {
	bindings map[string]Action // key -> action
	ordered  []Binding
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to its first binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		ordered:  bindings,
	}
	for _, b := range bindings {
		for _, k := range b.Key.Keys() {
			if _, taken := r.bindings[k]; !taken {
				r.bindings[k] = b.Action
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(k string) Action {
	return r.bindings[k]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	for _, b := range r.ordered {
		if b.Action == action {
			return b.Key.Keys()
		}
	}
	return nil
}

// ShortHelp implements help.KeyMap.
func (r *Resolver) ShortHelp() []key.Binding {
	var result []key.Binding
	for _, action := range []Action{ActionPlayPause, ActionSeekBack, ActionSeekForward, ActionEnterOverlay, ActionHelp, ActionQuit} {
		if b, ok := r.binding(action); ok {
			result = append(result, b)
		}
	}
	return result
}

// FullHelp implements help.KeyMap, one column per context.
func (r *Resolver) FullHelp() [][]key.Binding {
	var columns [][]key.Binding
	for _, context := range []string{"playback", "overlay", "global"} {
		var col []key.Binding
		for _, b := range r.ordered {
			if b.Context == context {
				col = append(col, b.Key)
			}
		}
		if len(col) > 0 {
			columns = append(columns, col)
		}
	}
	return columns
}

func (r *Resolver) binding(action Action) (key.Binding, bool) {
	for _, b := range r.ordered {
		if b.Action == action {
			return b.Key, true
		}
	}
	return key.Binding{}, false
}
