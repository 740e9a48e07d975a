package config

import (
	"fmt"
	"sort"
	"strings"
)

// Desktop key actions.
const (
	ActionDismiss     = "dismiss"
	ActionIconNext    = "icon_next"
	ActionIconPrev    = "icon_prev"
	ActionIconOpen    = "icon_open"
	ActionStartMenu   = "start_menu"
	ActionCloseWindow = "close_window"
	ActionBackspace   = "backspace"
	ActionQuit        = "quit"
)

var actionDescriptions = map[string]string{
	ActionDismiss:     "Close menus",
	ActionIconNext:    "Select next icon",
	ActionIconPrev:    "Select previous icon",
	ActionIconOpen:    "Open selected icon",
	ActionStartMenu:   "Toggle start menu",
	ActionCloseWindow: "Close focused window",
	ActionBackspace:   "Delete typed character",
	ActionQuit:        "Quit",
}

// DefaultKeybindings maps each action to its keys.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionDismiss:     {"esc"},
		ActionIconNext:    {"down", "right"},
		ActionIconPrev:    {"up", "left"},
		ActionIconOpen:    {"enter"},
		ActionStartMenu:   {"ctrl+s"},
		ActionCloseWindow: {"ctrl+w"},
		ActionBackspace:   {"backspace"},
		ActionQuit:        {"ctrl+c", "ctrl+q"},
	}
}

// Keybinding is one row of the help listing.
type Keybinding struct {
	Key         string
	Description string
}

// Keymap resolves key strings to actions.
type Keymap struct {
	byKey map[string]string
}

// NewKeymap builds a keymap from action to keys. Unknown actions are ignored;
// a key bound twice goes to the action that sorts first.
func NewKeymap(bindings map[string][]string) *Keymap {
	km := &Keymap{byKey: make(map[string]string)}
	actions := make([]string, 0, len(bindings))
	for a := range bindings {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, a := range actions {
		if _, ok := actionDescriptions[a]; !ok {
			continue
		}
		for _, k := range bindings[a] {
			k = strings.ToLower(strings.TrimSpace(k))
			if _, taken := km.byKey[k]; k == "" || taken {
				continue
			}
			km.byKey[k] = a
		}
	}
	return km
}

// Action returns the action bound to key, or "".
func (km *Keymap) Action(key string) string {
	if km == nil {
		return ""
	}
	return km.byKey[strings.ToLower(key)]
}

// Help lists bound keys grouped per action in action order.
func (km *Keymap) Help() []Keybinding {
	if km == nil {
		return nil
	}
	keys := make(map[string][]string)
	for k, a := range km.byKey {
		keys[a] = append(keys[a], k)
	}
	actions := make([]string, 0, len(keys))
	for a := range keys {
		actions = append(actions, a)
	}
	sort.Strings(actions)

	out := make([]Keybinding, 0, len(actions))
	for _, a := range actions {
		ks := keys[a]
		sort.Strings(ks)
		out = append(out, Keybinding{Key: strings.Join(ks, "/"), Description: actionDescriptions[a]})
	}
	return out
}

func validateKeybindings(bindings map[string][]string, v *ValidationResult) {
	seen := make(map[string]string)
	for a, keys := range bindings {
		if _, ok := actionDescriptions[a]; !ok {
			v.warn("keybindings", a, "unknown action, ignored")
			continue
		}
		for _, k := range keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if other, dup := seen[k]; dup && other != a {
				v.warn("keybindings", a, fmt.Sprintf("key %q is also bound to %s", k, other))
			}
			seen[k] = a
		}
	}
}
