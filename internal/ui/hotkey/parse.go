package hotkey

import (
	"fmt"
	"strings"
)

// Combo is a parsed hotkey string: zero or more modifiers plus one key.
type Combo struct {
	Modifiers []string
	Key       string
}

// ParseCombo parses a "+"-joined hotkey string such as "alt+s" or
// "ctrl+shift+f". Matching is case-insensitive and the final segment is
// the key; everything before it must be a known modifier.
func ParseCombo(s string) (Combo, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	if trimmed == "" {
		return Combo{}, fmt.Errorf("empty hotkey string")
	}

	parts := strings.Split(trimmed, "+")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return Combo{}, fmt.Errorf("malformed hotkey string %q", s)
		}
	}

	combo := Combo{Key: parts[len(parts)-1]}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "alt", "ctrl", "shift", "cmd", "win", "super":
			combo.Modifiers = append(combo.Modifiers, mod)
		default:
			return Combo{}, fmt.Errorf("unknown modifier %q in %q", mod, s)
		}
	}
	return combo, nil
}
