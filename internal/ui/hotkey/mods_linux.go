//go:build linux

package hotkey

import hk "golang.design/x/hotkey"

func modifierFromName(name string) (hk.Modifier, bool) {
	switch name {
	case "alt":
		return hk.Mod1, true
	case "ctrl":
		return hk.ModCtrl, true
	case "shift":
		return hk.ModShift, true
	case "win", "super":
		return hk.Mod4, true
	}
	return 0, false
}
