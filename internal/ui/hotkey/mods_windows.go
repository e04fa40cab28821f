//go:build windows

package hotkey

import hk "golang.design/x/hotkey"

func modifierFromName(name string) (hk.Modifier, bool) {
	switch name {
	case "alt":
		return hk.ModAlt, true
	case "ctrl":
		return hk.ModCtrl, true
	case "shift":
		return hk.ModShift, true
	case "win", "super", "cmd":
		return hk.ModWin, true
	}
	return 0, false
}
