//go:build darwin

package hotkey

import hk "golang.design/x/hotkey"

func modifierFromName(name string) (hk.Modifier, bool) {
	switch name {
	case "alt":
		return hk.ModOption, true
	case "ctrl":
		return hk.ModCtrl, true
	case "shift":
		return hk.ModShift, true
	case "cmd", "super":
		return hk.ModCmd, true
	}
	return 0, false
}
