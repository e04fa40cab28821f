package hotkey

import hk "golang.design/x/hotkey"

// keyNames maps the textual key names accepted in hotkey strings to key
// codes. The code values differ per platform but the constant names do
// not, so one table serves every OS.
var keyNames = map[string]hk.Key{
	"a": hk.KeyA, "b": hk.KeyB, "c": hk.KeyC, "d": hk.KeyD, "e": hk.KeyE,
	"f": hk.KeyF, "g": hk.KeyG, "h": hk.KeyH, "i": hk.KeyI, "j": hk.KeyJ,
	"k": hk.KeyK, "l": hk.KeyL, "m": hk.KeyM, "n": hk.KeyN, "o": hk.KeyO,
	"p": hk.KeyP, "q": hk.KeyQ, "r": hk.KeyR, "s": hk.KeyS, "t": hk.KeyT,
	"u": hk.KeyU, "v": hk.KeyV, "w": hk.KeyW, "x": hk.KeyX, "y": hk.KeyY,
	"z": hk.KeyZ,

	"0": hk.Key0, "1": hk.Key1, "2": hk.Key2, "3": hk.Key3, "4": hk.Key4,
	"5": hk.Key5, "6": hk.Key6, "7": hk.Key7, "8": hk.Key8, "9": hk.Key9,

	"space":  hk.KeySpace,
	"enter":  hk.KeyReturn,
	"return": hk.KeyReturn,
	"escape": hk.KeyEscape,
	"esc":    hk.KeyEscape,
	"tab":    hk.KeyTab,
}

func keyFromName(name string) (hk.Key, bool) {
	key, ok := keyNames[name]
	return key, ok
}
