// Package hotkey registers system-wide shortcuts. The Backend interface
// keeps the shortcut dispatcher testable against a fake while production
// uses the OS keyboard hook.
package hotkey

// Backend registers global shortcuts from their textual form. The shell
// registers its fixed set at startup and releases everything on exit, so
// the contract has no per-hotkey unregister.
type Backend interface {
	// Register binds a "modifier+key" combination such as "alt+s" and
	// returns a handle delivering its presses.
	Register(hotkeyStr string) (RegisteredHotkey, error)

	// UnregisterAll releases every hotkey this backend registered.
	UnregisterAll() error

	// Name identifies the backend in logs.
	Name() string
}

// RegisteredHotkey is a live shortcut binding.
type RegisteredHotkey interface {
	// Keydown delivers one value per press. Pending presses coalesce.
	Keydown() <-chan struct{}

	// Close releases the binding. The Keydown channel stops delivering
	// afterwards.
	Close() error
}
