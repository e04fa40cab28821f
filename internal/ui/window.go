// Package ui coordinates the desktop shell's two windows and global
// shortcuts. It talks to the windowing toolkit through small capability
// interfaces so the coordination logic stays testable off-screen.
package ui

// Window label constants match the window names registered with the
// windowing shell and the event targets the frontend listens on.
const (
	BubbleWindowLabel = "bubble"
	MainWindowLabel   = "main"
)

// UI event names emitted toward the frontend.
const (
	EventToggleMain         = "toggle_main"
	EventQuickSearch        = "quick_search_trigger"
	EventFullMode           = "full_mode_trigger"
	EventNoInternet         = "no_internet"
	EventBackendReady       = "backend_ready"
	EventBackendUnreachable = "backend_unreachable"
)

// Window is the slice of a toolkit window the coordinator needs. All
// methods are expected to be non-blocking UI operations.
type Window interface {
	Show()
	Hide()
	Focus()
	Center()
	SetSize(width, height int)
	SetPosition(x, y int)
	EmitEvent(name string)
}
