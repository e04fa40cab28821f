package ui

import (
	"sync"

	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/config"
)

// Coordinator owns every visibility and geometry change of the bubble and
// main windows. It tracks visibility itself rather than querying the
// toolkit, and a single mutex is held across each whole transition so two
// shortcut handlers can never interleave on the same window.
type Coordinator struct {
	mu      sync.Mutex
	bubble  Window
	main    Window
	windows config.WindowsConfig
	logger  *zap.SugaredLogger

	mainVisible   bool
	bubbleVisible bool
	quickSearch   bool
}

// NewCoordinator creates a coordinator for the given windows. Both windows
// start hidden; RevealMain and ShowBubble make them visible.
func NewCoordinator(bubble, main Window, windows config.WindowsConfig, logger *zap.SugaredLogger) *Coordinator {
	return &Coordinator{
		bubble:  bubble,
		main:    main,
		windows: windows,
		logger:  logger,
	}
}

// ToggleMain shows the main window at its default size, or hides it if it
// is already visible.
func (c *Coordinator) ToggleMain() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mainVisible {
		c.hideMainLocked()
		return
	}

	// toggle_main is an inbound signal from the bubble's UI; emitting it
	// here would feed straight back into this method and undo the show.
	c.main.SetSize(c.windows.MainDefault.Width, c.windows.MainDefault.Height)
	c.main.Show()
	c.main.Focus()
	c.mainVisible = true
	c.logger.Debugw("Main window shown", "width", c.windows.MainDefault.Width, "height", c.windows.MainDefault.Height)
}

// QuickSearch toggles the compact search strip. A visible main window is
// hidden whatever mode it is in, with the full size restored and the
// window re-centered first, so no later show can reveal the strip
// geometry by accident. A hidden window comes up as the strip and tells
// the frontend to focus the search box.
func (c *Coordinator) QuickSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mainVisible {
		c.main.SetSize(c.windows.FullReset.Width, c.windows.FullReset.Height)
		c.main.Center()
		c.main.Hide()
		c.mainVisible = false
		c.quickSearch = false
		c.logger.Debug("Main window hidden by quick search")
		return
	}

	c.main.SetSize(c.windows.QuickSearch.Width, c.windows.QuickSearch.Height)
	c.main.Center()
	c.main.Show()
	c.main.Focus()
	c.main.EmitEvent(EventQuickSearch)
	c.mainVisible = true
	c.quickSearch = true
	c.logger.Debug("Quick search shown")
}

// ForceFullMode brings the main window into full assistant mode. It is
// idempotent; invoking it while already in full mode re-centers and
// re-focuses without flicker.
func (c *Coordinator) ForceFullMode() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.main.SetSize(c.windows.FullMode.Width, c.windows.FullMode.Height)
	c.main.Center()
	c.main.Show()
	c.main.Focus()
	c.main.EmitEvent(EventFullMode)
	c.mainVisible = true
	c.quickSearch = false
	c.logger.Debug("Full mode forced")
}

// ToggleHideMode toggles the bubble. Hiding the bubble also hides the main
// window so the assistant leaves the screen entirely (movie mode); showing
// it brings only the bubble back.
func (c *Coordinator) ToggleHideMode() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bubbleVisible {
		c.bubble.Hide()
		c.bubbleVisible = false
		if c.mainVisible {
			c.hideMainLocked()
		}
		c.logger.Debug("Hide mode on")
		return
	}

	c.bubble.Show()
	c.bubbleVisible = true
	c.logger.Debug("Hide mode off")
}

// ShowBubble makes the bubble visible at startup.
func (c *Coordinator) ShowBubble() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bubble.Show()
	c.bubbleVisible = true
}

// RevealMain shows the main window at its default size and focuses it. It
// runs once after the startup gates finish.
func (c *Coordinator) RevealMain() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.main.SetSize(c.windows.MainDefault.Width, c.windows.MainDefault.Height)
	c.main.Center()
	c.main.Show()
	c.main.Focus()
	c.mainVisible = true
	c.quickSearch = false
}

// HideMain hides the main window. It backs the window's close request, so
// closing the main window parks it instead of ending the app.
func (c *Coordinator) HideMain() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mainVisible {
		return
	}
	c.hideMainLocked()
}

// MainVisible reports whether the main window is currently shown.
func (c *Coordinator) MainVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mainVisible
}

// EmitToMain forwards a named event to the main window's frontend.
func (c *Coordinator) EmitToMain(name string) {
	c.main.EmitEvent(name)
}

// hideMainLocked hides the main window, restoring full geometry first when
// the quick-search strip is up. Callers must hold c.mu.
func (c *Coordinator) hideMainLocked() {
	if c.quickSearch {
		c.main.SetSize(c.windows.FullReset.Width, c.windows.FullReset.Height)
		c.main.Center()
		c.quickSearch = false
	}
	c.main.Hide()
	c.mainVisible = false
	c.logger.Debug("Main window hidden")
}
