// Package wailsui hosts the desktop shell on Wails. It owns everything
// toolkit-specific: window creation, the tray, frontend events, and the
// adapters that satisfy the ui capability interfaces.
package wailsui

import (
	"github.com/wailsapp/wails/v3/pkg/application"
)

// webviewWindow adapts a Wails window to ui.Window. Events are emitted
// app-wide; the frontend scopes handlers by window route.
type webviewWindow struct {
	win *application.WebviewWindow
	app *application.App
}

func (w *webviewWindow) Show() { w.win.Show() }

func (w *webviewWindow) Hide() { w.win.Hide() }

func (w *webviewWindow) Focus() { w.win.Focus() }

func (w *webviewWindow) Center() { w.win.Center() }

func (w *webviewWindow) SetSize(width, height int) { w.win.SetSize(width, height) }

func (w *webviewWindow) SetPosition(x, y int) { w.win.SetPosition(x, y) }

func (w *webviewWindow) EmitEvent(name string) { w.app.Event.Emit(name) }
