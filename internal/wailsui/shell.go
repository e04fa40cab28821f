package wailsui

import (
	"embed"
	"sync/atomic"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"go.uber.org/zap"

	appcore "github.com/chande-dhanush/Sakura/internal/app"
	"github.com/chande-dhanush/Sakura/internal/config"
	"github.com/chande-dhanush/Sakura/internal/ui"
)

//go:embed all:assets
var assets embed.FS

// Shell owns the Wails application, the bubble and main windows, and the
// tray. It is built in two phases: NewShell creates the toolkit objects so
// the coordinator can wrap the windows, then Attach wires the orchestrator
// into hooks, tray actions, and frontend events.
type Shell struct {
	cfg    *config.Config
	logger *zap.SugaredLogger

	app    *application.App
	bubble *application.WebviewWindow
	main   *application.WebviewWindow
	status *application.MenuItem

	orch *appcore.App

	// quitting lets the bubble's close hook distinguish a user close (app
	// teardown) from the toolkit closing windows during Quit.
	quitting atomic.Bool
}

// NewShell creates the Wails application and both windows. The main window
// starts hidden; the bubble is shown once it has been positioned.
func NewShell(cfg *config.Config, service *appcore.DesktopService, logger *zap.SugaredLogger) *Shell {
	wailsApp := application.New(application.Options{
		Name: "Sakura",
		Services: []application.Service{
			application.NewService(service),
		},
		Assets: application.AssetOptions{
			Handler: application.AssetFileServerFS(assets),
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
		Windows: application.WindowsOptions{
			DisableQuitOnLastWindowClosed: true,
		},
		Linux: application.LinuxOptions{
			DisableQuitOnLastWindowClosed: true,
			ProgramName:                   "sakura",
		},
	})

	bubble := wailsApp.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:          ui.BubbleWindowLabel,
		Title:         "Sakura",
		Width:         ui.BubbleSize,
		Height:        ui.BubbleSize,
		Frameless:     true,
		AlwaysOnTop:   true,
		DisableResize: true,
		Hidden:        true,
		URL:           "/#/bubble",
	})

	main := wailsApp.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:   ui.MainWindowLabel,
		Title:  "Sakura",
		Width:  cfg.Windows.MainDefault.Width,
		Height: cfg.Windows.MainDefault.Height,
		Hidden: true,
		URL:    "/",
	})

	return &Shell{
		cfg:    cfg,
		logger: logger,
		app:    wailsApp,
		bubble: bubble,
		main:   main,
	}
}

// BubbleWindow returns the bubble as a coordinator-facing window.
func (s *Shell) BubbleWindow() ui.Window {
	return &webviewWindow{win: s.bubble, app: s.app}
}

// MainWindow returns the main window as a coordinator-facing window.
func (s *Shell) MainWindow() ui.Window {
	return &webviewWindow{win: s.main, app: s.app}
}

// Attach wires the orchestrator into the shell: close hooks, the tray, and
// the frontend event bridge.
func (s *Shell) Attach(orch *appcore.App) {
	s.orch = orch

	// Closing the bubble ends the app; everything else parks.
	s.bubble.RegisterHook(events.Common.WindowClosing, func(event *application.WindowEvent) {
		if s.quitting.Load() {
			return
		}
		s.quitting.Store(true)
		orch.WindowDestroyed()
	})

	// Closing the main window hides it, keeping its geometry.
	s.main.RegisterHook(events.Common.WindowClosing, func(event *application.WindowEvent) {
		if s.quitting.Load() {
			return
		}
		orch.Coordinator().HideMain()
		event.Cancel()
	})

	// The bubble frontend emits toggle_main on click.
	s.app.Event.On(ui.EventToggleMain, func(event *application.CustomEvent) {
		orch.Coordinator().ToggleMain()
	})

	s.buildTray(orch)
}

func (s *Shell) buildTray(orch *appcore.App) {
	systray := s.app.SystemTray.New()
	systray.SetLabel("Sakura")

	menu := s.app.NewMenu()
	menu.Add("Show").OnClick(func(ctx *application.Context) {
		orch.Coordinator().RevealMain()
	})
	menu.Add("Hide").OnClick(func(ctx *application.Context) {
		orch.Coordinator().HideMain()
	})
	menu.AddSeparator()

	s.status = menu.Add("Status: Starting...")
	s.status.SetEnabled(false)

	menu.AddSeparator()
	menu.Add("Quit Sakura").OnClick(func(ctx *application.Context) {
		s.quitting.Store(true)
		orch.Quit()
	})
	systray.SetMenu(menu)

	// Mirror lifecycle transitions into the tray status line.
	transitions := orch.Machine().Subscribe()
	go func() {
		for transition := range transitions {
			s.status.SetLabel("Status: " + transition.To.DisplayName())
		}
	}()
}

// Run launches the backend, the startup gates, and the toolkit event loop.
// Shortcut registration failure aborts before anything is shown; it is the
// one fatal startup error.
func (s *Shell) Run() error {
	if err := s.orch.RegisterShortcuts(); err != nil {
		return err
	}

	s.orch.StartBackend()
	go s.orch.RunStartupGates()
	go s.placeBubble()

	// Blocks until Quit; on macOS the event loop must own the main thread.
	return s.app.Run()
}

// placeBubble positions the bubble in the bottom-right corner once the
// toolkit has a screen to measure, then shows it.
func (s *Shell) placeBubble() {
	time.Sleep(200 * time.Millisecond)

	screen := s.app.Screen.GetPrimary()
	if screen == nil {
		s.logger.Warnw("Could not read primary screen, centering bubble")
		s.bubble.Center()
	} else {
		x, y := ui.BubblePosition(screen.Size.Width, screen.Size.Height, float64(screen.ScaleFactor))
		s.bubble.SetPosition(x, y)
	}

	s.orch.Coordinator().ShowBubble()
}
