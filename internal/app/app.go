// Package app wires the backend supervisor, the startup gates, the
// lifecycle machine, and the window coordinator into one orchestrator the
// GUI shell drives.
package app

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/backend"
	"github.com/chande-dhanush/Sakura/internal/config"
	"github.com/chande-dhanush/Sakura/internal/lifecycle"
	"github.com/chande-dhanush/Sakura/internal/ui"
)

// Supervisor is the slice of the process supervisor the app drives.
type Supervisor interface {
	Start() error
	Status() backend.Status
	GracefulShutdown()
	ForceQuit()
}

// ReadinessGate polls the backend health endpoint until ready or out of
// attempts.
type ReadinessGate interface {
	AwaitReady(attempts int, interval time.Duration) backend.ReadinessResult
}

// ConnectivityGate probes external reachability before the backend gate
// runs.
type ConnectivityGate interface {
	AwaitInternet(attempts int, interval time.Duration) backend.ConnectivityResult
}

// ShortcutDispatcher registers the global shortcuts and releases them on
// quit.
type ShortcutDispatcher interface {
	Register(bindings []ui.Binding) error
	Close()
}

// App orchestrates startup and shutdown. The GUI shell calls StartBackend
// and RunStartupGates once during launch, then routes shortcut presses and
// window callbacks through the coordinator and the quit paths here.
type App struct {
	cfg          *config.Config
	logger       *zap.SugaredLogger
	machine      *lifecycle.Machine
	supervisor   Supervisor
	readiness    ReadinessGate
	connectivity ConnectivityGate
	dispatcher   ShortcutDispatcher
	coordinator  *ui.Coordinator

	// skipBackend launches the shell without spawning anything, for
	// frontend work against an externally managed backend.
	skipBackend bool
}

// Options collects the collaborators New needs.
type Options struct {
	Config       *config.Config
	Logger       *zap.SugaredLogger
	Machine      *lifecycle.Machine
	Supervisor   Supervisor
	Readiness    ReadinessGate
	Connectivity ConnectivityGate
	Dispatcher   ShortcutDispatcher
	Coordinator  *ui.Coordinator
	SkipBackend  bool
}

// New assembles the orchestrator.
func New(opts Options) *App {
	return &App{
		cfg:          opts.Config,
		logger:       opts.Logger,
		machine:      opts.Machine,
		supervisor:   opts.Supervisor,
		readiness:    opts.Readiness,
		connectivity: opts.Connectivity,
		dispatcher:   opts.Dispatcher,
		coordinator:  opts.Coordinator,
		skipBackend:  opts.SkipBackend,
	}
}

// StartBackend spawns the backend child. A spawn failure is logged and
// downgraded, never fatal; the shell keeps running and the readiness gate
// will time out into degraded mode.
func (a *App) StartBackend() {
	a.machine.SendEvent(lifecycle.EventStart)

	if a.skipBackend {
		a.logger.Info("Backend launch skipped by flag")
		a.machine.SendEvent(lifecycle.EventBackendUnavailable)
		return
	}

	err := a.supervisor.Start()
	if err == nil || errors.Is(err, backend.ErrAlreadyRunning) {
		a.machine.SendEvent(lifecycle.EventBackendStarted)
		return
	}

	a.logger.Errorw("Backend failed to start, continuing without it", "error", err)
	a.machine.SendEvent(lifecycle.EventBackendUnavailable)
}

// RegisterShortcuts registers the global shortcut bindings. This is the
// one startup step whose failure is fatal: the caller must abort launch on
// a non-nil error.
func (a *App) RegisterShortcuts() error {
	return a.dispatcher.Register([]ui.Binding{
		{Combo: a.cfg.Shortcuts.QuickSearch, Name: "quick-search", Action: a.coordinator.QuickSearch},
		{Combo: a.cfg.Shortcuts.FullMode, Name: "full-mode", Action: a.coordinator.ForceFullMode},
		{Combo: a.cfg.Shortcuts.HideMode, Name: "hide-mode", Action: a.coordinator.ToggleHideMode},
	})
}

// RunStartupGates runs the connectivity gate and then the readiness gate,
// feeding the lifecycle machine, and finally reveals the main window. It
// blocks for up to the combined gate budget and is meant to run on its own
// goroutine.
func (a *App) RunStartupGates() {
	st := a.cfg.Startup

	connectivity := a.connectivity.AwaitInternet(st.ConnectivityAttempts, st.ConnectivityInterval)
	if !connectivity.Connected {
		a.logger.Warnw("No internet connectivity", "attempts", connectivity.Attempts)
	}
	a.machine.SendEvent(lifecycle.EventNetworkChecked)

	readiness := a.readiness.AwaitReady(st.HealthAttempts, st.HealthInterval)
	if readiness.Ready {
		a.logger.Infow("Backend ready", "attempts", readiness.Attempts, "elapsed", readiness.Elapsed)
		a.machine.SendEvent(lifecycle.EventBackendReady)
		a.coordinator.EmitToMain(ui.EventBackendReady)
	} else {
		a.logger.Warnw("Backend never became ready, running degraded", "attempts", readiness.Attempts)
		a.machine.SendEvent(lifecycle.EventReadyTimeout)
		a.coordinator.EmitToMain(ui.EventBackendUnreachable)
	}

	// The window appears either way; a degraded shell still serves the
	// parts that do not need the backend.
	a.coordinator.RevealMain()
}

// Quit releases the shortcuts and hands control to the supervisor's quit
// path, which terminates the process. It does not return.
func (a *App) Quit() {
	a.machine.SendEvent(lifecycle.EventShutdown)
	a.dispatcher.Close()
	a.supervisor.ForceQuit()
}

// WindowDestroyed is the close handler for the bubble window: destroying
// the bubble ends the whole app. It does not return.
func (a *App) WindowDestroyed() {
	a.machine.SendEvent(lifecycle.EventShutdown)
	a.dispatcher.Close()
	a.supervisor.GracefulShutdown()
}

// Machine exposes the lifecycle machine for status subscribers.
func (a *App) Machine() *lifecycle.Machine { return a.machine }

// Coordinator exposes the window coordinator for shell callbacks.
func (a *App) Coordinator() *ui.Coordinator { return a.coordinator }
