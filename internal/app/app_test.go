package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/backend"
	"github.com/chande-dhanush/Sakura/internal/config"
	"github.com/chande-dhanush/Sakura/internal/lifecycle"
	"github.com/chande-dhanush/Sakura/internal/ui"
)

type fakeSupervisor struct {
	startErr error
	status   backend.Status

	started   atomic.Bool
	graceful  atomic.Bool
	forceQuit atomic.Bool
}

func (f *fakeSupervisor) Start() error {
	f.started.Store(true)
	return f.startErr
}
func (f *fakeSupervisor) Status() backend.Status { return f.status }

func (f *fakeSupervisor) GracefulShutdown() { f.graceful.Store(true) }

func (f *fakeSupervisor) ForceQuit() { f.forceQuit.Store(true) }

type fakeReadiness struct {
	result backend.ReadinessResult
}

func (f *fakeReadiness) AwaitReady(attempts int, interval time.Duration) backend.ReadinessResult {
	return f.result
}

type fakeConnectivity struct {
	result backend.ConnectivityResult
}

func (f *fakeConnectivity) AwaitInternet(attempts int, interval time.Duration) backend.ConnectivityResult {
	return f.result
}

type fakeDispatcher struct {
	registerErr error
	bindings    []ui.Binding
	closed      atomic.Bool
}

func (f *fakeDispatcher) Register(bindings []ui.Binding) error {
	f.bindings = bindings
	return f.registerErr
}

func (f *fakeDispatcher) Close() { f.closed.Store(true) }

// recordingWindow tracks the calls the coordinator makes.
type recordingWindow struct {
	mu     sync.Mutex
	shown  bool
	events []string
}

func (w *recordingWindow) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shown = true
}
func (w *recordingWindow) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shown = false
}
func (w *recordingWindow) Focus() {}

func (w *recordingWindow) Center() {}

func (w *recordingWindow) SetSize(_, _ int) {}

func (w *recordingWindow) SetPosition(_, _ int) {}
func (w *recordingWindow) EmitEvent(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, name)
}

func (w *recordingWindow) isShown() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shown
}

func (w *recordingWindow) emitted() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.events))
	copy(out, w.events)
	return out
}

type fixture struct {
	app          *App
	machine      *lifecycle.Machine
	supervisor   *fakeSupervisor
	dispatcher   *fakeDispatcher
	readiness    *fakeReadiness
	connectivity *fakeConnectivity
	bubble       *recordingWindow
	main         *recordingWindow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop().Sugar()
	cfg := config.DefaultConfig()
	// Tests never want real gate pacing.
	cfg.Startup.HealthInterval = time.Millisecond
	cfg.Startup.ConnectivityInterval = time.Millisecond

	machine := lifecycle.NewMachine(logger)
	machine.Start()

	f := &fixture{
		machine:      machine,
		supervisor:   &fakeSupervisor{status: backend.StatusRunning},
		dispatcher:   &fakeDispatcher{},
		readiness:    &fakeReadiness{result: backend.ReadinessResult{Ready: true, Attempts: 1}},
		connectivity: &fakeConnectivity{result: backend.ConnectivityResult{Connected: true, Attempts: 1}},
		bubble:       &recordingWindow{},
		main:         &recordingWindow{},
	}

	coordinator := ui.NewCoordinator(f.bubble, f.main, cfg.Windows, logger)
	f.app = New(Options{
		Config:       cfg,
		Logger:       logger,
		Machine:      machine,
		Supervisor:   f.supervisor,
		Readiness:    f.readiness,
		Connectivity: f.connectivity,
		Dispatcher:   f.dispatcher,
		Coordinator:  coordinator,
	})
	return f
}

func waitForState(t *testing.T, m *lifecycle.Machine, want lifecycle.State) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return m.Current() == want
	}, 2*time.Second, 5*time.Millisecond, "expected state %s", want)
}

func TestStartupHappyPath(t *testing.T) {
	f := newFixture(t)

	f.app.StartBackend()
	assert.True(t, f.supervisor.started.Load())

	f.app.RunStartupGates()

	waitForState(t, f.machine, lifecycle.StateReady)
	assert.True(t, f.main.isShown())
	assert.Contains(t, f.main.emitted(), ui.EventBackendReady)
}

func TestStartupDegradedWhenBackendMissing(t *testing.T) {
	f := newFixture(t)
	f.supervisor.startErr = &backend.StartError{Err: backend.ErrNotFound}
	f.readiness.result = backend.ReadinessResult{Ready: false, Attempts: 45}

	// Spawn failure is not fatal.
	f.app.StartBackend()
	f.app.RunStartupGates()

	waitForState(t, f.machine, lifecycle.StateDegraded)
	// The window reveals anyway.
	assert.True(t, f.main.isShown())
	assert.Contains(t, f.main.emitted(), ui.EventBackendUnreachable)
}

func TestStartupOffline(t *testing.T) {
	f := newFixture(t)
	f.connectivity.result = backend.ConnectivityResult{Connected: false, Attempts: 30}

	f.app.StartBackend()
	f.app.RunStartupGates()

	// No internet does not stop the readiness gate or the reveal.
	waitForState(t, f.machine, lifecycle.StateReady)
	assert.True(t, f.main.isShown())
}

func TestSkipBackend(t *testing.T) {
	f := newFixture(t)
	f.app.skipBackend = true

	f.app.StartBackend()
	assert.False(t, f.supervisor.started.Load())
	waitForState(t, f.machine, lifecycle.StateCheckingNetwork)
}

func TestRegisterShortcuts(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.RegisterShortcuts())
	require.Len(t, f.dispatcher.bindings, 3)
	assert.Equal(t, "alt+s", f.dispatcher.bindings[0].Combo)
	assert.Equal(t, "alt+f", f.dispatcher.bindings[1].Combo)
	assert.Equal(t, "alt+m", f.dispatcher.bindings[2].Combo)
}

func TestRegisterShortcutsFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.registerErr = assert.AnError

	err := f.app.RegisterShortcuts()
	require.Error(t, err)
}

func TestQuitReleasesShortcutsThenKillsBackend(t *testing.T) {
	f := newFixture(t)

	f.app.Quit()

	assert.True(t, f.dispatcher.closed.Load())
	assert.True(t, f.supervisor.forceQuit.Load())
	waitForState(t, f.machine, lifecycle.StateShuttingDown)
}

func TestWindowDestroyedShutsDownGracefully(t *testing.T) {
	f := newFixture(t)

	f.app.WindowDestroyed()

	assert.True(t, f.dispatcher.closed.Load())
	assert.True(t, f.supervisor.graceful.Load())
	assert.False(t, f.supervisor.forceQuit.Load())
}

func TestDesktopService(t *testing.T) {
	f := newFixture(t)
	service := NewDesktopService()
	service.Bind(f.app)

	assert.Equal(t, "running", service.BackendStatus())
	f.supervisor.status = backend.StatusStopped
	assert.Equal(t, "stopped", service.BackendStatus())

	service.ShowMainWindow()
	assert.True(t, f.main.isShown())

	service.HideMainWindow()
	assert.False(t, f.main.isShown())

	service.ToggleMainWindow()
	assert.True(t, f.main.isShown())

	assert.NotEmpty(t, service.LifecycleState())

	service.ForceQuit()
	assert.True(t, f.supervisor.forceQuit.Load())
}
