package backend

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/config"
)

// Status reports whether the supervisor holds a live child handle.
type Status string

const (
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
)

// ErrAlreadyRunning is returned by Start when a child handle already
// exists. At most one backend child exists process-wide.
var ErrAlreadyRunning = errors.New("backend process already running")

// StartError carries the final spawn failure after all fallbacks.
type StartError struct {
	Err error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start backend: %v", e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// Supervisor owns the single backend child process. Every handle access
// goes through one mutex held only for the pointer read or write, never
// across a network call or sleep.
type Supervisor struct {
	cfg     config.BackendConfig
	locator *Locator
	logger  *zap.SugaredLogger

	// httpClient performs the best-effort shutdown handshake.
	httpClient *http.Client

	// exit terminates the host process; injected so tests can observe the
	// exit instead of dying.
	exit func(code int)

	// startMu serializes Start end to end. The handle mutex cannot cover
	// the resolve-and-spawn window, so without this two racing Starts
	// could both see a nil handle and spawn, orphaning one child.
	startMu sync.Mutex

	mu    sync.Mutex
	child *exec.Cmd
}

// NewSupervisor creates a supervisor for the backend described by cfg.
func NewSupervisor(cfg config.BackendConfig, locator *Locator, logger *zap.SugaredLogger) *Supervisor {
	return &Supervisor{
		cfg:     cfg,
		locator: locator,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: cfg.ShutdownTimeout,
		},
		exit: os.Exit,
	}
}

// Start resolves a backend location and spawns it. A sidecar spawn failure
// falls back to a development-tree spawn; only the final failure is
// returned, as a *StartError the caller logs and survives (degraded mode,
// no backend).
func (s *Supervisor) Start() error {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	s.mu.Lock()
	if s.child != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.mu.Unlock()

	if loc, err := s.locator.ResolveSidecar(); err == nil {
		cmd, spawnErr := s.spawnSidecar(loc)
		if spawnErr == nil {
			s.adopt(cmd)
			s.logger.Infow("Sidecar backend started", "pid", cmd.Process.Pid, "port", s.cfg.Port)
			return nil
		}
		// A broken bundle must not strand a dev checkout.
		s.logger.Warnw("Sidecar failed to spawn, trying source tree", "path", loc.Path, "error", spawnErr)
	}

	loc, err := s.locator.ResolveScript()
	if err != nil {
		return &StartError{Err: err}
	}

	cmd, err := s.spawnScript(loc)
	if err != nil {
		return &StartError{Err: err}
	}

	s.adopt(cmd)
	s.logger.Infow("Backend started in dev mode", "pid", cmd.Process.Pid, "script", loc.Path, "port", s.cfg.Port)
	return nil
}

// Status reports running iff the handle is non-empty. There is no liveness
// probe here; health polling is the authoritative readiness signal.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.child != nil {
		return StatusRunning
	}
	return StatusStopped
}

// GracefulShutdown notifies the backend, gives it a brief settle window to
// flush state, kills whatever is left, and hard-exits the host process.
// It never returns; every failing step is swallowed and logged, because
// the only guaranteed outcome of shutdown is process exit.
func (s *Supervisor) GracefulShutdown() {
	s.shutdown("window destroyed")
}

// ForceQuit is the user-facing quit command. It follows the same
// graceful-attempt-before-kill sequence as GracefulShutdown; the two entry
// points exist so logs distinguish who asked.
func (s *Supervisor) ForceQuit() {
	s.shutdown("user quit")
}

func (s *Supervisor) shutdown(reason string) {
	s.logger.Infow("Shutting down backend", "reason", reason)

	// Handshake and settle happen with the lock released; the lock is
	// never held across I/O.
	if err := s.postShutdown(); err != nil {
		s.logger.Warnw("Shutdown handshake failed", "error", err)
	} else {
		s.logger.Info("Graceful shutdown signal sent")
	}

	time.Sleep(s.cfg.SettleTime)

	s.mu.Lock()
	if s.child != nil {
		if err := killProcess(s.child); err != nil {
			s.logger.Warnw("Failed to kill backend process", "pid", s.child.Process.Pid, "error", err)
		} else {
			s.logger.Infow("Backend process terminated", "pid", s.child.Process.Pid)
		}
		s.child = nil
	}
	s.mu.Unlock()

	// Shutdown always exits cleanly; no failure path changes the code.
	s.exit(0)
}

// postShutdown POSTs the backend's shutdown endpoint, bounded by the
// handshake timeout. The response body is irrelevant beyond reachability.
func (s *Supervisor) postShutdown() error {
	resp, err := s.httpClient.Post(s.cfg.ShutdownURL(), "application/json", http.NoBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// adopt stores a freshly spawned child and reaps it in the background so
// the handle clears on confirmed termination.
func (s *Supervisor) adopt(cmd *exec.Cmd) {
	s.mu.Lock()
	s.child = cmd
	s.mu.Unlock()

	go s.reap(cmd)
}

// reap waits for the child and clears the handle, unless shutdown already
// replaced or cleared it.
func (s *Supervisor) reap(cmd *exec.Cmd) {
	err := cmd.Wait()

	s.mu.Lock()
	if s.child == cmd {
		s.child = nil
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warnw("Backend process exited", "pid", cmd.Process.Pid, "error", err)
	} else {
		s.logger.Infow("Backend process exited normally", "pid", cmd.Process.Pid)
	}
}

// spawnSidecar launches a bundled binary directly, no extra arguments,
// stdio inherited for diagnostics (never captured into memory).
func (s *Supervisor) spawnSidecar(loc *Location) (*exec.Cmd, error) {
	cmd := exec.Command(loc.Path)
	cmd.Dir = loc.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// spawnScript launches the dev-tree entry script through the interpreter,
// with PYTHONPATH pointed at the backend directory so its internal imports
// resolve.
func (s *Supervisor) spawnScript(loc *Location) (*exec.Cmd, error) {
	args := []string{loc.Path}
	if s.cfg.VoiceMode {
		args = append(args, "--voice")
	}

	cmd := exec.Command(interpreterPath(loc.Dir), args...)
	cmd.Dir = loc.Dir
	cmd.Env = append(os.Environ(), "PYTHONPATH="+loc.Dir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
