package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// Mode indicates how a resolved backend location must be launched.
type Mode string

const (
	// ModeSidecar is a bundled production binary spawned directly.
	ModeSidecar Mode = "bundled-sidecar"

	// ModeScript is a development-tree entry script spawned through the
	// Python interpreter.
	ModeScript Mode = "source-script"
)

// ScriptMarker is the file identifying the backend's entry script in a
// development checkout.
const ScriptMarker = "server.py"

// ErrNotFound is returned when no backend binary or entry script exists in
// any candidate location. Callers must treat this as a non-fatal startup
// warning, not a crash.
var ErrNotFound = errors.New("backend binary or server script not found")

// Location is a resolved backend launch target. It is immutable once
// resolved; every start attempt re-resolves from scratch.
type Location struct {
	// Path is the resolved binary or script file.
	Path string

	// Dir is the working directory the backend must be spawned with.
	Dir string

	Mode Mode
}

// Locator probes a short deterministic candidate list for a runnable
// backend. Production sidecar layouts are tried before the development
// source tree; the first existing file wins.
type Locator struct {
	logger *zap.SugaredLogger

	// Probe roots, overridable in tests.
	execDir     string
	resourceDir string
	workDir     string
}

// NewLocator creates a locator rooted at the current executable's
// directory. resourceDir may be empty when the shell runs unbundled.
func NewLocator(resourceDir string, logger *zap.SugaredLogger) *Locator {
	l := &Locator{
		logger:      logger,
		resourceDir: resourceDir,
	}

	if execPath, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
			l.execDir = filepath.Dir(resolved)
		} else {
			l.execDir = filepath.Dir(execPath)
		}
	}
	if wd, err := os.Getwd(); err == nil {
		l.workDir = wd
	}

	return l
}

// Resolve returns the first matching backend location, sidecar candidates
// first, then the development source tree. Returns ErrNotFound when
// nothing matches.
func (l *Locator) Resolve() (*Location, error) {
	if loc, err := l.ResolveSidecar(); err == nil {
		return loc, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return l.ResolveScript()
}

// ResolveSidecar probes the bundled-binary layout: the executable's own
// directory, the resources directory, and resources/binaries, against a
// short list of platform filenames. First existing file wins.
func (l *Locator) ResolveSidecar() (*Location, error) {
	var dirs []string
	if l.execDir != "" {
		dirs = append(dirs, l.execDir) // flattened bundle root
	}
	if l.resourceDir != "" {
		dirs = append(dirs, l.resourceDir)
		dirs = append(dirs, filepath.Join(l.resourceDir, "binaries"))
	}

	for _, dir := range dirs {
		for _, name := range sidecarNames() {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				l.logger.Infow("Found backend sidecar", "path", candidate)
				workDir := l.resourceDir
				if workDir == "" {
					workDir = l.execDir
				}
				return &Location{Path: candidate, Dir: workDir, Mode: ModeSidecar}, nil
			}
		}
	}

	return nil, fmt.Errorf("no sidecar in %d candidate directories: %w", len(dirs), ErrNotFound)
}

// ResolveScript probes the development layout: ancestor-relative backend
// directories derived from the executable path, then from the working
// directory, each identified by the entry-script marker.
func (l *Locator) ResolveScript() (*Location, error) {
	var dirs []string

	if l.execDir != "" {
		// Dev builds place the shell binary several levels below the
		// checkout root.
		dirs = append(dirs,
			filepath.Join(l.execDir, "..", "..", "..", "..", "backend"),
			filepath.Join(l.execDir, "..", "..", "..", "backend"),
		)
	}
	if l.workDir != "" {
		dirs = append(dirs,
			filepath.Join(l.workDir, "backend"),
			filepath.Join(l.workDir, "..", "backend"),
			filepath.Join(l.workDir, "..", "..", "backend"),
		)
	}

	for _, dir := range dirs {
		script := filepath.Join(dir, ScriptMarker)
		if info, err := os.Stat(script); err == nil && !info.IsDir() {
			resolved := filepath.Clean(dir)
			l.logger.Infow("Found backend source tree", "dir", resolved)
			return &Location{Path: filepath.Clean(script), Dir: resolved, Mode: ModeScript}, nil
		}
	}

	l.logger.Warnw("Could not find backend", "marker", ScriptMarker, "candidates", len(dirs))
	return nil, ErrNotFound
}

// interpreterPath picks the Python interpreter for a dev-mode spawn: the
// checkout's own venv when present, system Python otherwise.
func interpreterPath(backendDir string) string {
	root := filepath.Dir(backendDir)

	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}

	venvPython := filepath.Join(root, "PA", "Scripts", name)
	if info, err := os.Stat(venvPython); err == nil && !info.IsDir() {
		return venvPython
	}

	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// sidecarNames returns the platform-specific bundled binary filenames, in
// priority order.
func sidecarNames() []string {
	if runtime.GOOS == "windows" {
		return []string{"sakura-backend-x86_64-pc-windows-msvc.exe", "sakura-backend.exe"}
	}
	return []string{"sakura-backend"}
}
