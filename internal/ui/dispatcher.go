package ui

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/ui/hotkey"
)

// Binding ties a hotkey string to the action it triggers.
type Binding struct {
	Combo  string
	Name   string
	Action func()
}

// Dispatcher registers global shortcuts and runs a listener goroutine per
// registered hotkey. Actions run on the listener goroutine, so they must
// be quick and must not block on the dispatcher itself.
type Dispatcher struct {
	backend hotkey.Backend
	logger  *zap.SugaredLogger

	mu      sync.Mutex
	handles []hotkey.RegisteredHotkey
	done    chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// NewDispatcher creates a dispatcher over the given hotkey backend.
func NewDispatcher(backend hotkey.Backend, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		backend: backend,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Register registers every binding, starting a listener for each. If any
// registration fails the previously registered hotkeys are released and
// the error is returned; the caller treats that as fatal, since a shell
// without its shortcuts is not usable.
func (d *Dispatcher) Register(bindings []Binding) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, binding := range bindings {
		handle, err := d.backend.Register(binding.Combo)
		if err != nil {
			d.releaseLocked()
			return fmt.Errorf("register shortcut %s (%s): %w", binding.Combo, binding.Name, err)
		}

		d.handles = append(d.handles, handle)
		d.wg.Add(1)
		go d.listen(handle, binding)
		d.logger.Infow("Registered shortcut", "combo", binding.Combo, "action", binding.Name, "backend", d.backend.Name())
	}
	return nil
}

// Close stops the listeners and releases every registered hotkey.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.done)
	d.releaseLocked()
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) listen(handle hotkey.RegisteredHotkey, binding Binding) {
	defer d.wg.Done()

	for {
		select {
		case <-handle.Keydown():
			d.logger.Debugw("Shortcut pressed", "combo", binding.Combo, "action", binding.Name)
			binding.Action()
		case <-d.done:
			return
		}
	}
}

// releaseLocked unregisters everything. Callers must hold d.mu.
func (d *Dispatcher) releaseLocked() {
	if err := d.backend.UnregisterAll(); err != nil {
		d.logger.Warnw("Failed to unregister shortcuts", "error", err)
	}
	d.handles = nil
}
