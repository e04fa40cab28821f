package hotkey

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	hk "golang.design/x/hotkey"
)

// GlobalBackend registers hotkeys through the OS-level keyboard hook. Key
// and modifier names map to platform codes in the per-OS files.
type GlobalBackend struct {
	mu         sync.Mutex
	registered map[string]*globalHotkey
	logger     *zap.SugaredLogger
}

// NewGlobalBackend creates the OS-level hotkey backend.
func NewGlobalBackend(logger *zap.SugaredLogger) *GlobalBackend {
	return &GlobalBackend{
		registered: make(map[string]*globalHotkey),
		logger:     logger,
	}
}

// Name implements Backend.
func (b *GlobalBackend) Name() string { return "global" }

// Register implements Backend.
func (b *GlobalBackend) Register(hotkeyStr string) (RegisteredHotkey, error) {
	combo, err := ParseCombo(hotkeyStr)
	if err != nil {
		return nil, err
	}

	mods := make([]hk.Modifier, 0, len(combo.Modifiers))
	for _, name := range combo.Modifiers {
		mod, ok := modifierFromName(name)
		if !ok {
			return nil, fmt.Errorf("modifier %q is not supported on this platform", name)
		}
		mods = append(mods, mod)
	}

	key, ok := keyFromName(combo.Key)
	if !ok {
		return nil, fmt.Errorf("unsupported key %q", combo.Key)
	}

	handle := hk.New(mods, key)
	if err := handle.Register(); err != nil {
		return nil, fmt.Errorf("register %q: %w", hotkeyStr, err)
	}

	gh := newGlobalHotkey(handle)

	b.mu.Lock()
	b.registered[hotkeyStr] = gh
	b.mu.Unlock()

	b.logger.Debugw("Registered global hotkey", "hotkey", hotkeyStr)
	return gh, nil
}

// UnregisterAll implements Backend.
func (b *GlobalBackend) UnregisterAll() error {
	b.mu.Lock()
	registered := b.registered
	b.registered = make(map[string]*globalHotkey)
	b.mu.Unlock()

	var firstErr error
	for str, gh := range registered {
		if err := gh.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unregister %q: %w", str, err)
		}
	}
	return firstErr
}

// globalHotkey forwards the library's keydown events onto a plain
// struct{} channel and tears the forwarder down on Close.
type globalHotkey struct {
	handle  *hk.Hotkey
	keydown chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newGlobalHotkey(handle *hk.Hotkey) *globalHotkey {
	gh := &globalHotkey{
		handle:  handle,
		keydown: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go gh.forward()
	return gh
}

func (gh *globalHotkey) forward() {
	for {
		select {
		case <-gh.handle.Keydown():
			select {
			case gh.keydown <- struct{}{}:
			default:
				// A press is already pending; coalesce.
			}
		case <-gh.done:
			return
		}
	}
}

// Keydown implements RegisteredHotkey.
func (gh *globalHotkey) Keydown() <-chan struct{} { return gh.keydown }

// Close implements RegisteredHotkey.
func (gh *globalHotkey) Close() error {
	var err error
	gh.once.Do(func() {
		close(gh.done)
		err = gh.handle.Unregister()
	})
	return err
}
