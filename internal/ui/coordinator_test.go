package ui

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/config"
)

// fakeWindow records every call so tests can assert exact transition
// sequences.
type fakeWindow struct {
	mu    sync.Mutex
	calls []string
}

func (w *fakeWindow) record(call string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
}

func (w *fakeWindow) Show() { w.record("show") }

func (w *fakeWindow) Hide() { w.record("hide") }

func (w *fakeWindow) Focus() { w.record("focus") }

func (w *fakeWindow) Center() { w.record("center") }
func (w *fakeWindow) SetSize(width, height int) {
	w.record(fmt.Sprintf("size:%dx%d", width, height))
}
func (w *fakeWindow) SetPosition(x, y int) {
	w.record(fmt.Sprintf("pos:%d,%d", x, y))
}
func (w *fakeWindow) EmitEvent(name string) { w.record("emit:" + name) }

func (w *fakeWindow) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.calls))
	copy(out, w.calls)
	return out
}

func (w *fakeWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = nil
}

func newTestCoordinator() (*Coordinator, *fakeWindow, *fakeWindow) {
	bubble := &fakeWindow{}
	main := &fakeWindow{}
	c := NewCoordinator(bubble, main, config.DefaultConfig().Windows, zap.NewNop().Sugar())
	return c, bubble, main
}

func TestToggleMain(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.ToggleMain()
	assert.Equal(t, []string{"size:480x640", "show", "focus"}, main.Calls())
	assert.True(t, c.MainVisible())

	main.Reset()
	c.ToggleMain()
	assert.Equal(t, []string{"hide"}, main.Calls())
	assert.False(t, c.MainVisible())
}

func TestToggleMainDoesNotEchoIntoItself(t *testing.T) {
	c, _, main := newTestCoordinator()

	// The runtime delivers Go-emitted events back to Go listeners, and the
	// shell routes toggle_main to ToggleMain. Replay every toggle_main the
	// coordinator emitted; the window must still end up visible.
	c.ToggleMain()
	for _, call := range main.Calls() {
		if call == "emit:"+EventToggleMain {
			c.ToggleMain()
		}
	}
	assert.True(t, c.MainVisible())
	assert.NotContains(t, main.Calls(), "emit:"+EventToggleMain)
}

func TestQuickSearchShowAndHide(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.QuickSearch()
	assert.Equal(t, []string{"size:600x60", "center", "show", "focus", "emit:quick_search_trigger"}, main.Calls())

	// Toggling off restores the full size before hiding, so no later
	// reveal can surface the strip geometry.
	main.Reset()
	c.QuickSearch()
	assert.Equal(t, []string{"size:1000x800", "center", "hide"}, main.Calls())
	assert.False(t, c.MainVisible())
}

func TestQuickSearchOverOpenWindow(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.ToggleMain()
	main.Reset()

	// Quick search over an already-open full window hides it, resetting
	// geometry first so the next reveal comes up full size.
	c.QuickSearch()
	assert.Equal(t, []string{"size:1000x800", "center", "hide"}, main.Calls())
	assert.False(t, c.MainVisible())
}

func TestToggleMainResetsQuickSearchGeometry(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.QuickSearch()
	main.Reset()

	// Any hide path out of quick-search mode restores full geometry.
	c.ToggleMain()
	assert.Equal(t, []string{"size:1000x800", "center", "hide"}, main.Calls())
}

func TestForceFullModeIdempotent(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.ForceFullMode()
	want := []string{"size:400x600", "center", "show", "focus", "emit:full_mode_trigger"}
	assert.Equal(t, want, main.Calls())
	assert.True(t, c.MainVisible())

	main.Reset()
	c.ForceFullMode()
	assert.Equal(t, want, main.Calls())
	assert.True(t, c.MainVisible())
}

func TestForceFullModeLeavesQuickSearch(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.QuickSearch()
	c.ForceFullMode()
	main.Reset()

	// Full mode cleared the quick-search flag; hiding now is a plain hide.
	c.ToggleMain()
	assert.Equal(t, []string{"hide"}, main.Calls())
}

func TestToggleHideModeMovieMode(t *testing.T) {
	c, bubble, main := newTestCoordinator()

	c.ShowBubble()
	c.ToggleMain()
	bubble.Reset()
	main.Reset()

	// Hiding the bubble sweeps the main window away with it.
	c.ToggleHideMode()
	assert.Equal(t, []string{"hide"}, bubble.Calls())
	assert.Equal(t, []string{"hide"}, main.Calls())

	// Coming back restores only the bubble.
	bubble.Reset()
	main.Reset()
	c.ToggleHideMode()
	assert.Equal(t, []string{"show"}, bubble.Calls())
	assert.Empty(t, main.Calls())
	assert.False(t, c.MainVisible())
}

func TestHideMainKeepsGeometry(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.ToggleMain()
	main.Reset()

	c.HideMain()
	assert.Equal(t, []string{"hide"}, main.Calls())

	// Hiding an already-hidden window is a no-op.
	main.Reset()
	c.HideMain()
	assert.Empty(t, main.Calls())
}

func TestRevealMain(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.RevealMain()
	assert.Equal(t, []string{"size:480x640", "center", "show", "focus"}, main.Calls())
	assert.True(t, c.MainVisible())
}

func TestEmitToMain(t *testing.T) {
	c, _, main := newTestCoordinator()

	c.EmitToMain(EventBackendReady)
	assert.Equal(t, []string{"emit:backend_ready"}, main.Calls())
}
