package lifecycle

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Transition records a state change with its trigger.
type Transition struct {
	From      State
	To        State
	Event     Event
	Timestamp time.Time
}

// Machine serializes the shell's startup lifecycle. Events may arrive from
// any goroutine; transitions are applied one at a time by a single run
// loop, and subscribers observe them in order.
type Machine struct {
	mu           sync.RWMutex
	currentState State
	logger       *zap.SugaredLogger

	eventCh       chan Event
	shutdownCh    chan struct{}
	subscribers   []chan Transition
	subscribersMu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewMachine creates a lifecycle machine in the initializing state.
func NewMachine(logger *zap.SugaredLogger) *Machine {
	ctx, cancel := context.WithCancel(context.Background())

	return &Machine{
		currentState: StateInitializing,
		logger:       logger,
		eventCh:      make(chan Event, 10),
		shutdownCh:   make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start starts the machine's run loop.
func (m *Machine) Start() {
	m.logger.Infow("Lifecycle machine starting", "initial_state", m.currentState)
	go m.run()
}

// SendEvent delivers an event to the machine. Events sent after shutdown
// or into a full queue are dropped with a log line rather than blocking a
// UI callback.
func (m *Machine) SendEvent(event Event) {
	select {
	case m.eventCh <- event:
	case <-m.ctx.Done():
		m.logger.Debugw("Event dropped due to shutdown", "event", event)
	default:
		m.logger.Warnw("Event channel full, dropping event", "event", event)
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState
}

// Subscribe returns a channel receiving every transition from now on.
func (m *Machine) Subscribe() <-chan Transition {
	m.subscribersMu.Lock()
	defer m.subscribersMu.Unlock()

	ch := make(chan Transition, 10)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

// Shutdown requests teardown and waits briefly for the run loop to reach
// the terminal state.
func (m *Machine) Shutdown() {
	m.SendEvent(EventShutdown)

	select {
	case <-m.shutdownCh:
	case <-time.After(5 * time.Second):
		m.logger.Warn("Lifecycle machine shutdown timeout, forcing")
	}
	m.cancel()
}

func (m *Machine) run() {
	defer close(m.shutdownCh)

	for {
		select {
		case event := <-m.eventCh:
			m.handleEvent(event)
		case <-m.ctx.Done():
			return
		}

		if m.Current().IsTerminal() {
			m.logger.Info("Lifecycle machine reached terminal state")
			return
		}
	}
}

func (m *Machine) handleEvent(event Event) {
	current := m.Current()
	next := nextState(current, event)
	if next == current {
		m.logger.Debugw("No transition", "state", current, "event", event)
		return
	}

	m.mu.Lock()
	m.currentState = next
	m.mu.Unlock()

	transition := Transition{
		From:      current,
		To:        next,
		Event:     event,
		Timestamp: time.Now(),
	}
	m.logger.Infow("Lifecycle transition", "from", current, "to", next, "event", event)
	m.notifySubscribers(transition)
}

// nextState encodes the startup ordering: spawn, then network, then
// readiness, then reveal. The degraded branch is taken when the readiness
// gate gives up. Shutdown is reachable from everywhere.
func nextState(current State, event Event) State {
	if event == EventShutdown {
		return StateShuttingDown
	}

	switch current {
	case StateInitializing:
		if event == EventStart {
			return StateLaunchingBackend
		}

	case StateLaunchingBackend:
		switch event {
		case EventBackendStarted, EventBackendUnavailable:
			return StateCheckingNetwork
		}

	case StateCheckingNetwork:
		if event == EventNetworkChecked {
			return StateWaitingForBackend
		}

	case StateWaitingForBackend:
		switch event {
		case EventBackendReady:
			return StateReady
		case EventReadyTimeout:
			return StateDegraded
		}

	case StateReady, StateDegraded:
		// Steady states; only shutdown leaves them.

	case StateShuttingDown:
		return StateShuttingDown
	}

	return current
}

func (m *Machine) notifySubscribers(transition Transition) {
	m.subscribersMu.RLock()
	defer m.subscribersMu.RUnlock()

	for _, subscriber := range m.subscribers {
		select {
		case subscriber <- transition:
		default:
			m.logger.Debug("Subscriber channel full, dropping transition")
		}
	}
}
