package lifecycle

// State represents where the desktop shell is in its startup lifecycle.
type State string

const (
	// StateInitializing is the initial state before anything happens.
	StateInitializing State = "initializing"

	// StateLaunchingBackend covers locating and spawning the backend.
	StateLaunchingBackend State = "launching_backend"

	// StateCheckingNetwork covers the external connectivity probe.
	StateCheckingNetwork State = "checking_network"

	// StateWaitingForBackend covers health polling before reveal.
	StateWaitingForBackend State = "waiting_for_backend"

	// StateReady means the backend answered its health check.
	StateReady State = "ready"

	// StateDegraded means the UI revealed without a confirmed backend.
	StateDegraded State = "degraded"

	// StateShuttingDown is terminal; the process exits from here.
	StateShuttingDown State = "shutting_down"
)

// Event represents events that trigger lifecycle transitions.
type Event string

const (
	// EventStart kicks off the startup sequence.
	EventStart Event = "start"

	// EventBackendStarted indicates the child process spawned.
	EventBackendStarted Event = "backend_started"

	// EventBackendUnavailable indicates no backend could be spawned.
	// Startup continues degraded; the gates still poll the port because a
	// fallback spawn may be racing to bind.
	EventBackendUnavailable Event = "backend_unavailable"

	// EventNetworkChecked indicates the connectivity gate finished,
	// connected or not.
	EventNetworkChecked Event = "network_checked"

	// EventBackendReady indicates a health poll succeeded.
	EventBackendReady Event = "backend_ready"

	// EventReadyTimeout indicates the readiness gate exhausted its budget.
	EventReadyTimeout Event = "ready_timeout"

	// EventShutdown requests teardown from any state.
	EventShutdown Event = "shutdown"
)

// DisplayName returns a human-readable label for tray status lines.
func (s State) DisplayName() string {
	switch s {
	case StateInitializing:
		return "Starting..."
	case StateLaunchingBackend:
		return "Launching backend..."
	case StateCheckingNetwork:
		return "Checking network..."
	case StateWaitingForBackend:
		return "Waiting for backend..."
	case StateReady:
		return "Ready"
	case StateDegraded:
		return "Running (backend unavailable)"
	case StateShuttingDown:
		return "Shutting down..."
	default:
		return string(s)
	}
}

// IsTerminal reports whether no further transitions leave this state.
func (s State) IsTerminal() bool {
	return s == StateShuttingDown
}
