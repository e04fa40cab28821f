package app

// DesktopService is the method surface bound into the webview frontend.
// Methods must stay cheap; the binding layer calls them on UI callbacks.
//
// The service is created before the orchestrator, because the GUI shell
// needs it at construction time, and wired with Bind before the shell
// runs. The frontend cannot call in until the shell is running.
type DesktopService struct {
	app *App
}

// NewDesktopService creates the frontend-facing service, unwired.
func NewDesktopService() *DesktopService {
	return &DesktopService{}
}

// Bind attaches the orchestrator. Must happen before the shell runs.
func (s *DesktopService) Bind(app *App) {
	s.app = app
}

// BackendStatus reports "running" or "stopped" based on the supervisor's
// child handle.
func (s *DesktopService) BackendStatus() string {
	return string(s.app.supervisor.Status())
}

// LifecycleState reports the human-readable startup phase.
func (s *DesktopService) LifecycleState() string {
	return s.app.machine.Current().DisplayName()
}

// ToggleMainWindow shows or hides the main window.
func (s *DesktopService) ToggleMainWindow() {
	s.app.coordinator.ToggleMain()
}

// ShowMainWindow shows the main window at its default size.
func (s *DesktopService) ShowMainWindow() {
	s.app.coordinator.RevealMain()
}

// HideMainWindow hides the main window without changing its geometry.
func (s *DesktopService) HideMainWindow() {
	s.app.coordinator.HideMain()
}

// ForceQuit tears the whole app down. It does not return.
func (s *DesktopService) ForceQuit() {
	s.app.Quit()
}
