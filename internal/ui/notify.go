package ui

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Notifier shows desktop notifications. A nil icon path is fine; the OS
// falls back to the application icon.
type Notifier struct {
	appName string
	icon    string
	logger  *zap.SugaredLogger
}

// NewNotifier creates a desktop notifier.
func NewNotifier(appName, icon string, logger *zap.SugaredLogger) *Notifier {
	return &Notifier{appName: appName, icon: icon, logger: logger}
}

// Notify shows a desktop notification. Failures are logged and swallowed;
// a missed toast never affects the app.
func (n *Notifier) Notify(title, message string) {
	if err := beeep.Notify(title, message, n.icon); err != nil {
		n.logger.Warnw("Desktop notification failed", "title", title, "error", err)
	}
}

// NotifyNoInternet shows the one network warning the startup gate emits.
func (n *Notifier) NotifyNoInternet() {
	n.Notify(n.appName, "No internet connection. Some features may not work.")
}
