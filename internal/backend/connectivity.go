package backend

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/config"
)

// ConnectivityResult is the outcome of a bounded network-reachability wait.
type ConnectivityResult struct {
	Connected bool
	Attempts  int
}

// ConnectivityGate polls a well-known external endpoint so startup can
// distinguish "backend not up" from "no network at all". On the first
// failed probe it fires a one-shot notification; no acknowledgement is
// tracked.
type ConnectivityGate struct {
	url    string
	logger *zap.SugaredLogger

	httpClient *http.Client

	// notifyOffline is invoked exactly once, on the first failed attempt.
	// May be nil.
	notifyOffline func()
}

// NewConnectivityGate creates a gate against the configured external URL.
// notifyOffline delivers the one-time "no internet" signal to the UI.
func NewConnectivityGate(cfg config.StartupConfig, notifyOffline func(), logger *zap.SugaredLogger) *ConnectivityGate {
	return &ConnectivityGate{
		url:    cfg.ConnectivityURL,
		logger: logger,
		httpClient: &http.Client{
			Timeout: cfg.ConnectivityTimeout,
		},
		notifyOffline: notifyOffline,
	}
}

// AwaitInternet polls once per interval up to attempts times. Exhaustion
// is non-fatal: the caller reveals the UI anyway and logs a warning.
func (g *ConnectivityGate) AwaitInternet(attempts int, interval time.Duration) ConnectivityResult {
	g.logger.Infow("Checking internet connectivity", "url", g.url, "max_attempts", attempts)

	notified := false
	for attempt := 1; attempt <= attempts; attempt++ {
		if g.probe() {
			g.logger.Infow("Internet connected", "attempts", attempt)
			return ConnectivityResult{Connected: true, Attempts: attempt}
		}

		if !notified {
			notified = true
			g.logger.Warn("No internet detected, waiting for connection")
			if g.notifyOffline != nil {
				g.notifyOffline()
			}
		}

		if attempt < attempts {
			time.Sleep(interval)
		}
	}

	g.logger.Warnw("No internet connection, continuing anyway", "attempts", attempts)
	return ConnectivityResult{Connected: false, Attempts: attempts}
}

func (g *ConnectivityGate) probe() bool {
	resp, err := g.httpClient.Get(g.url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
