package backend

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/config"
)

// ReadinessResult is the outcome of a bounded readiness wait.
type ReadinessResult struct {
	Ready    bool
	Attempts int
	Elapsed  time.Duration
}

// ReadinessGate polls the backend's health endpoint before the main window
// is revealed. Any HTTP success status counts as ready; any failure,
// connection refused included, counts as not-yet-ready. The gate does not
// distinguish transient from fatal backend trouble.
type ReadinessGate struct {
	url    string
	logger *zap.SugaredLogger

	httpClient *http.Client
}

// NewReadinessGate creates a gate against the configured health endpoint.
// Each probe is bounded by the startup health timeout so a backend that
// accepts the connection but never answers cannot stall the whole gate.
func NewReadinessGate(cfg config.BackendConfig, startup config.StartupConfig, logger *zap.SugaredLogger) *ReadinessGate {
	return &ReadinessGate{
		url:        cfg.HealthURL(),
		logger:     logger,
		httpClient: &http.Client{Timeout: startup.HealthTimeout},
	}
}

// AwaitReady polls once per interval up to attempts times, returning as
// soon as a poll succeeds (no extra poll after success). Exhaustion is not
// an error for the caller: the UI reveals anyway, degraded.
func (g *ReadinessGate) AwaitReady(attempts int, interval time.Duration) ReadinessResult {
	g.logger.Infow("Waiting for backend to become ready", "url", g.url, "max_attempts", attempts)
	start := time.Now()

	for attempt := 1; attempt <= attempts; attempt++ {
		if g.probe() {
			elapsed := time.Since(start)
			g.logger.Infow("Backend ready", "attempts", attempt, "elapsed", elapsed)
			return ReadinessResult{Ready: true, Attempts: attempt, Elapsed: elapsed}
		}
		if attempt < attempts {
			time.Sleep(interval)
		}
	}

	elapsed := time.Since(start)
	g.logger.Warnw("Backend readiness timed out", "attempts", attempts, "elapsed", elapsed)
	return ReadinessResult{Ready: false, Attempts: attempts, Elapsed: elapsed}
}

func (g *ReadinessGate) probe() bool {
	resp, err := g.httpClient.Get(g.url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
