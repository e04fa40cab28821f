package backend

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/chande-dhanush/Sakura/internal/config"
)

func newReadinessGateFor(serverURL string) *ReadinessGate {
	return &ReadinessGate{
		url:        serverURL + "/health",
		logger:     zap.NewNop().Sugar(),
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestAwaitReadyStopsOnFirstSuccess(t *testing.T) {
	var polls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The backend warms up; the first nine polls fail.
		if polls.Add(1) < 10 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gate := newReadinessGateFor(server.URL)
	result := gate.AwaitReady(45, time.Millisecond)

	assert.True(t, result.Ready)
	assert.Equal(t, 10, result.Attempts)
	// No extra poll after success.
	assert.Equal(t, int64(10), polls.Load())
}

func TestAwaitReadyImmediateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result := newReadinessGateFor(server.URL).AwaitReady(45, time.Millisecond)

	assert.True(t, result.Ready)
	assert.Equal(t, 1, result.Attempts)
}

func TestAwaitReadyExhaustsAttempts(t *testing.T) {
	var polls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := newReadinessGateFor(server.URL).AwaitReady(7, time.Millisecond)

	assert.False(t, result.Ready)
	assert.Equal(t, 7, result.Attempts)
	assert.Equal(t, int64(7), polls.Load())
}

func TestAwaitReadyConnectionRefused(t *testing.T) {
	gate := &ReadinessGate{
		url:        "http://127.0.0.1:1/health",
		logger:     zap.NewNop().Sugar(),
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
	}

	result := gate.AwaitReady(3, time.Millisecond)
	assert.False(t, result.Ready)
	assert.Equal(t, 3, result.Attempts)
}

func TestAwaitReadyHungBackendIsBounded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Accept the connection, never answer.
		<-r.Context().Done()
	}))
	defer server.Close()

	gate := newReadinessGateFor(server.URL)
	gate.httpClient.Timeout = 50 * time.Millisecond

	start := time.Now()
	result := gate.AwaitReady(3, time.Millisecond)

	assert.False(t, result.Ready)
	assert.Equal(t, 3, result.Attempts)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewReadinessGateAppliesHealthTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	gate := NewReadinessGate(cfg.Backend, cfg.Startup, zap.NewNop().Sugar())

	assert.Equal(t, cfg.Startup.HealthTimeout, gate.httpClient.Timeout)
	assert.Equal(t, cfg.Backend.HealthURL(), gate.url)
}

func TestAwaitReadyRedirectIsNotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	}))
	defer server.Close()

	result := newReadinessGateFor(server.URL).AwaitReady(2, time.Millisecond)
	assert.False(t, result.Ready)
}
