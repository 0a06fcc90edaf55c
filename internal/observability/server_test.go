// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func alwaysReady(context.Context) bool { return true }

func startServer(t *testing.T, ready ReadinessChecker) *Server {
	t.Helper()
	server := NewServer("127.0.0.1:0", ready)
	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	})
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	if err != nil {
		t.Fatalf("failed to GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Metrics(t *testing.T) {
	server := startServer(t, alwaysReady)

	addr := server.Addr()
	if addr == "" {
		t.Fatal("server address is empty")
	}

	status, body := get(t, "http://"+addr+"/metrics")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	for _, want := range []string{"# HELP", "# TYPE", "go_", "process_"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}

	metrics := server.Metrics()
	metrics.ObserveRequest(http.MethodPost, "/api/auth/login", http.StatusOK, 15*time.Millisecond)
	metrics.AuthEvent("login", nil)

	_, body = get(t, "http://"+addr+"/metrics")
	for _, want := range []string{
		"carehaven_http_requests_total",
		"carehaven_http_request_duration_seconds",
		"carehaven_auth_events_total",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s metric", want)
		}
	}
}

func TestServer_LivenessReturns200(t *testing.T) {
	server := startServer(t, nil)

	status, body := get(t, "http://"+server.Addr()+"/healthz/liveness")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if strings.TrimSpace(body) != "ok" {
		t.Errorf("expected body 'ok', got %q", body)
	}
}

func TestServer_Readiness(t *testing.T) {
	tests := []struct {
		name   string
		ready  ReadinessChecker
		status int
		body   string
	}{
		{"ready", alwaysReady, http.StatusOK, "ok"},
		{"not ready", func(context.Context) bool { return false }, http.StatusServiceUnavailable, "not ready"},
		{"nil checker", nil, http.StatusOK, "ok"},
		{"ping ok", PingReadiness(stubPinger{}), http.StatusOK, "ok"},
		{"ping failing", PingReadiness(stubPinger{err: errors.New("connection refused")}), http.StatusServiceUnavailable, "not ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := startServer(t, tt.ready)

			status, body := get(t, "http://"+server.Addr()+"/healthz/readiness")
			if status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, status)
			}
			if strings.TrimSpace(body) != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, body)
			}
		})
	}
}

func TestServer_ReadinessCheckGetsDeadline(t *testing.T) {
	var hadDeadline bool
	server := startServer(t, func(ctx context.Context) bool {
		_, hadDeadline = ctx.Deadline()
		return true
	})

	get(t, "http://"+server.Addr()+"/healthz/readiness")
	if !hadDeadline {
		t.Error("readiness check should run under a deadline")
	}
}

func TestServer_DoubleStartFails(t *testing.T) {
	server := startServer(t, nil)

	if _, err := server.Start(); err == nil {
		t.Error("expected error on double start, got nil")
	}
}

func TestServer_StopIdempotent(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Errorf("stop without start should not error: %v", err)
	}
}

func TestServer_ErrorChannelReportsServeErrors(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	errCh, err := server.Start()
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	// Closing the listener makes Serve fail after Start returned.
	if server.listener != nil {
		_ = server.listener.Close()
	}

	select {
	case serveErr := <-errCh:
		if serveErr == nil {
			t.Error("expected an error from the error channel after closing listener")
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for error on error channel")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Stop(ctx)
}

func TestServer_ErrorChannelClosesOnNormalShutdown(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	errCh, err := server.Start()
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Fatalf("failed to stop server: %v", err)
	}

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			t.Errorf("unexpected error on normal shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for error channel to close")
	}
}

func TestMetrics_Increment(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ObserveRequest(http.MethodGet, "/api/elders", http.StatusOK, time.Millisecond)
	metrics.ObserveRequest(http.MethodGet, "/api/elders", http.StatusNoContent, time.Millisecond)
	metrics.ObserveRequest(http.MethodGet, "/api/elders", http.StatusNotFound, time.Millisecond)
	metrics.AuthEvent("login", nil)
	metrics.AuthEvent("login", errors.New("bad password"))
	metrics.AuthEvent("login", errors.New("bad password"))

	if got := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/elders", "2xx")); got != 2 {
		t.Errorf("expected 2 successful requests, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/elders", "4xx")); got != 1 {
		t.Errorf("expected 1 client error, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.AuthEvents.WithLabelValues("login", OutcomeFailure)); got != 2 {
		t.Errorf("expected 2 failed logins, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.AuthEvents.WithLabelValues("login", OutcomeSuccess)); got != 1 {
		t.Errorf("expected 1 successful login, got %v", got)
	}
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var metrics *Metrics
	metrics.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	metrics.AuthEvent("gate", nil)
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{100: "1xx", 200: "2xx", 302: "3xx", 404: "4xx", 503: "5xx"}
	for status, want := range tests {
		if got := statusClass(status); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
