// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/simplarr/simplarr/internal/models"
)

// fastPolicy keeps test wall-clock time negligible.
func fastPolicy(attempts int) models.RetryPolicy {
	return models.RetryPolicy{MaxAttempts: attempts, Interval: time.Millisecond}
}

func TestWaitReadyStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok counts as ready", http.StatusOK, true},
		{"redirect counts as ready", http.StatusFound, true},
		{"unauthorized counts as ready", http.StatusUnauthorized, true},
		{"server error is not ready", http.StatusInternalServerError, false},
		{"not found is not ready", http.StatusNotFound, false},
		{"bad gateway is not ready", http.StatusBadGateway, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			p := New(server.Client(), fastPolicy(3))
			if got := p.WaitReady(context.Background(), "svc", server.URL); got != tt.want {
				t.Errorf("WaitReady = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWaitReadySucceedsOnceEndpointComesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 4 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := New(server.Client(), fastPolicy(10))
	if !p.WaitReady(context.Background(), "svc", server.URL) {
		t.Fatal("expected readiness once the endpoint started answering 200")
	}
	if got := calls.Load(); got != 4 {
		t.Errorf("expected polling to stop at the first ready answer, got %d calls", got)
	}
}

func TestWaitReadyExhaustsBudget(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := New(server.Client(), fastPolicy(5))
	if p.WaitReady(context.Background(), "svc", server.URL) {
		t.Fatal("expected false after exhausting the retry budget")
	}
	if got := calls.Load(); got != 5 {
		t.Errorf("expected exactly max_attempts calls, got %d", got)
	}
}

func TestWaitReadyConnectionRefusedIsNotAnError(t *testing.T) {
	// A closed port: the prober must poll quietly and return false.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	p := New(&http.Client{Timeout: 100 * time.Millisecond}, fastPolicy(3))
	if p.WaitReady(context.Background(), "svc", url) {
		t.Fatal("expected false for a connection-refused endpoint")
	}
}

func TestWaitReadyCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(server.Client(), models.RetryPolicy{MaxAttempts: 30, Interval: time.Hour})
	done := make(chan bool, 1)
	go func() { done <- p.WaitReady(ctx, "svc", server.URL) }()

	select {
	case got := <-done:
		if got {
			t.Error("expected false on canceled context")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitReady did not return promptly on canceled context")
	}
}

func TestNewDefaultsZeroPolicy(t *testing.T) {
	p := New(nil, models.RetryPolicy{})
	if p.policy.MaxAttempts != 30 || p.policy.Interval != 2*time.Second {
		t.Errorf("expected the stock policy for a zero value, got %+v", p.policy)
	}
	if p.client == nil {
		t.Error("expected a default HTTP client")
	}
}
