// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package probe polls a service's HTTP endpoint until it reports ready or a
// bounded retry budget is exhausted.
//
// Readiness is deliberately loose: 200, 302, and 401 all count. The arr
// services answer their unauthenticated status probe with 401, which still
// proves the HTTP server is alive, and that is the whole question being
// asked at this stage. Connection refused and timeouts inside the polling
// window are the expected pre-ready state and are never surfaced as errors.
//
// Probes run sequentially per service, so the worst-case startup wait is
// additive. This runs once, interactively, at setup time; simplicity wins
// over speed.
package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/simplarr/simplarr/internal/logging"
	"github.com/simplarr/simplarr/internal/models"
)

// Doer is the subset of *http.Client the prober needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Prober polls HTTP endpoints for readiness.
type Prober struct {
	client Doer
	policy models.RetryPolicy
}

// New creates a Prober with the given HTTP client and retry policy.
// A zero-valued policy falls back to the stock 30x2s default.
func New(client Doer, policy models.RetryPolicy) *Prober {
	if policy.MaxAttempts <= 0 {
		policy = models.DefaultRetryPolicy()
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Prober{client: client, policy: policy}
}

// readyStatus reports whether an HTTP status code proves the server is up.
func readyStatus(code int) bool {
	return code == http.StatusOK || code == http.StatusFound || code == http.StatusUnauthorized
}

// WaitReady issues a GET against url once per interval until the endpoint
// answers with a ready status or the retry budget runs out. Returns false
// on exhaustion or context cancellation; never returns an error for the
// ordinary not-listening-yet conditions.
func (p *Prober) WaitReady(ctx context.Context, name, url string) bool {
	log := logging.With().Str("service", name).Str("url", url).Logger()

	for attempt := 1; attempt <= p.policy.MaxAttempts; attempt++ {
		if ok, code := p.tryOnce(ctx, url); ok {
			log.Debug().Int("attempt", attempt).Int("status", code).Msg("service ready")
			return true
		}

		if attempt == p.policy.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			log.Warn().Msg("readiness probe canceled")
			return false
		case <-time.After(p.policy.Interval):
		}
	}

	log.Warn().Int("attempts", p.policy.MaxAttempts).Dur("budget", p.policy.Budget()).Msg("service not ready within retry budget")
	return false
}

// tryOnce performs a single probe attempt.
func (p *Prober) tryOnce(ctx context.Context, url string) (bool, int) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return false, 0
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// Connection refused, reset, timeout: the service is still booting.
		return false, 0
	}
	defer func() { _ = resp.Body.Close() }()

	return readyStatus(resp.StatusCode), resp.StatusCode
}
