// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package arr

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/simplarr/simplarr/internal/logging"
	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

// BreakerClient wraps Client with a circuit breaker so a service that came
// up and then started flapping fails fast instead of burning the fixed
// per-request timeout on every remaining wiring step.
//
// The breaker uses real time for its interval and timeout calculations.
// Unit tests should exercise the wrapped Client directly.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
}

// Ensure BreakerClient implements ClientInterface
var _ ClientInterface = (*BreakerClient)(nil)

// NewBreakerClient creates an arr client with circuit breaker protection.
// The breaker opens after 3 consecutive failures and probes again after 30
// seconds, sized for a short interactive wiring run rather than a
// long-lived server.
func NewBreakerClient(client *Client) *BreakerClient {
	name := client.service + "-api"

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state transition")
		},
	})

	return &BreakerClient{client: client, cb: cb}
}

// execute wraps an API call with circuit breaker protection.
func (b *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	return b.cb.Execute(fn)
}

// castResult safely type-casts the circuit breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// SystemStatus retrieves system status with circuit breaker protection.
func (b *BreakerClient) SystemStatus(ctx context.Context) (*modelsarr.SystemStatus, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.client.SystemStatus(ctx)
	})
	return castResult[*modelsarr.SystemStatus](result, err)
}

// ListDownloadClients lists download clients with circuit breaker protection.
func (b *BreakerClient) ListDownloadClients(ctx context.Context) ([]modelsarr.DownloadClient, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.client.ListDownloadClients(ctx)
	})
	return castResult[[]modelsarr.DownloadClient](result, err)
}

// AddDownloadClient adds a download client with circuit breaker protection.
func (b *BreakerClient) AddDownloadClient(ctx context.Context, dc modelsarr.DownloadClient) (*modelsarr.DownloadClient, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.client.AddDownloadClient(ctx, dc)
	})
	return castResult[*modelsarr.DownloadClient](result, err)
}

// ListRootFolders lists root folders with circuit breaker protection.
func (b *BreakerClient) ListRootFolders(ctx context.Context) ([]modelsarr.RootFolder, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.client.ListRootFolders(ctx)
	})
	return castResult[[]modelsarr.RootFolder](result, err)
}

// AddRootFolder adds a root folder with circuit breaker protection.
func (b *BreakerClient) AddRootFolder(ctx context.Context, path string) (*modelsarr.RootFolder, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.client.AddRootFolder(ctx, path)
	})
	return castResult[*modelsarr.RootFolder](result, err)
}
