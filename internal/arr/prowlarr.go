// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

/*
prowlarr.go - Prowlarr v1 REST API Client

Prowlarr centralizes indexer definitions and pushes them to linked arr
applications. The wiring registers indexers and application links here and
fires the sync command.

API Reference: https://prowlarr.com/docs/api/
*/

package arr

import (
	"context"
	"net/http"
	"strings"
	"time"

	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

// ProwlarrClientInterface defines the Prowlarr v1 API operations the
// wiring uses.
type ProwlarrClientInterface interface {
	SystemStatus(ctx context.Context) (*modelsarr.SystemStatus, error)
	ListIndexers(ctx context.Context) ([]modelsarr.Indexer, error)
	AddIndexer(ctx context.Context, indexer modelsarr.Indexer) (*modelsarr.Indexer, error)
	ListApplications(ctx context.Context) ([]modelsarr.Application, error)
	AddApplication(ctx context.Context, app modelsarr.Application) (*modelsarr.Application, error)
	RunCommand(ctx context.Context, name string) (*modelsarr.Command, error)
}

// Ensure ProwlarrClient implements ProwlarrClientInterface
var _ ProwlarrClientInterface = (*ProwlarrClient)(nil)

// ProwlarrClient provides access to the Prowlarr v1 REST API.
type ProwlarrClient struct {
	requester
}

// NewProwlarrClient creates a new Prowlarr API client.
func NewProwlarrClient(baseURL, apiKey string, timeout time.Duration) *ProwlarrClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ProwlarrClient{requester{
		service:    "prowlarr",
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}}
}

// SystemStatus retrieves Prowlarr's system status.
func (c *ProwlarrClient) SystemStatus(ctx context.Context) (*modelsarr.SystemStatus, error) {
	var status modelsarr.SystemStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/system/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListIndexers retrieves all registered indexers.
func (c *ProwlarrClient) ListIndexers(ctx context.Context) ([]modelsarr.Indexer, error) {
	var indexers []modelsarr.Indexer
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/indexer", nil, &indexers); err != nil {
		return nil, err
	}
	return indexers, nil
}

// AddIndexer registers a new indexer from a static catalog definition.
func (c *ProwlarrClient) AddIndexer(ctx context.Context, indexer modelsarr.Indexer) (*modelsarr.Indexer, error) {
	var created modelsarr.Indexer
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/indexer", indexer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListApplications retrieves all linked arr applications.
func (c *ProwlarrClient) ListApplications(ctx context.Context) ([]modelsarr.Application, error) {
	var apps []modelsarr.Application
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// AddApplication links an arr application so indexers propagate to it.
func (c *ProwlarrClient) AddApplication(ctx context.Context, app modelsarr.Application) (*modelsarr.Application, error) {
	var created modelsarr.Application
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/applications", app, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RunCommand fires an asynchronous Prowlarr command. The call returns as
// soon as the command is queued; completion is never awaited here.
func (c *ProwlarrClient) RunCommand(ctx context.Context, name string) (*modelsarr.Command, error) {
	var queued modelsarr.Command
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/command", modelsarr.Command{Name: name}, &queued); err != nil {
		return nil, err
	}
	return &queued, nil
}
