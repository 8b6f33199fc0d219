// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

/*
client.go - Radarr/Sonarr v3 REST API Client

Radarr and Sonarr expose the same v3 API shape for everything the wiring
touches (system status, download clients, root folders), so one client
serves both.

API Reference: https://radarr.video/docs/api/ / https://sonarr.tv/docs/api/
*/

// Package arr provides REST API clients for the managed services: the arr
// automation agents (Radarr/Sonarr), the Prowlarr indexer aggregator, and
// the Overseerr request manager.
package arr

import (
	"context"
	"net/http"
	"strings"
	"time"

	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

// ClientInterface defines the arr v3 API operations the wiring uses.
// Both Client and BreakerClient implement this interface.
type ClientInterface interface {
	SystemStatus(ctx context.Context) (*modelsarr.SystemStatus, error)
	ListDownloadClients(ctx context.Context) ([]modelsarr.DownloadClient, error)
	AddDownloadClient(ctx context.Context, dc modelsarr.DownloadClient) (*modelsarr.DownloadClient, error)
	ListRootFolders(ctx context.Context) ([]modelsarr.RootFolder, error)
	AddRootFolder(ctx context.Context, path string) (*modelsarr.RootFolder, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// Client provides access to the Radarr/Sonarr v3 REST API.
type Client struct {
	requester
}

// NewClient creates a new arr v3 API client.
//
// Parameters:
//   - service: display name for logs and errors ("radarr", "sonarr")
//   - baseURL: service URL (e.g., http://localhost:7878)
//   - apiKey: the <ApiKey> value from the service's config.xml
//   - timeout: fixed per-request timeout, distinct from any polling budget
func NewClient(service, baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{requester{
		service:    service,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}}
}

// SystemStatus retrieves the service's system status. Requires a valid API
// key; used to confirm the resolved credential actually works.
func (c *Client) SystemStatus(ctx context.Context) (*modelsarr.SystemStatus, error) {
	var status modelsarr.SystemStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/v3/system/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListDownloadClients retrieves all registered download clients.
func (c *Client) ListDownloadClients(ctx context.Context) ([]modelsarr.DownloadClient, error) {
	var clients []modelsarr.DownloadClient
	if err := c.doJSON(ctx, http.MethodGet, "/api/v3/downloadclient", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// AddDownloadClient registers a new download client.
func (c *Client) AddDownloadClient(ctx context.Context, dc modelsarr.DownloadClient) (*modelsarr.DownloadClient, error) {
	var created modelsarr.DownloadClient
	if err := c.doJSON(ctx, http.MethodPost, "/api/v3/downloadclient", dc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListRootFolders retrieves all registered media root folders.
func (c *Client) ListRootFolders(ctx context.Context) ([]modelsarr.RootFolder, error) {
	var folders []modelsarr.RootFolder
	if err := c.doJSON(ctx, http.MethodGet, "/api/v3/rootfolder", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// AddRootFolder registers a media root path.
func (c *Client) AddRootFolder(ctx context.Context, path string) (*modelsarr.RootFolder, error) {
	var created modelsarr.RootFolder
	if err := c.doJSON(ctx, http.MethodPost, "/api/v3/rootfolder", modelsarr.RootFolder{Path: path}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
