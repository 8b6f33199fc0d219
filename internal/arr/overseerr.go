// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

/*
overseerr.go - Overseerr v1 REST API Client

Overseerr turns user requests into arr-service jobs. It only becomes
wireable after the operator completes the manual Plex OAuth sign-in, so the
status call's Initialized flag gates the whole request-manager branch.

API Reference: https://api-docs.overseerr.dev/
*/

package arr

import (
	"context"
	"net/http"
	"strings"
	"time"

	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

// OverseerrClientInterface defines the Overseerr v1 API operations the
// wiring uses.
type OverseerrClientInterface interface {
	Status(ctx context.Context) (*modelsarr.OverseerrStatus, error)
	MainSettings(ctx context.Context) (*modelsarr.OverseerrMainSettings, error)
	ListRadarrSettings(ctx context.Context) ([]modelsarr.OverseerrServiceSettings, error)
	AddRadarrSettings(ctx context.Context, s modelsarr.OverseerrServiceSettings) (*modelsarr.OverseerrServiceSettings, error)
	ListSonarrSettings(ctx context.Context) ([]modelsarr.OverseerrServiceSettings, error)
	AddSonarrSettings(ctx context.Context, s modelsarr.OverseerrServiceSettings) (*modelsarr.OverseerrServiceSettings, error)
}

// Ensure OverseerrClient implements OverseerrClientInterface
var _ OverseerrClientInterface = (*OverseerrClient)(nil)

// OverseerrClient provides access to the Overseerr v1 REST API.
type OverseerrClient struct {
	requester
}

// NewOverseerrClient creates a new Overseerr API client.
func NewOverseerrClient(baseURL, apiKey string, timeout time.Duration) *OverseerrClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OverseerrClient{requester{
		service:    "overseerr",
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}}
}

// Status retrieves Overseerr's status. This endpoint answers without
// authentication, so it doubles as the readiness and initialization probe.
func (c *OverseerrClient) Status(ctx context.Context) (*modelsarr.OverseerrStatus, error) {
	var status modelsarr.OverseerrStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// MainSettings retrieves Overseerr's main settings, including its API key.
func (c *OverseerrClient) MainSettings(ctx context.Context) (*modelsarr.OverseerrMainSettings, error) {
	var settings modelsarr.OverseerrMainSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/settings/main", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// ListRadarrSettings retrieves the Radarr servers Overseerr knows about.
func (c *OverseerrClient) ListRadarrSettings(ctx context.Context) ([]modelsarr.OverseerrServiceSettings, error) {
	var servers []modelsarr.OverseerrServiceSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/settings/radarr", nil, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// AddRadarrSettings registers a Radarr server with Overseerr.
func (c *OverseerrClient) AddRadarrSettings(ctx context.Context, s modelsarr.OverseerrServiceSettings) (*modelsarr.OverseerrServiceSettings, error) {
	var created modelsarr.OverseerrServiceSettings
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/settings/radarr", s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListSonarrSettings retrieves the Sonarr servers Overseerr knows about.
func (c *OverseerrClient) ListSonarrSettings(ctx context.Context) ([]modelsarr.OverseerrServiceSettings, error) {
	var servers []modelsarr.OverseerrServiceSettings
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/settings/sonarr", nil, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// AddSonarrSettings registers a Sonarr server with Overseerr.
func (c *OverseerrClient) AddSonarrSettings(ctx context.Context, s modelsarr.OverseerrServiceSettings) (*modelsarr.OverseerrServiceSettings, error) {
	var created modelsarr.OverseerrServiceSettings
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/settings/sonarr", s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
