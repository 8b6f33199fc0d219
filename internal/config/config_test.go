// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplarr/simplarr/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	// The docker CLI sets DOCKER_CONFIG in some environments; pin it so the
	// defaults are actually observable.
	t.Setenv("DOCKER_CONFIG", "./config")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./config", cfg.Paths.ConfigRoot)
	assert.Equal(t, "/movies", cfg.Paths.MovieFolder)
	assert.Equal(t, "/tv", cfg.Paths.SeriesFolder)

	assert.Equal(t, 7878, cfg.Services.Radarr.Port)
	assert.Equal(t, 8989, cfg.Services.Sonarr.Port)
	assert.Equal(t, 9696, cfg.Services.Prowlarr.Port)
	assert.Equal(t, 8080, cfg.Services.QBittorrent.Port)
	assert.Equal(t, 5055, cfg.Services.Overseerr.Port)

	assert.Equal(t, "qbittorrent", cfg.QBittorrent.Container)
	assert.Empty(t, cfg.QBittorrent.Password)

	assert.Equal(t, 30, cfg.Probe.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Probe.Interval)
	assert.Equal(t, 1, cfg.LogScrape.Retries)
	assert.Equal(t, 30*time.Second, cfg.LogScrape.RetryDelay)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DOCKER_CONFIG", "/srv/stack/config")
	t.Setenv("DOCKER_MEDIA", "/srv/stack/media")
	t.Setenv("RADARR_URL", "http://10.0.0.5:7878")
	t.Setenv("SONARR_PORT", "18989")
	t.Setenv("QB_PASSWORD", "override-secret")
	t.Setenv("PROBE_MAX_ATTEMPTS", "5")
	t.Setenv("PROBE_INTERVAL", "500ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/stack/config", cfg.Paths.ConfigRoot)
	assert.Equal(t, "/srv/stack/media", cfg.Paths.MediaRoot)
	assert.Equal(t, "http://10.0.0.5:7878", cfg.Services.Radarr.URL)
	assert.Equal(t, 18989, cfg.Services.Sonarr.Port)
	assert.Equal(t, "override-secret", cfg.QBittorrent.Password)
	assert.Equal(t, 5, cfg.Probe.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Probe.Interval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simplarr.yaml")
	content := `
paths:
  config_root: /opt/media/config
services:
  radarr:
    port: 17878
probe:
  max_attempts: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/media/config", cfg.Paths.ConfigRoot)
	assert.Equal(t, 17878, cfg.Services.Radarr.Port)
	assert.Equal(t, 10, cfg.Probe.MaxAttempts)

	// Untouched sections keep their defaults.
	assert.Equal(t, 8989, cfg.Services.Sonarr.Port)
	assert.Equal(t, 2*time.Second, cfg.Probe.Interval)
}

func TestEnvBeatsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simplarr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("probe:\n  max_attempts: 10\n"), 0o644))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PROBE_MAX_ATTEMPTS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Probe.MaxAttempts)
}

func TestLoadRejectsInvalidServiceURL(t *testing.T) {
	t.Setenv("RADARR_URL", "ftp://radarr:7878")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RADARR_URL")
}

func TestValidateRejectsRelativeFolder(t *testing.T) {
	cfg := defaultConfig()
	cfg.Paths.MovieFolder = "movies"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestEnvTransformSkipsUnmappedKeys(t *testing.T) {
	assert.Equal(t, "paths.config_root", envTransformFunc("DOCKER_CONFIG"))
	assert.Equal(t, "qbittorrent.password", envTransformFunc("QB_PASSWORD"))
	assert.Empty(t, envTransformFunc("HOME"))
	assert.Empty(t, envTransformFunc("LANG"))
}

func TestEndpointDefaults(t *testing.T) {
	cfg := defaultConfig()

	ep := cfg.Endpoint(models.ServiceRadarr)
	assert.Equal(t, models.ServiceRadarr, ep.Name)
	assert.Equal(t, "http://localhost:7878", ep.BaseURL)
	assert.Equal(t, "radarr", ep.InternalHost)
	assert.Equal(t, 7878, ep.Port)
}

func TestEndpointOverrides(t *testing.T) {
	cfg := defaultConfig()
	cfg.Services.QBittorrent.URL = "http://nas.local:9090"
	cfg.Services.QBittorrent.Host = "torrent-box"
	cfg.Services.QBittorrent.Port = 9090

	ep := cfg.Endpoint(models.ServiceQBittorrent)
	assert.Equal(t, "http://nas.local:9090", ep.BaseURL)
	assert.Equal(t, "torrent-box", ep.InternalHost)
	assert.Equal(t, 9090, ep.Port)
}

func TestRetryPolicyFromConfig(t *testing.T) {
	cfg := defaultConfig()

	policy := cfg.RetryPolicy()
	assert.Equal(t, 30, policy.MaxAttempts)
	assert.Equal(t, 2*time.Second, policy.Interval)
	assert.Equal(t, time.Minute, policy.Budget())
}
