// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package config defines Simplarr's configuration and loads it via Koanf v2
// layered sources: built-in defaults, an optional YAML file, and
// environment variables (highest priority).
package config

import (
	"fmt"
	"time"

	"github.com/simplarr/simplarr/internal/models"
)

// Config is the root configuration for one orchestrator run.
type Config struct {
	Paths       PathsConfig       `koanf:"paths"`
	Deploy      DeployConfig      `koanf:"deploy"`
	Services    ServicesConfig    `koanf:"services"`
	QBittorrent QBittorrentConfig `koanf:"qbittorrent"`
	Probe       ProbeConfig       `koanf:"probe"`
	LogScrape   LogScrapeConfig   `koanf:"log_scrape"`
	HTTP        HTTPConfig        `koanf:"http"`
	Sync        SyncConfig        `koanf:"sync"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// PathsConfig locates the shared directory tree on disk.
type PathsConfig struct {
	// ConfigRoot is the host directory holding each service's generated
	// config store ({config_root}/{service}/...). Written by the
	// containers on first boot, only ever read here.
	ConfigRoot string `koanf:"config_root" validate:"required"`

	// MediaRoot is the host directory backing the media library.
	MediaRoot string `koanf:"media_root"`

	// MovieFolder and SeriesFolder are container-side root folder paths
	// registered with the arr services.
	MovieFolder  string `koanf:"movie_folder" validate:"required"`
	SeriesFolder string `koanf:"series_folder" validate:"required"`
}

// DeployConfig carries the compose-stack identity values. The orchestrator
// does not act on these; they are surfaced in logs so a run records the
// stack it wired.
type DeployConfig struct {
	PUID string `koanf:"puid"`
	PGID string `koanf:"pgid"`
	TZ   string `koanf:"tz"`
}

// ServiceConfig is one managed service's HTTP surface.
type ServiceConfig struct {
	// URL overrides the default http://localhost:{port} base URL the
	// orchestrator reaches the service at.
	URL string `koanf:"url" validate:"omitempty,url"`

	// Host is the compose-network hostname other containers use. Defaults
	// to the service name.
	Host string `koanf:"host"`

	// Port is the service's internal listening port.
	Port int `koanf:"port" validate:"gt=0,lte=65535"`
}

// ServicesConfig holds per-service endpoint overrides.
type ServicesConfig struct {
	Radarr      ServiceConfig `koanf:"radarr"`
	Sonarr      ServiceConfig `koanf:"sonarr"`
	Prowlarr    ServiceConfig `koanf:"prowlarr"`
	QBittorrent ServiceConfig `koanf:"qbittorrent"`
	Overseerr   ServiceConfig `koanf:"overseerr"`
}

// QBittorrentConfig holds the torrent client specifics beyond its endpoint.
type QBittorrentConfig struct {
	// Container is the container name whose log stream carries the
	// temporary WebUI password.
	Container string `koanf:"container" validate:"required"`

	// Password overrides log scraping entirely when set (QB_PASSWORD).
	Password string `koanf:"password"`
}

// ProbeConfig bounds the readiness polling loop. The 30x2s defaults match
// observed service boot times; they are configuration, not constants.
type ProbeConfig struct {
	MaxAttempts int           `koanf:"max_attempts" validate:"gt=0"`
	Interval    time.Duration `koanf:"interval" validate:"gt=0"`
}

// LogScrapeConfig bounds the temporary-password log scrape.
type LogScrapeConfig struct {
	Retries    int           `koanf:"retries" validate:"gte=0"`
	RetryDelay time.Duration `koanf:"retry_delay" validate:"gte=0"`
}

// HTTPConfig holds the fixed per-request timeout, distinct from the probe
// budget.
type HTTPConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// SyncConfig holds the post-trigger grace period. The sync command is
// fire-and-forget; the grace sleep is all the waiting that happens.
type SyncConfig struct {
	Grace time.Duration `koanf:"grace" validate:"gte=0"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// serviceConfig returns the section for the named service.
func (c *Config) serviceConfig(service models.Service) ServiceConfig {
	switch service {
	case models.ServiceRadarr:
		return c.Services.Radarr
	case models.ServiceSonarr:
		return c.Services.Sonarr
	case models.ServiceProwlarr:
		return c.Services.Prowlarr
	case models.ServiceQBittorrent:
		return c.Services.QBittorrent
	case models.ServiceOverseerr:
		return c.Services.Overseerr
	default:
		return ServiceConfig{}
	}
}

// Endpoint builds the immutable endpoint identity for one managed service
// from configuration and defaults.
func (c *Config) Endpoint(service models.Service) models.Endpoint {
	sc := c.serviceConfig(service)

	baseURL := sc.URL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", sc.Port)
	}
	host := sc.Host
	if host == "" {
		host = string(service)
	}

	return models.Endpoint{
		Name:         service,
		BaseURL:      baseURL,
		InternalHost: host,
		Port:         sc.Port,
	}
}

// RetryPolicy returns the probe retry policy as a models value.
func (c *Config) RetryPolicy() models.RetryPolicy {
	return models.RetryPolicy{
		MaxAttempts: c.Probe.MaxAttempts,
		Interval:    c.Probe.Interval,
	}
}
