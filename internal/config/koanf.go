// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"simplarr.yaml",
	"simplarr.yml",
	"/etc/simplarr/simplarr.yaml",
	"/etc/simplarr/simplarr.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "SIMPLARR_CONFIG"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			ConfigRoot:   "./config",
			MediaRoot:    "./media",
			MovieFolder:  "/movies",
			SeriesFolder: "/tv",
		},
		Services: ServicesConfig{
			Radarr:      ServiceConfig{Port: 7878},
			Sonarr:      ServiceConfig{Port: 8989},
			Prowlarr:    ServiceConfig{Port: 9696},
			QBittorrent: ServiceConfig{Port: 8080},
			Overseerr:   ServiceConfig{Port: 5055},
		},
		QBittorrent: QBittorrentConfig{
			Container: "qbittorrent",
			Password:  "",
		},
		Probe: ProbeConfig{
			MaxAttempts: 30,
			Interval:    2 * time.Second,
		},
		LogScrape: LogScrapeConfig{
			Retries:    1,
			RetryDelay: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Timeout: 10 * time.Second,
		},
		Sync: SyncConfig{
			Grace: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// The surface matches what the compose stack's scripts already use
// (DOCKER_CONFIG, RADARR_URL, QB_PASSWORD, ...), so an existing deployment
// configures this tool without changes.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Shared directory tree
		"docker_config": "paths.config_root",
		"docker_media":  "paths.media_root",
		"movie_folder":  "paths.movie_folder",
		"series_folder": "paths.series_folder",

		// Compose stack identity
		"puid": "deploy.puid",
		"pgid": "deploy.pgid",
		"tz":   "deploy.tz",

		// Per-service endpoint overrides
		"radarr_url":       "services.radarr.url",
		"radarr_host":      "services.radarr.host",
		"radarr_port":      "services.radarr.port",
		"sonarr_url":       "services.sonarr.url",
		"sonarr_host":      "services.sonarr.host",
		"sonarr_port":      "services.sonarr.port",
		"prowlarr_url":     "services.prowlarr.url",
		"prowlarr_host":    "services.prowlarr.host",
		"prowlarr_port":    "services.prowlarr.port",
		"qbittorrent_url":  "services.qbittorrent.url",
		"qbittorrent_host": "services.qbittorrent.host",
		"qbittorrent_port": "services.qbittorrent.port",
		"overseerr_url":    "services.overseerr.url",
		"overseerr_host":   "services.overseerr.host",
		"overseerr_port":   "services.overseerr.port",

		// Torrent client
		"qb_password":  "qbittorrent.password",
		"qb_container": "qbittorrent.container",

		// Retry and timing knobs
		"probe_max_attempts": "probe.max_attempts",
		"probe_interval":     "probe.interval",
		"log_scrape_retries": "log_scrape.retries",
		"log_scrape_delay":   "log_scrape.retry_delay",
		"http_timeout":       "http.timeout",
		"sync_grace":         "sync.grace",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables never
	// pollute the config.
	return ""
}
