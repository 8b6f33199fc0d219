// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package locate reads generated credentials and connection settings out of
// each managed service's own config store.
//
// Services write these files once, atomically, on first boot, so an absent
// file is the expected pre-boot state: callers get ErrNotFound and retry,
// they never get a hard failure for it. All operations are read-only.
package locate

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/simplarr/simplarr/internal/models"
)

// ErrNotFound is returned when a service's config artifact does not exist
// yet, or exists but does not carry the requested value yet. Retryable.
var ErrNotFound = errors.New("config artifact not found")

// ArrConfig is the subset of the arr-family config.xml the wiring reads.
// The decode is tolerant: unknown elements are ignored and no schema is
// enforced.
type ArrConfig struct {
	XMLName     xml.Name `xml:"Config"`
	APIKey      string   `xml:"ApiKey"`
	Port        int      `xml:"Port"`
	BindAddress string   `xml:"BindAddress"`
	URLBase     string   `xml:"UrlBase"`
}

// QBittorrentPrefs is the subset of qBittorrent.conf [Preferences] the
// wiring reads. The WebUI password is not here: qBittorrent emits a
// temporary password to its log stream instead (see internal/container).
type QBittorrentPrefs struct {
	WebUIPort     int
	WebUIUsername string
}

// APIKey locates the generated API key for the given service.
//
// Radarr, Sonarr, and Prowlarr persist it in {configRoot}/{service}/config.xml
// as an <ApiKey> element; Overseerr persists it in
// {configRoot}/overseerr/settings.json under main.apiKey.
func APIKey(configRoot string, service models.Service) (models.Credential, error) {
	switch service {
	case models.ServiceRadarr, models.ServiceSonarr, models.ServiceProwlarr:
		cfg, err := ReadArrConfig(configRoot, service)
		if err != nil {
			return models.Credential{}, err
		}
		if cfg.APIKey == "" {
			// File exists but the key has not been generated yet.
			return models.Credential{}, fmt.Errorf("%s config.xml has no ApiKey: %w", service, ErrNotFound)
		}
		return models.Credential{Owner: service, Secret: cfg.APIKey, Source: models.SourceFile}, nil

	case models.ServiceOverseerr:
		key, err := readOverseerrAPIKey(configRoot)
		if err != nil {
			return models.Credential{}, err
		}
		return models.Credential{Owner: service, Secret: key, Source: models.SourceFile}, nil

	default:
		return models.Credential{}, fmt.Errorf("service %q does not persist an API key", service)
	}
}

// ReadArrConfig parses {configRoot}/{service}/config.xml.
func ReadArrConfig(configRoot string, service models.Service) (*ArrConfig, error) {
	path := filepath.Join(configRoot, string(service), "config.xml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg ArrConfig
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// readOverseerrAPIKey extracts main.apiKey from Overseerr's settings.json.
func readOverseerrAPIKey(configRoot string) (string, error) {
	path := filepath.Join(configRoot, "overseerr", "settings.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var settings struct {
		Main struct {
			APIKey string `json:"apiKey"`
		} `json:"main"`
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if settings.Main.APIKey == "" {
		return "", fmt.Errorf("%s has no main.apiKey: %w", path, ErrNotFound)
	}

	return settings.Main.APIKey, nil
}

// ReadQBittorrentPrefs parses the [Preferences] section of
// {configRoot}/qbittorrent/qBittorrent/qBittorrent.conf.
//
// The file is INI-style with backslash-escaped key names (WebUI\Port).
// A tolerant line scan matches how the file is actually written; there is
// no INI dialect worth a full parser here.
func ReadQBittorrentPrefs(configRoot string) (*QBittorrentPrefs, error) {
	path := filepath.Join(configRoot, "qbittorrent", "qBittorrent", "qBittorrent.conf")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	prefs := &QBittorrentPrefs{
		WebUIPort:     8080,
		WebUIUsername: "admin",
	}

	inPreferences := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inPreferences = strings.EqualFold(line, "[Preferences]")
			continue
		}
		if !inPreferences {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case `WebUI\Port`:
			var port int
			if _, err := fmt.Sscanf(value, "%d", &port); err == nil && port > 0 {
				prefs.WebUIPort = port
			}
		case `WebUI\Username`:
			if value != "" {
				prefs.WebUIUsername = value
			}
		}
	}

	return prefs, nil
}
