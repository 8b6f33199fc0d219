// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/simplarr/simplarr/internal/validation"
)

// Validate checks that the configuration is complete and internally
// consistent. Struct tags handle the per-field rules; the checks below
// cover what tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	for name, u := range map[string]string{
		"RADARR_URL":      c.Services.Radarr.URL,
		"SONARR_URL":      c.Services.Sonarr.URL,
		"PROWLARR_URL":    c.Services.Prowlarr.URL,
		"QBITTORRENT_URL": c.Services.QBittorrent.URL,
		"OVERSEERR_URL":   c.Services.Overseerr.URL,
	} {
		if u == "" {
			continue
		}
		if err := validateHTTPURL(u, name); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(c.Paths.MovieFolder, "/") {
		return fmt.Errorf("movie folder %q must be an absolute container path", c.Paths.MovieFolder)
	}
	if !strings.HasPrefix(c.Paths.SeriesFolder, "/") {
		return fmt.Errorf("series folder %q must be an absolute container path", c.Paths.SeriesFolder)
	}

	return nil
}

// validateHTTPURL checks that the value parses as an http(s) URL with a host.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host", name)
	}
	return nil
}
