// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package container

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/simplarr/simplarr/internal/logging"
	"github.com/simplarr/simplarr/internal/models"
)

// ErrNoCredential is returned when the log stream carries no password
// emission after the retry budget is spent. Callers fall back to an
// operator-supplied credential.
var ErrNoCredential = errors.New("no credential found in container logs")

// passwordPattern matches qBittorrent's temporary WebUI password notice:
//
//	A temporary password is provided for this session: <token>
var passwordPattern = regexp.MustCompile(`temporary password[^:]*:\s*(\S+)`)

// Resolver extracts log-emitted credentials. Distinct from the config
// locator because the credential never reaches a config file.
type Resolver struct {
	provider LogProvider

	// Retries is how many additional scans to attempt after the first
	// failure. Deliberately a single retry by default: indefinite log
	// scraping would mask a genuine failure to boot.
	Retries int

	// RetryDelay is how long to wait before the retry, giving the
	// container time to finish first boot.
	RetryDelay time.Duration
}

// NewResolver creates a Resolver with the stock single-retry, 30-second
// policy.
func NewResolver(provider LogProvider) *Resolver {
	return &Resolver{
		provider:   provider,
		Retries:    1,
		RetryDelay: 30 * time.Second,
	}
}

// Password scans the container's log stream for the temporary password
// emission and returns the token from the last matching line. The service
// emits a fresh password per restart; only the most recent one is valid.
func (r *Resolver) Password(ctx context.Context, containerName string) (models.Credential, error) {
	log := logging.With().Str("container", containerName).Logger()

	for attempt := 0; ; attempt++ {
		stream, err := r.provider.Logs(ctx, containerName)
		if err == nil {
			if token, ok := lastMatch(stream); ok {
				return models.Credential{
					Owner:  models.ServiceQBittorrent,
					Secret: token,
					Source: models.SourceLog,
				}, nil
			}
			err = ErrNoCredential
		}

		if attempt >= r.Retries {
			return models.Credential{}, err
		}

		log.Warn().Err(err).Dur("retry_in", r.RetryDelay).Msg("temporary password not in logs yet, retrying once")

		select {
		case <-ctx.Done():
			return models.Credential{}, ctx.Err()
		case <-time.After(r.RetryDelay):
		}
	}
}

// lastMatch returns the token from the last password emission in the stream.
func lastMatch(stream string) (string, bool) {
	matches := passwordPattern.FindAllStringSubmatch(stream, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1][1], true
}
