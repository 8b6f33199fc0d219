// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package wiring

import (
	"context"
	"fmt"

	"github.com/simplarr/simplarr/internal/arr"
	"github.com/simplarr/simplarr/internal/logging"
	"github.com/simplarr/simplarr/internal/models"
	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

// RequestManagerTarget describes one arr service being mirrored into the
// request manager's settings.
type RequestManagerTarget struct {
	Service    models.Service
	Hostname   string
	Port       int
	APIKey     string
	RootFolder string
}

// EnsureRequestManagerLink registers one arr service with Overseerr so
// approved requests turn into arr jobs. Idempotent by hostname+port check
// against the existing server list.
//
// Callers gate this on Overseerr reporting initialized: before the manual
// OAuth sign-in completes the settings API is not usable, and the whole
// branch is deferred, not failed.
func EnsureRequestManagerLink(ctx context.Context, client arr.OverseerrClientInterface, target RequestManagerTarget) models.StepResult {
	step := fmt.Sprintf("overseerr/%s", target.Service)

	var (
		existing []modelsarr.OverseerrServiceSettings
		err      error
	)
	if target.Service == models.ServiceSonarr {
		existing, err = client.ListSonarrSettings(ctx)
	} else {
		existing, err = client.ListRadarrSettings(ctx)
	}
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}

	for i := range existing {
		if existing[i].Hostname == target.Hostname && existing[i].Port == target.Port {
			logging.Debug().Str("service", string(target.Service)).Msg("request manager link already registered")
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: target.Hostname}
		}
	}

	payload := modelsarr.OverseerrServiceSettings{
		Name:              applicationName(target.Service),
		Hostname:          target.Hostname,
		Port:              target.Port,
		APIKey:            target.APIKey,
		UseSSL:            false,
		ActiveProfileID:   1,
		ActiveProfileName: "Any",
		ActiveDirectory:   target.RootFolder,
		IsDefault:         true,
	}

	var created *modelsarr.OverseerrServiceSettings
	if target.Service == models.ServiceSonarr {
		created, err = client.AddSonarrSettings(ctx, payload)
	} else {
		created, err = client.AddRadarrSettings(ctx, payload)
	}
	if err != nil {
		if arr.IsConflict(err) {
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: target.Hostname}
		}
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}

	logging.Info().Str("service", string(target.Service)).Int("id", created.ID).Msg("request manager link registered")
	return models.StepResult{Step: step, Status: models.StepSuccess, Detail: target.Hostname}
}
