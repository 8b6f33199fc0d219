// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package wiring

import (
	"context"
	"fmt"
	"strings"

	"github.com/simplarr/simplarr/internal/arr"
	"github.com/simplarr/simplarr/internal/logging"
	"github.com/simplarr/simplarr/internal/models"
	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

// ApplicationTarget describes one arr service being linked to the
// aggregator.
type ApplicationTarget struct {
	Service models.Service

	// ProwlarrURL is the aggregator's own URL as the arr service reaches
	// it on the compose network.
	ProwlarrURL string

	// AppURL is the arr service's URL as the aggregator reaches it.
	AppURL string

	// APIKey is the arr service's credential.
	APIKey string
}

// EnsureApplicationLink links the aggregator to one arr service so indexer
// definitions propagate. Sync level is always fullSync; the category set is
// the explicit static list for the service type.
func EnsureApplicationLink(ctx context.Context, client arr.ProwlarrClientInterface, target ApplicationTarget) models.StepResult {
	step := fmt.Sprintf("prowlarr/application/%s", target.Service)
	appName := applicationName(target.Service)

	existing, err := client.ListApplications(ctx)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}
	for i := range existing {
		if existing[i].Name == appName {
			logging.Debug().Str("application", appName).Msg("application link already registered")
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: appName}
		}
	}

	payload := modelsarr.Application{
		Name:           appName,
		SyncLevel:      "fullSync",
		Implementation: appName,
		ConfigContract: appName + "Settings",
		Fields: []modelsarr.Field{
			{Name: "prowlarrUrl", Value: target.ProwlarrURL},
			{Name: "baseUrl", Value: target.AppURL},
			{Name: "apiKey", Value: target.APIKey},
			{Name: "syncCategories", Value: SyncCategories(target.Service)},
		},
	}

	created, err := client.AddApplication(ctx, payload)
	if err != nil {
		if arr.IsConflict(err) {
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: appName}
		}
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}

	logging.Info().Str("application", appName).Int("id", created.ID).Msg("application link registered")
	return models.StepResult{Step: step, Status: models.StepSuccess, Detail: appName}
}

// applicationName maps a service to Prowlarr's implementation name
// ("radarr" -> "Radarr").
func applicationName(service models.Service) string {
	name := string(service)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
