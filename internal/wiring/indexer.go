// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package wiring

import (
	"context"

	"github.com/simplarr/simplarr/internal/arr"
	"github.com/simplarr/simplarr/internal/logging"
	"github.com/simplarr/simplarr/internal/models"
	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

// AddPublicIndexers registers every static catalog entry with the
// aggregator. The existing list is fetched once up front, so a full run
// against an empty aggregator issues exactly one creation call per catalog
// entry and a re-run issues none.
func AddPublicIndexers(ctx context.Context, client arr.ProwlarrClientInterface) []models.StepResult {
	results := make([]models.StepResult, 0, len(PublicIndexers))

	existing, err := client.ListIndexers(ctx)
	if err != nil {
		for _, def := range PublicIndexers {
			results = append(results, models.StepResult{
				Step: "prowlarr/indexer/" + def.Name, Status: models.StepFailed, Err: err,
			})
		}
		return results
	}

	known := make(map[string]bool, len(existing))
	for i := range existing {
		known[existing[i].Name] = true
	}

	for _, def := range PublicIndexers {
		results = append(results, ensureIndexer(ctx, client, def, known))
	}
	return results
}

// ensureIndexer registers one static indexer definition. An
// already-exists answer from the aggregator (conflict status, or a created
// response carrying no id) is success-equivalent: indexer catalogs are
// idempotent by design.
func ensureIndexer(ctx context.Context, client arr.ProwlarrClientInterface, def models.IndexerDefinition, known map[string]bool) models.StepResult {
	step := "prowlarr/indexer/" + def.Name

	if known[def.Name] {
		logging.Debug().Str("indexer", def.Name).Msg("indexer already registered")
		return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: def.Name}
	}

	payload := modelsarr.Indexer{
		Name:           def.Name,
		Enable:         true,
		Protocol:       "torrent",
		Priority:       25,
		AppProfileID:   1,
		Implementation: "Cardigann",
		ConfigContract: "CardigannSettings",
		Fields: []modelsarr.Field{
			{Name: "definitionFile", Value: def.DefinitionID},
			{Name: "baseUrl", Value: def.BaseURL},
		},
	}

	created, err := client.AddIndexer(ctx, payload)
	if err != nil {
		if arr.IsConflict(err) {
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: def.Name}
		}
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}
	if created.ID == 0 {
		// The aggregator acked without assigning an id: treat as existing.
		return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: def.Name}
	}

	logging.Info().Str("indexer", def.Name).Int("id", created.ID).Msg("indexer registered")
	return models.StepResult{Step: step, Status: models.StepSuccess, Detail: def.Name}
}
