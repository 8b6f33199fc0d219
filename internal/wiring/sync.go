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
)

// syncCommand pushes every indexer definition to every linked application.
const syncCommand = "ApplicationIndexerSync"

// TriggerSync fires the aggregator's sync-all command. Fire-and-forget:
// the command is queued asynchronously and completion is never awaited.
// Propagation may still be in flight when the run ends; the verify pass is
// what confirms it, eventually.
func TriggerSync(ctx context.Context, client arr.ProwlarrClientInterface) models.StepResult {
	const step = "prowlarr/sync"

	queued, err := client.RunCommand(ctx, syncCommand)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}

	logging.Info().Str("command", syncCommand).Str("status", queued.Status).Msg("indexer sync triggered")
	return models.StepResult{Step: step, Status: models.StepSuccess, Detail: syncCommand}
}
