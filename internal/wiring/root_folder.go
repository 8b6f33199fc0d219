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
)

// EnsureRootFolder registers a media root path on one arr service.
// Idempotent by same-path check.
func EnsureRootFolder(ctx context.Context, client arr.ClientInterface, service models.Service, path string) models.StepResult {
	step := fmt.Sprintf("%s/root-folder", service)

	existing, err := client.ListRootFolders(ctx)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}
	for i := range existing {
		if samePath(existing[i].Path, path) {
			logging.Debug().Str("service", string(service)).Str("path", path).Msg("root folder already registered")
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: path}
		}
	}

	created, err := client.AddRootFolder(ctx, path)
	if err != nil {
		if arr.IsConflict(err) {
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: path}
		}
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}

	logging.Info().Str("service", string(service)).Str("path", created.Path).Msg("root folder registered")
	return models.StepResult{Step: step, Status: models.StepSuccess, Detail: path}
}

// samePath compares folder paths ignoring a trailing separator.
func samePath(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}
