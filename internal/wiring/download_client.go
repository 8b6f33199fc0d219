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

// downloadClientName is the logical name used for the idempotency check.
const downloadClientName = "qBittorrent"

// QBittorrentTarget describes how the arr services reach the torrent
// client on the compose network.
type QBittorrentTarget struct {
	Host     string
	Port     int
	Username string
	Password string
}

// EnsureDownloadClient registers qBittorrent as a download client on one
// arr service. The category is fixed by service type (movie vs. series),
// not operator-configurable.
func EnsureDownloadClient(ctx context.Context, client arr.ClientInterface, service models.Service, qb QBittorrentTarget) models.StepResult {
	step := fmt.Sprintf("%s/download-client", service)

	existing, err := client.ListDownloadClients(ctx)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}
	for i := range existing {
		if existing[i].Name == downloadClientName {
			logging.Debug().Str("service", string(service)).Msg("download client already registered")
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: downloadClientName}
		}
	}

	categoryField := "movieCategory"
	if service == models.ServiceSonarr {
		categoryField = "tvCategory"
	}

	payload := modelsarr.DownloadClient{
		Name:           downloadClientName,
		Enable:         true,
		Protocol:       "torrent",
		Priority:       1,
		Implementation: "QBittorrent",
		ConfigContract: "QBittorrentSettings",
		Fields: []modelsarr.Field{
			{Name: "host", Value: qb.Host},
			{Name: "port", Value: qb.Port},
			{Name: "useSsl", Value: false},
			{Name: "username", Value: qb.Username},
			{Name: "password", Value: qb.Password},
			{Name: categoryField, Value: DownloadCategory(service)},
		},
	}

	created, err := client.AddDownloadClient(ctx, payload)
	if err != nil {
		if arr.IsConflict(err) {
			return models.StepResult{Step: step, Status: models.StepAlreadyExists, Detail: downloadClientName}
		}
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}

	logging.Info().Str("service", string(service)).Int("id", created.ID).Msg("download client registered")
	return models.StepResult{Step: step, Status: models.StepSuccess, Detail: downloadClientName}
}
