// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/simplarr/simplarr/internal/arr"
	"github.com/simplarr/simplarr/internal/locate"
	"github.com/simplarr/simplarr/internal/models"
	"github.com/simplarr/simplarr/internal/wiring"
)

// Verify re-reads every registration the wiring is responsible for and
// reports what is actually in place. This is the separate verification pass
// for the eventually-consistent parts of the run (indexer propagation); it
// changes nothing. Credentials must already exist on disk; verify does not
// wait for services to boot.
func (o *Orchestrator) Verify(ctx context.Context) (*models.Summary, error) {
	summary := &models.Summary{RunID: o.runID}

	radarrCred, err := locate.APIKey(o.cfg.Paths.ConfigRoot, models.ServiceRadarr)
	if err != nil {
		return summary, fmt.Errorf("radarr credential unavailable, run `simplarr wire` first: %w", err)
	}
	sonarrCred, err := locate.APIKey(o.cfg.Paths.ConfigRoot, models.ServiceSonarr)
	if err != nil {
		return summary, fmt.Errorf("sonarr credential unavailable, run `simplarr wire` first: %w", err)
	}
	prowlarrCred, err := locate.APIKey(o.cfg.Paths.ConfigRoot, models.ServiceProwlarr)
	if err != nil {
		return summary, fmt.Errorf("prowlarr credential unavailable, run `simplarr wire` first: %w", err)
	}

	arrServices := []struct {
		service models.Service
		cred    models.Credential
		folder  string
	}{
		{models.ServiceRadarr, radarrCred, o.cfg.Paths.MovieFolder},
		{models.ServiceSonarr, sonarrCred, o.cfg.Paths.SeriesFolder},
	}
	for _, svc := range arrServices {
		client := o.newArrClient(svc.service, svc.cred)
		summary.Add(verifyDownloadClient(ctx, client, svc.service))
		summary.Add(verifyRootFolder(ctx, client, svc.service, svc.folder))
	}

	prowlarrEP := o.cfg.Endpoint(models.ServiceProwlarr)
	prowlarr := arr.NewProwlarrClient(prowlarrEP.BaseURL, prowlarrCred.Secret, o.cfg.HTTP.Timeout)
	summary.Add(verifyIndexers(ctx, prowlarr))
	summary.Add(verifyApplications(ctx, prowlarr))

	o.verifyRequestManager(ctx, summary)

	return summary, nil
}

func verifyDownloadClient(ctx context.Context, client arr.ClientInterface, service models.Service) models.StepResult {
	step := fmt.Sprintf("%s/download-client", service)

	clients, err := client.ListDownloadClients(ctx)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}
	count := 0
	for i := range clients {
		if clients[i].Name == "qBittorrent" {
			count++
		}
	}
	switch count {
	case 1:
		return models.StepResult{Step: step, Status: models.StepSuccess, Detail: "registered once"}
	case 0:
		return models.StepResult{Step: step, Status: models.StepFailed, Err: errors.New("not registered")}
	default:
		return models.StepResult{Step: step, Status: models.StepFailed,
			Err: fmt.Errorf("registered %d times, expected exactly 1", count)}
	}
}

func verifyRootFolder(ctx context.Context, client arr.ClientInterface, service models.Service, path string) models.StepResult {
	step := fmt.Sprintf("%s/root-folder", service)

	folders, err := client.ListRootFolders(ctx)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}
	for i := range folders {
		if folders[i].Path == path {
			return models.StepResult{Step: step, Status: models.StepSuccess, Detail: path}
		}
	}
	return models.StepResult{Step: step, Status: models.StepFailed,
		Err: fmt.Errorf("root folder %s not registered", path)}
}

func verifyIndexers(ctx context.Context, client arr.ProwlarrClientInterface) models.StepResult {
	const step = "prowlarr/indexers"

	indexers, err := client.ListIndexers(ctx)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}

	known := make(map[string]bool, len(indexers))
	for i := range indexers {
		known[indexers[i].Name] = true
	}
	missing := make([]string, 0)
	for _, def := range wiring.PublicIndexers {
		if !known[def.Name] {
			missing = append(missing, def.Name)
		}
	}
	if len(missing) > 0 {
		return models.StepResult{Step: step, Status: models.StepFailed,
			Err: fmt.Errorf("missing indexers: %v", missing)}
	}
	return models.StepResult{Step: step, Status: models.StepSuccess,
		Detail: fmt.Sprintf("%d catalog entries present", len(wiring.PublicIndexers))}
}

func verifyApplications(ctx context.Context, client arr.ProwlarrClientInterface) models.StepResult {
	const step = "prowlarr/applications"

	apps, err := client.ListApplications(ctx)
	if err != nil {
		return models.StepResult{Step: step, Status: models.StepFailed, Err: err}
	}
	known := make(map[string]bool, len(apps))
	for i := range apps {
		known[apps[i].Name] = true
	}
	if !known["Radarr"] || !known["Sonarr"] {
		return models.StepResult{Step: step, Status: models.StepFailed,
			Err: fmt.Errorf("application links incomplete: %v", known)}
	}
	return models.StepResult{Step: step, Status: models.StepSuccess, Detail: "Radarr and Sonarr linked"}
}

// verifyRequestManager mirrors the wire-time gating: an Overseerr that has
// not finished its manual sign-in defers, it does not fail.
func (o *Orchestrator) verifyRequestManager(ctx context.Context, summary *models.Summary) {
	const step = "overseerr/link"

	cred, err := locate.APIKey(o.cfg.Paths.ConfigRoot, models.ServiceOverseerr)
	if err != nil {
		if errors.Is(err, locate.ErrNotFound) {
			summary.Add(models.StepResult{Step: step, Status: models.StepDeferred, Detail: "settings.json not found"})
			return
		}
		summary.Add(models.StepResult{Step: step, Status: models.StepFailed, Err: err})
		return
	}

	ep := o.cfg.Endpoint(models.ServiceOverseerr)
	client := arr.NewOverseerrClient(ep.BaseURL, cred.Secret, o.cfg.HTTP.Timeout)

	status, err := client.Status(ctx)
	if err != nil {
		summary.Add(models.StepResult{Step: step, Status: models.StepFailed, Err: err})
		return
	}
	if !status.Initialized {
		summary.Add(models.StepResult{Step: step, Status: models.StepDeferred, Detail: "not initialized"})
		return
	}

	radarrServers, err := client.ListRadarrSettings(ctx)
	if err != nil {
		summary.Add(models.StepResult{Step: step, Status: models.StepFailed, Err: err})
		return
	}
	sonarrServers, err := client.ListSonarrSettings(ctx)
	if err != nil {
		summary.Add(models.StepResult{Step: step, Status: models.StepFailed, Err: err})
		return
	}
	if len(radarrServers) == 0 || len(sonarrServers) == 0 {
		summary.Add(models.StepResult{Step: step, Status: models.StepFailed,
			Err: errors.New("request manager links not registered")})
		return
	}
	summary.Add(models.StepResult{Step: step, Status: models.StepSuccess, Detail: "Radarr and Sonarr linked"})
}
