// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/simplarr/simplarr/internal/arr"
	"github.com/simplarr/simplarr/internal/container"
	"github.com/simplarr/simplarr/internal/locate"
	"github.com/simplarr/simplarr/internal/models"
	"github.com/simplarr/simplarr/internal/wiring"
)

// statusPath returns the unauthenticated readiness probe path per service.
func statusPath(service models.Service) string {
	switch service {
	case models.ServiceProwlarr:
		return "/api/v1/system/status"
	case models.ServiceOverseerr:
		return "/api/v1/status"
	case models.ServiceQBittorrent:
		return "/"
	default:
		return "/api/v3/system/status"
	}
}

// Run executes the full wiring sequence. The returned error is non-nil only
// for fatal conditions (a required credential never resolved); individual
// step failures are recorded in the summary and reflected in its Success().
// The summary is always returned, partial on abort.
func (o *Orchestrator) Run(ctx context.Context) (*models.Summary, error) {
	summary := &models.Summary{RunID: o.runID}

	o.log.Info().Str("config_root", o.cfg.Paths.ConfigRoot).Msg("starting wiring run")

	// LocateCredentials: the three arr-family services must come up and
	// have written their config stores before anything can be wired.
	rc := &resolveContext{}
	required := []struct {
		service models.Service
		cred    *models.Credential
	}{
		{models.ServiceRadarr, &rc.radarrCred},
		{models.ServiceSonarr, &rc.sonarrCred},
		{models.ServiceProwlarr, &rc.prowlarrCred},
	}
	for _, req := range required {
		cred, err := o.resolveRequiredCredential(ctx, req.service)
		if err != nil {
			summary.Add(models.StepResult{
				Step: string(req.service) + "/credential", Status: models.StepFailed, Err: err,
			})
			return summary, err
		}
		*req.cred = cred
		summary.Add(models.StepResult{
			Step: string(req.service) + "/credential", Status: models.StepSuccess, Detail: string(cred.Source),
		})
	}

	rc.radarr = o.newArrClient(models.ServiceRadarr, rc.radarrCred)
	rc.sonarr = o.newArrClient(models.ServiceSonarr, rc.sonarrCred)
	prowlarrEP := o.cfg.Endpoint(models.ServiceProwlarr)
	rc.prowlarr = arr.NewProwlarrClient(prowlarrEP.BaseURL, rc.prowlarrCred.Secret, o.cfg.HTTP.Timeout)

	// ResolveLogCredential: the torrent client's one-time password.
	qb, err := o.resolveQBittorrent(ctx)
	if err != nil {
		summary.Add(models.StepResult{Step: "qbittorrent/credential", Status: models.StepFailed, Err: err})
		return summary, err
	}
	summary.Add(models.StepResult{Step: "qbittorrent/credential", Status: models.StepSuccess})

	// WireDownloadClients
	summary.Add(wiring.EnsureDownloadClient(ctx, rc.radarr, models.ServiceRadarr, qb))
	summary.Add(wiring.EnsureDownloadClient(ctx, rc.sonarr, models.ServiceSonarr, qb))

	// WireRootFolders
	summary.Add(wiring.EnsureRootFolder(ctx, rc.radarr, models.ServiceRadarr, o.cfg.Paths.MovieFolder))
	summary.Add(wiring.EnsureRootFolder(ctx, rc.sonarr, models.ServiceSonarr, o.cfg.Paths.SeriesFolder))

	// WireApplicationLinks
	for _, service := range []models.Service{models.ServiceRadarr, models.ServiceSonarr} {
		cred := rc.radarrCred
		if service == models.ServiceSonarr {
			cred = rc.sonarrCred
		}
		summary.Add(wiring.EnsureApplicationLink(ctx, rc.prowlarr, wiring.ApplicationTarget{
			Service:     service,
			ProwlarrURL: internalURL(prowlarrEP),
			AppURL:      internalURL(o.cfg.Endpoint(service)),
			APIKey:      cred.Secret,
		}))
	}

	// AddIndexers
	for _, result := range wiring.AddPublicIndexers(ctx, rc.prowlarr) {
		summary.Add(result)
	}

	// TriggerSync: fire-and-forget plus a fixed grace period. Propagation
	// may still be in flight when the run ends; `simplarr verify` is the
	// check for that.
	syncResult := wiring.TriggerSync(ctx, rc.prowlarr)
	summary.Add(syncResult)
	if syncResult.Status == models.StepSuccess && o.cfg.Sync.Grace > 0 {
		o.log.Info().Dur("grace", o.cfg.Sync.Grace).Msg("waiting for sync propagation grace period")
		select {
		case <-ctx.Done():
		case <-time.After(o.cfg.Sync.Grace):
		}
	}

	// WireRequestManager: optional, gated on the manual OAuth sign-in.
	o.wireRequestManager(ctx, rc, summary)

	ok, deferred, failed := summary.Counts()
	o.log.Info().Int("ok", ok).Int("deferred", deferred).Int("failed", failed).Msg("wiring run finished")

	return summary, nil
}

// resolveRequiredCredential waits for the service to answer HTTP, then
// polls its config store for the generated API key. Both waits share the
// probe retry policy. Failure here is fatal for the run.
func (o *Orchestrator) resolveRequiredCredential(ctx context.Context, service models.Service) (models.Credential, error) {
	ep := o.cfg.Endpoint(service)

	if !o.prober.WaitReady(ctx, string(ep.Name), ep.BaseURL+statusPath(service)) {
		return models.Credential{}, fmt.Errorf(
			"%s did not answer at %s within the retry budget; check `docker compose ps %s` and re-run",
			service, ep.BaseURL, service)
	}

	policy := o.cfg.RetryPolicy()
	for attempt := 1; ; attempt++ {
		cred, err := locate.APIKey(o.cfg.Paths.ConfigRoot, service)
		if err == nil {
			return cred, nil
		}
		if !errors.Is(err, locate.ErrNotFound) {
			return models.Credential{}, err
		}
		if attempt >= policy.MaxAttempts {
			return models.Credential{}, fmt.Errorf(
				"%s never wrote its API key under %s; the container may be failing first boot: %w",
				service, o.cfg.Paths.ConfigRoot, err)
		}

		select {
		case <-ctx.Done():
			return models.Credential{}, ctx.Err()
		case <-time.After(policy.Interval):
		}
	}
}

// resolveQBittorrent waits for the WebUI, reads connection prefs from the
// generated .conf, and resolves the password: operator override first, then
// the log scrape, then the interactive prompt. Only when all three fail is
// the run fatal.
func (o *Orchestrator) resolveQBittorrent(ctx context.Context) (wiring.QBittorrentTarget, error) {
	ep := o.cfg.Endpoint(models.ServiceQBittorrent)

	if !o.prober.WaitReady(ctx, string(ep.Name), ep.BaseURL+statusPath(ep.Name)) {
		return wiring.QBittorrentTarget{}, fmt.Errorf(
			"qbittorrent WebUI did not answer at %s within the retry budget", ep.BaseURL)
	}

	target := wiring.QBittorrentTarget{
		Host:     ep.InternalHost,
		Port:     ep.Port,
		Username: "admin",
	}
	prefs, err := locate.ReadQBittorrentPrefs(o.cfg.Paths.ConfigRoot)
	switch {
	case err == nil:
		target.Username = prefs.WebUIUsername
		target.Port = prefs.WebUIPort
	case errors.Is(err, locate.ErrNotFound):
		o.log.Warn().Msg("qBittorrent.conf not found, assuming WebUI defaults")
	default:
		return wiring.QBittorrentTarget{}, err
	}

	if o.cfg.QBittorrent.Password != "" {
		target.Password = o.cfg.QBittorrent.Password
		return target, nil
	}

	resolver := container.NewResolver(o.logs)
	resolver.Retries = o.cfg.LogScrape.Retries
	resolver.RetryDelay = o.cfg.LogScrape.RetryDelay

	cred, err := resolver.Password(ctx, o.cfg.QBittorrent.Container)
	if err == nil {
		target.Password = cred.Secret
		return target, nil
	}

	if o.prompt != nil {
		o.log.Warn().Err(err).Msg("falling back to interactive password prompt")
		secret, perr := o.prompt()
		if perr == nil && secret != "" {
			target.Password = secret
			return target, nil
		}
	}

	return wiring.QBittorrentTarget{}, fmt.Errorf(
		"qbittorrent WebUI password unresolved (set QB_PASSWORD or check `docker logs %s`): %w",
		o.cfg.QBittorrent.Container, err)
}

// wireRequestManager runs the optional Overseerr branch. Every exit short
// of an actual API failure is a deferral with re-run instructions, never a
// run failure: the credential depends on a manual browser sign-in.
func (o *Orchestrator) wireRequestManager(ctx context.Context, rc *resolveContext, summary *models.Summary) {
	const step = "overseerr/link"
	ep := o.cfg.Endpoint(models.ServiceOverseerr)

	cred, err := locate.APIKey(o.cfg.Paths.ConfigRoot, models.ServiceOverseerr)
	if err != nil {
		if errors.Is(err, locate.ErrNotFound) {
			o.log.Warn().Msg("overseerr not configured yet; complete the sign-in and re-run `simplarr wire`")
			summary.Add(models.StepResult{Step: step, Status: models.StepDeferred, Detail: "settings.json not found"})
			return
		}
		summary.Add(models.StepResult{Step: step, Status: models.StepFailed, Err: err})
		return
	}

	if !o.prober.WaitReady(ctx, string(ep.Name), ep.BaseURL+statusPath(ep.Name)) {
		o.log.Warn().Msg("overseerr not answering; re-run `simplarr wire` once it is up")
		summary.Add(models.StepResult{Step: step, Status: models.StepDeferred, Detail: "not reachable"})
		return
	}

	client := arr.NewOverseerrClient(ep.BaseURL, cred.Secret, o.cfg.HTTP.Timeout)

	status, err := client.Status(ctx)
	if err != nil {
		summary.Add(models.StepResult{Step: step, Status: models.StepFailed, Err: err})
		return
	}
	if !status.Initialized {
		o.log.Warn().Msg("overseerr awaiting manual Plex sign-in; complete it and re-run `simplarr wire`")
		summary.Add(models.StepResult{Step: step, Status: models.StepDeferred, Detail: "not initialized"})
		return
	}

	targets := []wiring.RequestManagerTarget{
		{
			Service:    models.ServiceRadarr,
			Hostname:   o.cfg.Endpoint(models.ServiceRadarr).InternalHost,
			Port:       o.cfg.Endpoint(models.ServiceRadarr).Port,
			APIKey:     rc.radarrCred.Secret,
			RootFolder: o.cfg.Paths.MovieFolder,
		},
		{
			Service:    models.ServiceSonarr,
			Hostname:   o.cfg.Endpoint(models.ServiceSonarr).InternalHost,
			Port:       o.cfg.Endpoint(models.ServiceSonarr).Port,
			APIKey:     rc.sonarrCred.Secret,
			RootFolder: o.cfg.Paths.SeriesFolder,
		},
	}
	for _, target := range targets {
		summary.Add(wiring.EnsureRequestManagerLink(ctx, client, target))
	}
}

// internalURL renders the URL other containers use to reach an endpoint on
// the compose network.
func internalURL(ep models.Endpoint) string {
	return fmt.Sprintf("http://%s:%d", ep.InternalHost, ep.Port)
}
