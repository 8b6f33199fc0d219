// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package orchestrator sequences the wiring operations in dependency order.
//
// The run is a linear state machine with no branching except on missing
// prerequisites:
//
//	Start -> LocateCredentials(radarr, sonarr, prowlarr)
//	      -> ResolveLogCredential(qbittorrent)
//	      -> WireDownloadClients -> WireRootFolders
//	      -> WireApplicationLinks -> AddIndexers -> TriggerSync
//	      -> [WireRequestManager, if Overseerr is initialized] -> End
//
// A required credential that never resolves is fatal: the run aborts with
// an actionable message. The request-manager credential depends on a manual
// OAuth sign-in, so its absence only defers that branch with a warning.
// Execution is strictly sequential; every step depends on state the
// previous one resolved, and this runs once, interactively, at setup time.
package orchestrator

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simplarr/simplarr/internal/arr"
	"github.com/simplarr/simplarr/internal/config"
	"github.com/simplarr/simplarr/internal/container"
	"github.com/simplarr/simplarr/internal/logging"
	"github.com/simplarr/simplarr/internal/models"
	"github.com/simplarr/simplarr/internal/probe"
)

// PasswordPrompt is the CLI-adapter fallback for the torrent client
// password when neither the override nor the log scrape produced one.
// Wiring logic never prompts; the outer layer decides whether a terminal
// is even attached.
type PasswordPrompt func() (string, error)

// Orchestrator wires the managed services together in one sequential run.
type Orchestrator struct {
	cfg    *config.Config
	prober *probe.Prober
	logs   container.LogProvider
	prompt PasswordPrompt
	runID  string
	log    zerolog.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogProvider replaces the docker CLI log provider.
func WithLogProvider(p container.LogProvider) Option {
	return func(o *Orchestrator) { o.logs = p }
}

// WithPasswordPrompt installs the interactive fallback for the torrent
// client password.
func WithPasswordPrompt(p PasswordPrompt) Option {
	return func(o *Orchestrator) { o.prompt = p }
}

// New creates an Orchestrator for one run.
func New(cfg *config.Config, opts ...Option) *Orchestrator {
	runID := uuid.NewString()

	o := &Orchestrator{
		cfg:    cfg,
		prober: probe.New(&http.Client{Timeout: cfg.HTTP.Timeout}, cfg.RetryPolicy()),
		logs:   container.DockerCLI{},
		runID:  runID,
		log:    logging.With().Str("run_id", runID).Logger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// newArrClient builds the circuit-breaker-protected arr client for one
// resolved credential.
func (o *Orchestrator) newArrClient(service models.Service, cred models.Credential) arr.ClientInterface {
	ep := o.cfg.Endpoint(service)
	return arr.NewBreakerClient(arr.NewClient(string(service), ep.BaseURL, cred.Secret, o.cfg.HTTP.Timeout))
}

// resolveContext bundles everything the wiring phases need.
type resolveContext struct {
	radarrCred   models.Credential
	sonarrCred   models.Credential
	prowlarrCred models.Credential

	radarr   arr.ClientInterface
	sonarr   arr.ClientInterface
	prowlarr arr.ProwlarrClientInterface
}
