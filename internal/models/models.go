// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package models defines the transient, process-local entities shared across
// the wiring pipeline. Nothing in this package is persisted: each managed
// service owns its own config store, and the orchestrator treats that store
// as ground truth on the next run.
package models

import "time"

// Service identifies one managed container by its well-known name.
type Service string

// Managed services.
const (
	ServiceRadarr      Service = "radarr"
	ServiceSonarr      Service = "sonarr"
	ServiceProwlarr    Service = "prowlarr"
	ServiceQBittorrent Service = "qbittorrent"
	ServiceOverseerr   Service = "overseerr"
)

// Endpoint identifies one managed container's HTTP surface.
// Created from configuration at orchestrator start; immutable thereafter.
type Endpoint struct {
	Name Service

	// BaseURL is the URL the orchestrator reaches the service at,
	// e.g. http://localhost:7878.
	BaseURL string

	// InternalHost is the compose-network hostname other containers use to
	// reach the service, e.g. "qbittorrent". Wiring payloads carry this,
	// not BaseURL, because registrations are consumed container-to-container.
	InternalHost string

	// Port is the service's internal listening port.
	Port int
}

// CredentialSource records where a credential was obtained from.
type CredentialSource string

// Credential sources.
const (
	// SourceFile means the credential was read from the service's own
	// generated config file.
	SourceFile CredentialSource = "file"

	// SourceLog means the credential was scraped from the container's log
	// stream (qBittorrent's one-time temporary password).
	SourceLog CredentialSource = "log"

	// SourceManual means the operator supplied the credential directly,
	// via environment override or interactive prompt.
	SourceManual CredentialSource = "manual"
)

// Credential is a resolved secret for one service. Populated lazily on
// first need and cached for the process lifetime; never written back
// anywhere by the orchestrator.
type Credential struct {
	Owner  Service
	Secret string
	Source CredentialSource
}

// IndexerDefinition is one static public-indexer catalog entry. The catalog
// is fixed at build time, never discovered at runtime.
type IndexerDefinition struct {
	// Name is the logical name used for the idempotency check.
	Name string

	// BaseURL is the indexer's public site URL.
	BaseURL string

	// DefinitionID is the Cardigann definition file the aggregator loads.
	DefinitionID string
}

// RetryPolicy governs bounded polling loops. The 30x2s default is uniform
// across every readiness probe in the system; it is exposed as configuration
// rather than assumed load-bearing.
type RetryPolicy struct {
	MaxAttempts int
	Interval    time.Duration
}

// DefaultRetryPolicy returns the stock 30-attempt, 2-second policy
// (60 seconds worst case per service).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 30, Interval: 2 * time.Second}
}

// Budget returns the worst-case wall-clock time the policy can block for.
func (p RetryPolicy) Budget() time.Duration {
	return time.Duration(p.MaxAttempts) * p.Interval
}
