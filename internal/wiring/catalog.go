// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package wiring implements the idempotent ensure-linked operations that
// register the managed services with one another over their REST APIs.
//
// Every operation shares one contract: list the existing registrations on
// the target first and skip creation when an entry with the same logical
// name (or path) already exists. Re-running the wiring is always a no-op,
// never a duplicate and never an error shown to the operator.
package wiring

import "github.com/simplarr/simplarr/internal/models"

// PublicIndexers is the static catalog of public indexers registered with
// the aggregator. Defined at build time, never discovered at runtime.
var PublicIndexers = []models.IndexerDefinition{
	{Name: "1337x", BaseURL: "https://1337x.to/", DefinitionID: "1337x"},
	{Name: "The Pirate Bay", BaseURL: "https://thepiratebay.org/", DefinitionID: "thepiratebay"},
	{Name: "YTS", BaseURL: "https://yts.mx/", DefinitionID: "yts"},
	{Name: "EZTV", BaseURL: "https://eztvx.to/", DefinitionID: "eztv"},
	{Name: "LimeTorrents", BaseURL: "https://www.limetorrents.lol/", DefinitionID: "limetorrents"},
}

// Newznab/Torznab taxonomy codes pushed to each linked application. These
// are explicit static lists per service type, never inferred.
var (
	// movieCategories covers the 2000-series movie taxonomy.
	movieCategories = []int{2000, 2010, 2020, 2030, 2040, 2045, 2050, 2060, 2070, 2080, 2090}

	// seriesCategories covers the 5000-series TV taxonomy.
	seriesCategories = []int{5000, 5010, 5020, 5030, 5040, 5045, 5050}
)

// SyncCategories returns the taxonomy codes for the given arr service type.
func SyncCategories(service models.Service) []int {
	if service == models.ServiceSonarr {
		return seriesCategories
	}
	return movieCategories
}

// DownloadCategory returns the fixed torrent category an arr service tags
// its downloads with.
func DownloadCategory(service models.Service) string {
	// Category equals the service name: movies land in "radarr",
	// series in "sonarr".
	return string(service)
}
