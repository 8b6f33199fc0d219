// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package wiring

import (
	"context"
	"testing"

	"github.com/simplarr/simplarr/internal/models"
	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

func radarrAppTarget() ApplicationTarget {
	return ApplicationTarget{
		Service:     models.ServiceRadarr,
		ProwlarrURL: "http://prowlarr:9696",
		AppURL:      "http://radarr:7878",
		APIKey:      "radarr-key",
	}
}

func TestEnsureApplicationLinkCreates(t *testing.T) {
	client := &fakeProwlarr{}

	result := EnsureApplicationLink(context.Background(), client, radarrAppTarget())

	if result.Status != models.StepSuccess {
		t.Fatalf("expected success, got %s (%v)", result.Status, result.Err)
	}
	if client.addApplicationCalls != 1 {
		t.Fatalf("expected 1 creation call, got %d", client.addApplicationCalls)
	}

	created := client.applications[0]
	if created.Name != "Radarr" {
		t.Errorf("name: got %q", created.Name)
	}
	if created.SyncLevel != "fullSync" {
		t.Errorf("syncLevel: got %q", created.SyncLevel)
	}
	if created.ConfigContract != "RadarrSettings" {
		t.Errorf("configContract: got %q", created.ConfigContract)
	}
	if got := modelsarr.FieldValue(created.Fields, "prowlarrUrl"); got != "http://prowlarr:9696" {
		t.Errorf("prowlarrUrl: got %v", got)
	}
	cats, ok := modelsarr.FieldValue(created.Fields, "syncCategories").([]int)
	if !ok || len(cats) != len(movieCategories) {
		t.Errorf("syncCategories: expected %d movie codes, got %v", len(movieCategories), cats)
	}
}

func TestEnsureApplicationLinkSonarrCategories(t *testing.T) {
	client := &fakeProwlarr{}
	target := ApplicationTarget{
		Service:     models.ServiceSonarr,
		ProwlarrURL: "http://prowlarr:9696",
		AppURL:      "http://sonarr:8989",
		APIKey:      "sonarr-key",
	}

	result := EnsureApplicationLink(context.Background(), client, target)

	if result.Status != models.StepSuccess {
		t.Fatalf("expected success, got %s (%v)", result.Status, result.Err)
	}
	created := client.applications[0]
	if created.Name != "Sonarr" {
		t.Errorf("name: got %q", created.Name)
	}
	cats, ok := modelsarr.FieldValue(created.Fields, "syncCategories").([]int)
	if !ok || len(cats) != len(seriesCategories) {
		t.Errorf("syncCategories: expected %d series codes, got %v", len(seriesCategories), cats)
	}
}

func TestEnsureApplicationLinkSecondRunIsNoOp(t *testing.T) {
	client := &fakeProwlarr{}

	EnsureApplicationLink(context.Background(), client, radarrAppTarget())
	second := EnsureApplicationLink(context.Background(), client, radarrAppTarget())

	if second.Status != models.StepAlreadyExists {
		t.Errorf("expected already-exists, got %s", second.Status)
	}
	if client.addApplicationCalls != 1 {
		t.Errorf("expected no second creation call, got %d total", client.addApplicationCalls)
	}
}
