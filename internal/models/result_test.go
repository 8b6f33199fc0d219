// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package models

import (
	"errors"
	"strings"
	"testing"
)

func TestStepResultOk(t *testing.T) {
	tests := []struct {
		status StepStatus
		want   bool
	}{
		{StepSuccess, true},
		{StepAlreadyExists, true},
		{StepSkipped, true},
		{StepDeferred, false},
		{StepFailed, false},
	}
	for _, tt := range tests {
		if got := (StepResult{Status: tt.status}).Ok(); got != tt.want {
			t.Errorf("Ok() for %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSummaryCounts(t *testing.T) {
	s := &Summary{RunID: "test"}
	s.Add(StepResult{Step: "a", Status: StepSuccess})
	s.Add(StepResult{Step: "b", Status: StepAlreadyExists})
	s.Add(StepResult{Step: "c", Status: StepDeferred})
	s.Add(StepResult{Step: "d", Status: StepFailed, Err: errors.New("boom")})

	ok, deferred, failed := s.Counts()
	if ok != 2 || deferred != 1 || failed != 1 {
		t.Errorf("Counts() = %d/%d/%d, want 2/1/1", ok, deferred, failed)
	}
}

func TestSummarySuccessIgnoresDeferred(t *testing.T) {
	s := &Summary{}
	s.Add(StepResult{Step: "a", Status: StepSuccess})
	s.Add(StepResult{Step: "b", Status: StepDeferred})
	if !s.Success() {
		t.Error("deferred steps must not fail the run")
	}

	s.Add(StepResult{Step: "c", Status: StepFailed})
	if s.Success() {
		t.Error("a failed step must fail the run")
	}
}

func TestStepResultString(t *testing.T) {
	r := StepResult{
		Step:   "radarr/download-client",
		Status: StepFailed,
		Detail: "qBittorrent",
		Err:    errors.New("connection refused"),
	}
	s := r.String()
	for _, want := range []string{"radarr/download-client", "failed", "qBittorrent", "connection refused"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestRetryPolicyBudget(t *testing.T) {
	if got := DefaultRetryPolicy().Budget().Seconds(); got != 60 {
		t.Errorf("default budget = %vs, want 60s", got)
	}
}
