// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package models

import "fmt"

// StepStatus classifies the outcome of one wiring step.
type StepStatus string

// Step outcomes. AlreadyExists is success-equivalent: re-running the wiring
// must be a no-op, never a duplicate or an error visible to the operator.
const (
	StepSuccess       StepStatus = "success"
	StepAlreadyExists StepStatus = "already-exists"
	StepSkipped       StepStatus = "skipped"
	StepDeferred      StepStatus = "deferred"
	StepFailed        StepStatus = "failed"
)

// StepResult is the structured outcome of a single wiring step. Results are
// collected into a Summary and aggregated functionally at the end of a run;
// there are no shared mutable tallies.
type StepResult struct {
	Step   string
	Status StepStatus
	Detail string
	Err    error
}

// Ok reports whether the step left the system in the desired state.
// Deferred steps are not Ok but are also not failures.
func (r StepResult) Ok() bool {
	return r.Status == StepSuccess || r.Status == StepAlreadyExists || r.Status == StepSkipped
}

// String renders the result for the end-of-run summary.
func (r StepResult) String() string {
	s := fmt.Sprintf("%-28s %s", r.Step, r.Status)
	if r.Detail != "" {
		s += " (" + r.Detail + ")"
	}
	if r.Err != nil {
		s += ": " + r.Err.Error()
	}
	return s
}

// Summary aggregates the results of one orchestrator run.
type Summary struct {
	RunID   string
	Results []StepResult
}

// Add appends a step result and returns the updated summary.
func (s *Summary) Add(r StepResult) {
	s.Results = append(s.Results, r)
}

// Counts returns the number of succeeded, deferred, and failed steps.
// AlreadyExists and Skipped count as succeeded.
func (s *Summary) Counts() (ok, deferred, failed int) {
	for _, r := range s.Results {
		switch {
		case r.Status == StepDeferred:
			deferred++
		case r.Status == StepFailed:
			failed++
		default:
			ok++
		}
	}
	return ok, deferred, failed
}

// Success reports whether the run as a whole succeeded. Deferred steps do
// not fail a run; only StepFailed does.
func (s *Summary) Success() bool {
	_, _, failed := s.Counts()
	return failed == 0
}
