// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simplarr/simplarr/internal/orchestrator"
)

// verifyCmd re-reads every registration and reports what is in place.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every registration the wiring owns is in place",
	Long: `Re-read the registrations on each service and report them: download client
counts (exactly one expected), root folders, indexer catalog entries,
application links, and request manager links. Read-only; changes nothing.

Indexer propagation to the arr services is eventually consistent after a
wire run, so verify is the pass that confirms it landed.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, verifyErr := orchestrator.New(cfg).Verify(ctx)
	printSummary(summary)

	if verifyErr != nil {
		return verifyErr
	}
	if !summary.Success() {
		return errors.New("verification found missing or duplicated registrations")
	}
	return nil
}
