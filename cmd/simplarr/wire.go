// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simplarr/simplarr/internal/models"
	"github.com/simplarr/simplarr/internal/orchestrator"
)

// wireCmd runs the full wiring sequence.
var wireCmd = &cobra.Command{
	Use:   "wire",
	Short: "Run the post-deployment wiring sequence",
	Long: `Resolve each service's generated credential, wait for the stack to come up,
and register: qBittorrent as a download client on Radarr and Sonarr, the media
root folders, the Prowlarr application links, the public indexer catalog, and
(once its manual sign-in is done) the Overseerr request manager links.

Every step checks for an existing registration first; re-running never creates
duplicates.`,
	RunE: runWire,
}

func runWire(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := orchestrator.New(cfg, orchestrator.WithPasswordPrompt(promptPassword))

	summary, runErr := orch.Run(ctx)
	printSummary(summary)

	if runErr != nil {
		return runErr
	}
	if !summary.Success() {
		return errors.New("wiring completed with failures")
	}
	return nil
}

// promptPassword is the interactive fallback for the qBittorrent WebUI
// password, invoked only when the orchestrator exhausted the override and
// the log scrape.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "qBittorrent WebUI password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// printSummary renders the structured step results for the operator.
func printSummary(summary *models.Summary) {
	if summary == nil || len(summary.Results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Wiring summary:")
	for _, result := range summary.Results {
		fmt.Println("  " + result.String())
	}

	ok, deferred, failed := summary.Counts()
	fmt.Printf("\n%d ok, %d deferred, %d failed\n", ok, deferred, failed)
	if deferred > 0 {
		fmt.Println("Deferred steps need the Overseerr sign-in; re-run `simplarr wire` afterwards.")
	}
}
