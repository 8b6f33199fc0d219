// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package main is the entry point for the simplarr CLI.
//
// Simplarr wires a freshly deployed Docker Compose media stack together:
// it resolves each container's generated credential, waits for every HTTP
// endpoint to come up, and issues the ordered, idempotent sequence of REST
// calls that registers the download client, root folders, application
// links, and public indexer catalog. Re-running is always safe.
//
// Commands:
//
//	simplarr wire     run the wiring sequence (the default setup step)
//	simplarr verify   re-read every registration and report what is in place
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, an optional simplarr.yaml, and
// built-in defaults. The environment surface matches the compose stack's
// existing variables (DOCKER_CONFIG, DOCKER_MEDIA, RADARR_URL, QB_PASSWORD,
// ...), so a deployed stack needs no extra setup to use this tool.
//
// Exit code is 0 when every step succeeded or was deferred (Overseerr's
// manual sign-in gate), and 1 on any fatal or failed step.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simplarr/simplarr/internal/config"
	"github.com/simplarr/simplarr/internal/logging"
)

var version = "dev"

// rootCmd is the simplarr command group.
var rootCmd = &cobra.Command{
	Use:          "simplarr",
	Short:        "Wire a self-hosted media stack together after first boot",
	Long:         "Simplarr automates the post-deployment wiring of a Docker Compose media stack:\ndownload client registration, root folders, indexer catalog, application links,\nand request manager settings, all idempotent and safe to re-run.",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config-root", "", "directory holding each service's generated config store (env DOCKER_CONFIG)")
	flags.String("qb-password", "", "qBittorrent WebUI password override (env QB_PASSWORD)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")

	rootCmd.AddCommand(wireCmd)
	rootCmd.AddCommand(verifyCmd)
}

// loadConfig loads layered configuration with command-line flags promoted
// into the environment layer, which is already the highest-priority source.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flagEnv := map[string]string{
		"config-root": "DOCKER_CONFIG",
		"qb-password": "QB_PASSWORD",
		"log-level":   "LOG_LEVEL",
	}
	for flag, envVar := range flagEnv {
		if value, err := cmd.Flags().GetString(flag); err == nil && value != "" {
			if err := os.Setenv(envVar, value); err != nil {
				return nil, fmt.Errorf("failed to apply --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
