// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package container resolves credentials that services emit to their log
// stream instead of persisting to a config file.
//
// The container lifecycle provider itself is an external collaborator: the
// only contract this package relies on is "give me the accumulated log
// stream for a named container", expressed as the LogProvider interface.
// The default implementation shells out to the docker CLI, matching the
// contract the stack is deployed with.
package container

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// LogProvider returns the accumulated log stream of a named container.
type LogProvider interface {
	Logs(ctx context.Context, container string) (string, error)
}

// DockerCLI is a LogProvider backed by `docker logs`.
type DockerCLI struct{}

// Logs returns the combined stdout/stderr log stream of the container.
// qBittorrent writes its password notice to stderr, so both streams are
// captured.
func (DockerCLI) Logs(ctx context.Context, container string) (string, error) {
	cmd := exec.CommandContext(ctx, "docker", "logs", container)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("docker logs %s failed: %w", container, err)
	}

	return out.String(), nil
}
