// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package arr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "409 is a conflict",
			err:  &APIError{Service: "prowlarr", StatusCode: http.StatusConflict, Body: "exists"},
			want: true,
		},
		{
			name: "400 with already-exists validation message",
			err:  &APIError{Service: "radarr", StatusCode: http.StatusBadRequest, Body: `Download client already exists`},
			want: true,
		},
		{
			name: "wrapped conflict is still a conflict",
			err:  fmt.Errorf("adding indexer: %w", &APIError{StatusCode: http.StatusConflict}),
			want: true,
		},
		{
			name: "400 with unrelated validation message",
			err:  &APIError{Service: "radarr", StatusCode: http.StatusBadRequest, Body: "Port out of range"},
			want: false,
		},
		{
			name: "500 is never a conflict",
			err:  &APIError{StatusCode: http.StatusInternalServerError, Body: "already exists"},
			want: false,
		},
		{
			name: "plain error is not a conflict",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error is not a conflict",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConflict(tt.err); got != tt.want {
				t.Errorf("IsConflict = %v, want %v", got, tt.want)
			}
		})
	}
}
