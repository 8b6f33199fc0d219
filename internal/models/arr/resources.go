// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

// Package arr defines the wire resources of the arr-family REST APIs
// (Radarr/Sonarr v3, Prowlarr v1) and the Overseerr v1 API, limited to the
// fields the wiring operations read and write.
package arr

// Field is the generic name/value settings field used by arr download
// client, indexer, and application resources.
type Field struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value,omitempty"`
}

// FieldValue returns the value of the named field, or nil when absent.
func FieldValue(fields []Field, name string) interface{} {
	for i := range fields {
		if fields[i].Name == name {
			return fields[i].Value
		}
	}
	return nil
}

// SystemStatus is the response of GET /api/v{1,3}/system/status.
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}

// DownloadClient is the arr v3 download client resource
// (GET/POST /api/v3/downloadclient).
type DownloadClient struct {
	ID             int     `json:"id,omitempty"`
	Name           string  `json:"name"`
	Enable         bool    `json:"enable"`
	Protocol       string  `json:"protocol"`
	Priority       int     `json:"priority"`
	Implementation string  `json:"implementation"`
	ConfigContract string  `json:"configContract"`
	Fields         []Field `json:"fields"`
}

// RootFolder is the arr v3 root folder resource
// (GET/POST /api/v3/rootfolder).
type RootFolder struct {
	ID         int    `json:"id,omitempty"`
	Path       string `json:"path"`
	Accessible bool   `json:"accessible,omitempty"`
}

// Indexer is the Prowlarr v1 indexer resource (GET/POST /api/v1/indexer).
type Indexer struct {
	ID             int     `json:"id,omitempty"`
	Name           string  `json:"name"`
	Enable         bool    `json:"enable"`
	Protocol       string  `json:"protocol"`
	Priority       int     `json:"priority"`
	AppProfileID   int     `json:"appProfileId"`
	Implementation string  `json:"implementation"`
	ConfigContract string  `json:"configContract"`
	Fields         []Field `json:"fields"`
}

// Application is the Prowlarr v1 application resource
// (GET/POST /api/v1/applications). It links the aggregator to one arr
// service so indexer definitions propagate.
type Application struct {
	ID             int     `json:"id,omitempty"`
	Name           string  `json:"name"`
	SyncLevel      string  `json:"syncLevel"`
	Implementation string  `json:"implementation"`
	ConfigContract string  `json:"configContract"`
	Fields         []Field `json:"fields"`
}

// Command is the Prowlarr v1 command resource (POST /api/v1/command).
type Command struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
	// Status is reported on the response only ("queued", "started", ...).
	Status string `json:"status,omitempty"`
}

// OverseerrStatus is the response of Overseerr's GET /api/v1/status.
// Initialized is false until the operator completes the manual Plex OAuth
// sign-in, which cannot be automated.
type OverseerrStatus struct {
	Version     string `json:"version"`
	Initialized bool   `json:"initialized"`
}

// OverseerrMainSettings is the subset of GET /api/v1/settings/main the
// wiring reads.
type OverseerrMainSettings struct {
	APIKey          string `json:"apiKey"`
	ApplicationURL  string `json:"applicationUrl,omitempty"`
	ApplicationName string `json:"applicationTitle,omitempty"`
}

// OverseerrServiceSettings is the Overseerr radarr/sonarr service resource
// (GET/POST /api/v1/settings/{radarr|sonarr}).
type OverseerrServiceSettings struct {
	ID                int    `json:"id,omitempty"`
	Name              string `json:"name"`
	Hostname          string `json:"hostname"`
	Port              int    `json:"port"`
	APIKey            string `json:"apiKey"`
	UseSSL            bool   `json:"useSsl"`
	BaseURL           string `json:"baseUrl,omitempty"`
	ActiveProfileID   int    `json:"activeProfileId"`
	ActiveProfileName string `json:"activeProfileName,omitempty"`
	ActiveDirectory   string `json:"activeDirectory"`
	IsDefault         bool   `json:"isDefault"`
	Is4K              bool   `json:"is4k"`
}
