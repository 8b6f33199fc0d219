// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package arr

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	modelsarr "github.com/simplarr/simplarr/internal/models/arr"
)

func verifyArrHeaders(t *testing.T, r *http.Request, apiKey string) {
	t.Helper()
	checkStringEqual(t, "X-Api-Key", r.Header.Get("X-Api-Key"), apiKey)
	checkStringEqual(t, "Accept", r.Header.Get("Accept"), "application/json")
}

func TestNewClientNormalizesBaseURL(t *testing.T) {
	client := NewClient("radarr", "http://localhost:7878/", "key", 0)
	checkStringEqual(t, "baseURL", client.baseURL, "http://localhost:7878")
	checkTrue(t, "default timeout applied", client.httpClient.Timeout == 10*time.Second)
}

func TestClientSystemStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkStringEqual(t, "path", r.URL.Path, "/api/v3/system/status")
		checkStringEqual(t, "method", r.Method, http.MethodGet)
		verifyArrHeaders(t, r, "test-key")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"appName":"Radarr","version":"5.2.6"}`))
	}))
	defer server.Close()

	client := NewClient("radarr", server.URL, "test-key", time.Second)
	status, err := client.SystemStatus(context.Background())

	checkNoError(t, err)
	checkStringEqual(t, "appName", status.AppName, "Radarr")
	checkStringEqual(t, "version", status.Version, "5.2.6")
}

func TestClientListDownloadClients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkStringEqual(t, "path", r.URL.Path, "/api/v3/downloadclient")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"qBittorrent","enable":true,"protocol":"torrent"}]`))
	}))
	defer server.Close()

	client := NewClient("radarr", server.URL, "test-key", time.Second)
	clients, err := client.ListDownloadClients(context.Background())

	checkNoError(t, err)
	checkIntEqual(t, "clients", len(clients), 1)
	checkStringEqual(t, "name", clients[0].Name, "qBittorrent")
	checkIntEqual(t, "id", clients[0].ID, 1)
}

func TestClientAddDownloadClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkStringEqual(t, "method", r.Method, http.MethodPost)
		checkStringEqual(t, "Content-Type", r.Header.Get("Content-Type"), "application/json")

		var payload modelsarr.DownloadClient
		checkNoError(t, json.NewDecoder(r.Body).Decode(&payload))
		checkStringEqual(t, "implementation", payload.Implementation, "QBittorrent")
		checkTrue(t, "enable", payload.Enable)

		payload.ID = 7
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient("radarr", server.URL, "test-key", time.Second)
	created, err := client.AddDownloadClient(context.Background(), modelsarr.DownloadClient{
		Name:           "qBittorrent",
		Enable:         true,
		Protocol:       "torrent",
		Implementation: "QBittorrent",
		ConfigContract: "QBittorrentSettings",
	})

	checkNoError(t, err)
	checkIntEqual(t, "created id", created.ID, 7)
}

func TestClientAddRootFolder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checkStringEqual(t, "path", r.URL.Path, "/api/v3/rootfolder")
		checkStringEqual(t, "method", r.Method, http.MethodPost)

		var payload modelsarr.RootFolder
		checkNoError(t, json.NewDecoder(r.Body).Decode(&payload))
		checkStringEqual(t, "payload path", payload.Path, "/movies")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"id":3,"path":%q,"accessible":true}`, payload.Path)
	}))
	defer server.Close()

	client := NewClient("radarr", server.URL, "test-key", time.Second)
	created, err := client.AddRootFolder(context.Background(), "/movies")

	checkNoError(t, err)
	checkIntEqual(t, "created id", created.ID, 3)
	checkStringEqual(t, "created path", created.Path, "/movies")
}

func TestClientErrorCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"errorMessage":"Should be unique"}]`))
	}))
	defer server.Close()

	client := NewClient("radarr", server.URL, "test-key", time.Second)
	_, err := client.ListRootFolders(context.Background())

	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	checkIntEqual(t, "status", apiErr.StatusCode, http.StatusBadRequest)
	checkTrue(t, "body retained", apiErr.Body != "")
}
