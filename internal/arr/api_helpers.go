// Simplarr - Automated Service Wiring for Self-Hosted Media Stacks
// Copyright 2026 Simplarr contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/simplarr/simplarr

package arr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// APIError is a non-2xx response from a managed service's API. The body is
// folded into the error so the summary line carries the service's own
// explanation.
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// IsConflict reports whether the error is the target service rejecting a
// duplicate registration. The arr services answer 400 with a validation
// message rather than 409, so both are treated as the already-exists case.
func IsConflict(err error) bool {
	var apiErr *APIError
	if !asAPIError(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusConflict {
		return true
	}
	return apiErr.StatusCode == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(apiErr.Body), "already")
}

func asAPIError(err error, target **APIError) bool {
	for err != nil {
		if e, ok := err.(*APIError); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// requester is the shared plumbing for all three service clients: base URL,
// X-Api-Key auth, JSON encoding, and status handling in one place.
type requester struct {
	service    string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// doJSON performs one API call. A non-nil body is JSON-encoded; a non-nil
// out has the response decoded into it. Non-2xx statuses come back as
// *APIError with the response body attached.
func (r *requester) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	fullURL := r.baseURL + endpoint

	var reqBody io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Api-Key", r.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request %s failed: %w", r.service, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			respBody = []byte("(failed to read body)")
		}
		return &APIError{
			Service:    r.service,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", r.service, endpoint, err)
	}

	return nil
}
