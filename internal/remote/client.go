// Package remote is the HTTP adapter for the system of record. It exposes
// the three operations the pipeline needs (validate, insert, sample) and
// never lets a transport problem escape as an error the caller has to
// catch: every operation returns a structured outcome.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// OutcomeStatus classifies the result of a remote validation call.
type OutcomeStatus int

const (
	// Accepted: the system of record accepted the batch.
	Accepted OutcomeStatus = iota
	// Rejected: the system of record explicitly declined the batch.
	Rejected
	// Unreachable: the call never completed (network failure, timeout).
	Unreachable
)

// ValidateOutcome is the classified response of a remote validation call.
type ValidateOutcome struct {
	Status   OutcomeStatus
	Errors   []string
	Warnings []string
	Records  []map[string]any // Remote's validated record set, when provided
	Detail   string           // Transport failure detail, for logging
}

// InsertOutcome is the relayed response of a remote insertion call.
type InsertOutcome struct {
	OK     bool
	Status int
	Body   map[string]any
	Err    string // Transport failure detail; empty when the call completed
}

// Client talks to the remote validation/insertion service. Paths are
// supplied per call since each entity type has its own endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL. The timeout bounds
// every call; a timeout is treated as a transport failure.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// validateResponse is the wire shape of the remote validation response.
// The validated record set arrives under an entity-specific key
// ("validated_sellers", ...) or the generic "data".
type validateResponse struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate submits wire-shaped records to the remote validation operation.
// validatedKey names the entity-specific response field holding the
// remote's validated record set.
func (c *Client) Validate(ctx context.Context, path string, records []map[string]any, validatedKey string) ValidateOutcome {
	body, status, err := c.post(ctx, path, records)
	if err != nil {
		slog.Warn("validation service unreachable", "path", path, "error", err)
		return ValidateOutcome{Status: Unreachable, Detail: err.Error()}
	}

	if status < 200 || status >= 300 {
		return ValidateOutcome{Status: Rejected, Errors: parseErrorBody(body, status)}
	}

	var resp validateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ValidateOutcome{
			Status: Rejected,
			Errors: []string{fmt.Sprintf("validation service returned an unreadable response (status %d): %s", status, truncate(string(body), 500))},
		}
	}

	outcome := ValidateOutcome{
		Errors:   resp.Errors,
		Warnings: resp.Warnings,
		Records:  extractRecords(body, validatedKey),
	}
	if len(resp.Errors) > 0 {
		outcome.Status = Rejected
	} else {
		outcome.Status = Accepted
	}
	return outcome
}

// Insert submits the reconciled record set to the remote insertion
// operation and relays its raw outcome. Non-JSON response bodies are
// wrapped as {"raw": text, "status": code} rather than failing.
func (c *Client) Insert(ctx context.Context, path string, records []map[string]any) InsertOutcome {
	body, status, err := c.post(ctx, path, records)
	if err != nil {
		slog.Warn("insertion service unreachable", "path", path, "error", err)
		return InsertOutcome{OK: false, Err: err.Error()}
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		parsed = map[string]any{"raw": string(body), "status": status}
	}

	return InsertOutcome{
		OK:     status >= 200 && status < 300,
		Status: status,
		Body:   parsed,
	}
}

// Sample fetches up to limit live records for template generation. key
// names the JSON field holding the record list; "data" is tried as a
// fallback.
func (c *Client) Sample(ctx context.Context, path, key string, limit int) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+strings.TrimPrefix(path, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("build sample request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch samples: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch samples: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sample response: %w", err)
	}

	records := extractRecords(body, key)
	if records == nil {
		return nil, fmt.Errorf("sample response has no %q records", key)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// post sends a JSON body and returns the raw response. A non-nil error
// means the call never completed; HTTP-level rejections come back as a
// status code, not an error.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal payload: %w", err)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// parseErrorBody extracts error messages from a non-2xx response. The body
// is the preferred error source; unparsable bodies are surfaced as a single
// generic message embedding the raw body and status.
func parseErrorBody(body []byte, status int) []string {
	var parsed struct {
		Errors  []string `json:"errors"`
		Message string   `json:"message"`
		Error   string   `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case len(parsed.Errors) > 0:
			return parsed.Errors
		case parsed.Message != "":
			return []string{parsed.Message}
		case parsed.Error != "":
			return []string{parsed.Error}
		}
	}
	return []string{fmt.Sprintf("validation service error (status %d): %s", status, truncate(string(body), 500))}
}

// extractRecords pulls a record list out of a response body, trying the
// entity-specific key first and "data" second.
func extractRecords(body []byte, key string) []map[string]any {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(body, &generic); err != nil {
		return nil
	}

	for _, k := range []string{key, "data"} {
		if k == "" {
			continue
		}
		raw, ok := generic[k]
		if !ok {
			continue
		}
		var records []map[string]any
		if err := json.Unmarshal(raw, &records); err == nil {
			return records
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
