//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

// Package rootsignals implements the HTTP client for the Root Signals
// evaluation API: a thin transport wrapper plus evaluator and judge
// repositories that paginate listings and map raw records into typed
// results.
package rootsignals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/internal/version"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/log"
)

const defaultTimeout = 30 * time.Second

// Client issues authenticated JSON requests against the Root Signals API.
// It performs no retries; a transient upstream failure is surfaced to the
// caller immediately.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	httpc     *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client. The caller keeps ownership of the
// client's timeout.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpc = c
	}
}

// WithTimeout bounds every request issued by the client.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		cl.httpc.Timeout = d
	}
}

// NewClient creates a client for the Root Signals API rooted at baseURL.
func NewClient(apiKey, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: "trpc-rootsignals-mcp/" + version.Version,
		httpc:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request performs one HTTP call and decodes the response body as JSON,
// returning either a JSON object or a JSON array. A 204 yields an empty
// object. Status >= 400 and network-level failures yield an *APIError.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	log.Debugf("making %s request to %s", method, u)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Errorf("request error: %v", err)
		return nil, &APIError{StatusCode: 0, Detail: fmt.Sprintf("Connection error: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("request error: %v", err)
		return nil, &APIError{StatusCode: 0, Detail: fmt.Sprintf("Connection error: %v", err)}
	}

	log.Debugf("response status: %d", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		detail := errorDetail(data, resp.StatusCode)
		log.Errorf("API error response: %s", detail)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: detail}
	}
	if resp.StatusCode == http.StatusNoContent {
		return map[string]any{}, nil
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf("response body is not valid JSON: %v", err),
			Data:    string(data),
		}
	}
	return parsed, nil
}

// errorDetail extracts the error message from an upstream error body:
// the JSON "detail" field when present, the raw body otherwise, or a
// generic "HTTP <code>" when the body is empty.
func errorDetail(body []byte, status int) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if detail, ok := parsed["detail"].(string); ok && detail != "" {
			return detail
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

// fetchPaginated walks a listing endpoint page by page until the next-page
// pointer runs out or maxCount records have been accumulated, and trims the
// overshoot from the final page. Both the paged shape (object with
// "results" and "next") and the unpaged bare-array shape are accepted; the
// latter stops pagination after one fetch.
func (c *Client) fetchPaginated(ctx context.Context, firstPath string, maxCount int) ([]map[string]any, error) {
	var records []map[string]any
	next := firstPath

	for next != "" && len(records) < maxCount {
		// Absolute next-page URLs are reduced to a path relative to the
		// API root so they go through the configured base URL.
		if strings.HasPrefix(next, "http") {
			u, err := url.Parse(next)
			if err != nil {
				return nil, &ValidationError{
					Message: fmt.Sprintf("invalid next page URL: %v", err),
					Data:    next,
				}
			}
			next = u.RequestURI()
		}

		page, err := c.request(ctx, http.MethodGet, next, nil, nil)
		if err != nil {
			return nil, err
		}

		var pageRecords []any
		switch p := page.(type) {
		case map[string]any:
			next, _ = p["next"].(string)
			results, ok := p["results"].([]any)
			if !ok {
				return nil, &ValidationError{
					Message: "could not find 'results' field in response",
					Data:    page,
				}
			}
			pageRecords = results
		case []any:
			pageRecords = p
			next = ""
		default:
			return nil, &ValidationError{
				Message: fmt.Sprintf("expected response to be an object or array, got %s", jsonTypeName(page)),
				Data:    page,
			}
		}

		for i, raw := range pageRecords {
			record, ok := raw.(map[string]any)
			if !ok {
				return nil, &ValidationError{
					Message: fmt.Sprintf("record at index %d is not an object, got %s", i, jsonTypeName(raw)),
					Data:    raw,
				}
			}
			records = append(records, record)
		}

		log.Debugf("fetched %d more records, total now: %d", len(pageRecords), len(records))

		// An empty page means a buggy "next" link; stop instead of looping.
		if len(pageRecords) == 0 {
			break
		}
	}

	if len(records) > maxCount {
		records = records[:maxCount]
		log.Debugf("trimmed results to %d records", maxCount)
	}
	return records, nil
}

// jsonTypeName names the JSON type of a decoded value for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
