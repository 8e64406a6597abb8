// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini implements the client for the Google Gemini generative API.
//
// Two request shapes are supported: one-shot generation with an optional
// responseSchema that forces JSON output, and server-sent-event streaming
// for token-by-token text delivery. Every request is tied to a
// context.Context so in-flight generations can be cancelled.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotConfigured indicates the client was built without an API key.
	ErrNotConfigured = errors.New("gemini: API key not configured")

	// ErrRateLimited indicates the API returned 429 after all retries.
	ErrRateLimited = errors.New("gemini: rate limited")

	// ErrEmptyResponse indicates the API returned no candidates.
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// RequestError is a non-2xx API response.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini: request failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini: request failed (%d)", e.StatusCode)
}

// =============================================================================
// CLIENT
// =============================================================================

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	maxRetries     = 3
)

// sharedHTTPClient is reused across all clients so connections pool.
var sharedHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
}

// Client talks to the Gemini API for a single configured model.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a client for the given key and model.
func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: defaultBaseURL,
		http:    sharedHTTPClient,
		// The free tier allows a handful of requests per minute; pace
		// submissions rather than burning retries on 429s.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client holds an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type generateRequest struct {
	Contents         []content       `json:"contents"`
	GenerationConfig *generationConf `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConf struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	Temperature      float64        `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// ONE-SHOT GENERATION
// =============================================================================

// Generate performs a blocking generation and returns the full response text.
// When schema is non-nil the response is constrained to JSON matching it.
func (c *Client) Generate(ctx context.Context, prompt string, schema map[string]any) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConf{
			Temperature: 0.4,
		},
	}
	if schema != nil {
		reqBody.GenerationConfig.ResponseMimeType = "application/json"
		reqBody.GenerationConfig.ResponseSchema = schema
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s.
			wait := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		text, retryable, err := c.doGenerate(ctx, url, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", lastErr
}

func (c *Client) doGenerate(ctx context.Context, url string, payload []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("gemini: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", true, fmt.Errorf("gemini: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", true, ErrRateLimited
	case resp.StatusCode >= 500:
		return "", true, &RequestError{StatusCode: resp.StatusCode, Message: apiErrorMessage(body)}
	case resp.StatusCode != http.StatusOK:
		return "", false, &RequestError{StatusCode: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", false, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", false, ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), false, nil
}

// apiErrorMessage extracts the error message from an API error body.
func apiErrorMessage(body []byte) string {
	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err == nil && gr.Error != nil {
		return gr.Error.Message
	}
	return strings.TrimSpace(string(body))
}
