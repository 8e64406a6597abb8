// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini implements the client for the Google Gemini generative API.
//
// This file implements SSE streaming: the API emits `data:` events carrying
// partial generateContent responses, which are decoded into text chunks and
// delivered over a channel until the stream closes or the context is
// cancelled.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// =============================================================================
// SSE READER
// =============================================================================

// SSEEvent is a single parsed server-sent event.
type SSEEvent struct {
	Data string
}

// SSEReader parses a server-sent-event stream line by line.
type SSEReader struct {
	scanner *bufio.Scanner
}

// NewSSEReader wraps r in an SSE parser. The buffer allows events up to 1MB,
// which comfortably covers the largest chunks the API sends.
func NewSSEReader(r io.Reader) *SSEReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &SSEReader{scanner: scanner}
}

// ReadEvent returns the next event in the stream, or io.EOF when the stream
// ends. Blank lines and non-data fields are skipped.
func (r *SSEReader) ReadEvent() (*SSEEvent, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			return nil, io.EOF
		}
		return &SSEEvent{Data: data}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// =============================================================================
// STREAMING GENERATION
// =============================================================================

// GenerateStream opens a streaming generation. Text chunks arrive on the
// first channel in order; at most one error arrives on the second. Both
// channels close when the stream finishes. Cancel the context to abort.
func (c *Client) GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)

	if !c.Configured() {
		errs <- ErrNotConfigured
		close(chunks)
		close(errs)
		return chunks, errs
	}

	go func() {
		defer close(chunks)
		defer close(errs)

		if err := c.limiter.Wait(ctx); err != nil {
			errs <- err
			return
		}

		reqBody := generateRequest{
			Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
			GenerationConfig: &generationConf{
				Temperature: 0.4,
			},
		}
		payload, err := json.Marshal(reqBody)
		if err != nil {
			errs <- fmt.Errorf("gemini: marshal request: %w", err)
			return
		}

		url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", c.baseURL, c.model)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			errs <- fmt.Errorf("gemini: build request: %w", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				errs <- ctx.Err()
				return
			}
			errs <- fmt.Errorf("gemini: request: %w", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if resp.StatusCode == http.StatusTooManyRequests {
				errs <- ErrRateLimited
				return
			}
			errs <- &RequestError{StatusCode: resp.StatusCode, Message: apiErrorMessage(body)}
			return
		}

		reader := NewSSEReader(resp.Body)
		for {
			event, err := reader.ReadEvent()
			if err == io.EOF {
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					errs <- ctx.Err()
					return
				}
				errs <- fmt.Errorf("gemini: stream read: %w", err)
				return
			}

			var gr generateResponse
			if err := json.Unmarshal([]byte(event.Data), &gr); err != nil {
				// Skip malformed keepalive chunks rather than abort the stream.
				continue
			}
			if gr.Error != nil {
				errs <- &RequestError{StatusCode: gr.Error.Code, Message: gr.Error.Message}
				return
			}
			for _, cand := range gr.Candidates {
				for _, p := range cand.Content.Parts {
					if p.Text == "" {
						continue
					}
					select {
					case chunks <- p.Text:
					case <-ctx.Done():
						errs <- ctx.Err()
						return
					}
				}
			}
		}
	}()

	return chunks, errs
}

// =============================================================================
// STREAM ACCUMULATOR
// =============================================================================

// StreamAccumulator collects streamed chunks into the full response text.
type StreamAccumulator struct {
	sb strings.Builder
}

// Add appends a chunk.
func (a *StreamAccumulator) Add(chunk string) {
	a.sb.WriteString(chunk)
}

// String returns everything accumulated so far.
func (a *StreamAccumulator) String() string {
	return a.sb.String()
}

// Len returns the accumulated byte length.
func (a *StreamAccumulator) Len() int {
	return a.sb.Len()
}
