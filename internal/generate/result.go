// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate models the outcome of a generation: plain streamed text,
// or structured JSON decoded and shape-checked against the feature that
// requested it.
package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/jeranaias/devkit-tui/internal/feature"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrMalformedResult indicates the model returned JSON that does not match
// the feature's declared shape. Distinct from transport failures so the UI
// can attribute the fault to the model rather than the network.
var ErrMalformedResult = errors.New("generate: structured output does not match the expected shape")

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of one completed generation. Exactly one of the
// payload fields is set, keyed by FeatureID's kind.
type Result struct {
	// FeatureID names the feature that produced this result.
	FeatureID string
	// Text holds the full response for text features.
	Text string
	// Fix holds the decoded bug-fixing payload.
	Fix *FixResult
	// Mockup holds the decoded UI-mockup payload.
	Mockup *MockupResult
}

// FixResult is the structured bug-fixing response.
type FixResult struct {
	Analysis      string `json:"analysis"`
	CorrectedCode string `json:"correctedCode"`
	Explanation   string `json:"explanation"`
}

// MockupResult is the structured UI-mockup response.
type MockupResult struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse turns a raw model response into a Result for the given feature.
// Text features pass through unchanged; JSON features are decoded and
// shape-checked, returning ErrMalformedResult on any mismatch.
func Parse(f feature.Config, raw string) (*Result, error) {
	if f.Kind == feature.KindText {
		return &Result{FeatureID: f.ID, Text: raw}, nil
	}

	payload := stripCodeFence(raw)

	switch f.ID {
	case feature.IDFix:
		var fix FixResult
		if err := decodeStrict(payload, &fix); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
		}
		if fix.Analysis == "" || fix.CorrectedCode == "" || fix.Explanation == "" {
			return nil, fmt.Errorf("%w: missing required field", ErrMalformedResult)
		}
		return &Result{FeatureID: f.ID, Fix: &fix}, nil

	case feature.IDMockup:
		var mock MockupResult
		if err := decodeStrict(payload, &mock); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
		}
		if mock.HTML == "" {
			return nil, fmt.Errorf("%w: missing html field", ErrMalformedResult)
		}
		return &Result{FeatureID: f.ID, Mockup: &mock}, nil

	default:
		return nil, fmt.Errorf("%w: no decoder for feature %q", ErrMalformedResult, f.ID)
	}
}

// decodeStrict decodes JSON rejecting non-object payloads.
func decodeStrict(payload string, v any) error {
	dec := json.NewDecoder(strings.NewReader(payload))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// stripCodeFence removes a surrounding markdown fence if the model wrapped
// its JSON in one despite the mime-type constraint.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// =============================================================================
// MOCKUP PREVIEW
// =============================================================================

// BuildPreviewDocument combines a mockup's HTML and CSS into a single
// standalone document suitable for saving and opening in a browser.
func BuildPreviewDocument(m *MockupResult) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<style>\n")
	sb.WriteString(m.CSS)
	sb.WriteString("\n</style>\n</head>\n<body>\n")
	sb.WriteString(m.HTML)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

// BuildPreviewHost wraps the preview document in a sandboxed iframe host
// page. The document is embedded via srcdoc, so every double quote and
// angle bracket must be entity-escaped or the attribute terminates early.
func BuildPreviewHost(m *MockupResult) string {
	doc := BuildPreviewDocument(m)
	escaped := html.EscapeString(doc)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>devkit mockup preview</title>\n")
	sb.WriteString("<style>html,body{margin:0;height:100%}iframe{width:100%;height:100%;border:0}</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(`<iframe sandbox="" srcdoc="`)
	sb.WriteString(escaped)
	sb.WriteString("\"></iframe>\n</body>\n</html>\n")
	return sb.String()
}
