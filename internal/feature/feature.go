// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feature defines the declarative tool registry for devkit.
//
// Every tool the TUI offers is a Config value: its identity, the prompt
// framing sent to the model, the labels shown in the workspace, and whether
// the response arrives as streamed text or as schema-constrained JSON. Adding
// a tool means adding a registry entry; no view or orchestration code changes.
package feature

import (
	"fmt"
	"sort"
)

// =============================================================================
// RESPONSE KINDS
// =============================================================================

// Kind describes how a feature's response is produced and consumed.
type Kind string

const (
	// KindText streams plain markdown text token by token.
	KindText Kind = "text"
	// KindJSON returns a single schema-constrained JSON document.
	KindJSON Kind = "json"
)

// =============================================================================
// FEATURE IDS
// =============================================================================

// Well-known feature identifiers.
const (
	IDGenerate = "generate"
	IDFix      = "fix"
	IDExplain  = "explain"
	IDDocs     = "docs"
	IDTests    = "tests"
	IDMockup   = "mockup"

	// Informational views. They carry no prompt and never call the API.
	IDAbout  = "about"
	IDAuthor = "author"
)

// =============================================================================
// SCHEMA TYPES
// =============================================================================

// Schema is a Gemini responseSchema fragment, expressed as the nested map
// structure the API expects so it serializes directly into generationConfig.
type Schema map[string]any

// =============================================================================
// CONFIG
// =============================================================================

// Config declares a single feature.
type Config struct {
	// ID uniquely identifies the feature and keys the active-view state.
	ID string
	// Title is the display name shown in navigation and the header.
	Title string
	// Description is the one-line summary under the title.
	Description string
	// PromptPrefix frames the user's input before it is sent to the model.
	// Empty for informational views.
	PromptPrefix string
	// ActionLabel is the caption on the submit control.
	ActionLabel string
	// Placeholder is the input area hint text.
	Placeholder string
	// Kind selects streaming text or structured JSON output.
	Kind Kind
	// Schema constrains JSON output. Non-nil exactly when Kind is KindJSON.
	Schema Schema
	// Static holds the body of an informational view. Non-empty only when
	// PromptPrefix is empty.
	Static string
}

// Informational reports whether the feature is a static view with no
// generation capability.
func (c Config) Informational() bool {
	return c.PromptPrefix == "" && c.Static != ""
}

// Validate checks the internal consistency of a feature declaration.
func (c Config) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("feature with title %q has no ID", c.Title)
	}
	if c.Title == "" {
		return fmt.Errorf("feature %q has no title", c.ID)
	}
	if c.Informational() {
		if c.Schema != nil {
			return fmt.Errorf("informational feature %q must not declare a schema", c.ID)
		}
		return nil
	}
	if c.PromptPrefix == "" {
		return fmt.Errorf("feature %q has neither a prompt prefix nor static content", c.ID)
	}
	switch c.Kind {
	case KindText:
		if c.Schema != nil {
			return fmt.Errorf("text feature %q must not declare a schema", c.ID)
		}
	case KindJSON:
		if c.Schema == nil {
			return fmt.Errorf("json feature %q must declare a schema", c.ID)
		}
	default:
		return fmt.Errorf("feature %q has unknown kind %q", c.ID, c.Kind)
	}
	return nil
}

// =============================================================================
// SCHEMAS
// =============================================================================

// FixSchema constrains the bug-fixing response: a diagnosis, the corrected
// source, and an explanation of the change.
func FixSchema() Schema {
	return Schema{
		"type": "object",
		"properties": map[string]any{
			"analysis": map[string]any{
				"type":        "string",
				"description": "Diagnosis of the bug in the provided code.",
			},
			"correctedCode": map[string]any{
				"type":        "string",
				"description": "The full corrected source code.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "What was changed and why it fixes the bug.",
			},
		},
		"required":         []string{"analysis", "correctedCode", "explanation"},
		"propertyOrdering": []string{"analysis", "correctedCode", "explanation"},
	}
}

// MockupSchema constrains the UI-mockup response: standalone HTML markup and
// the CSS that styles it.
func MockupSchema() Schema {
	return Schema{
		"type": "object",
		"properties": map[string]any{
			"html": map[string]any{
				"type":        "string",
				"description": "Body markup for the mockup, no doctype or head.",
			},
			"css": map[string]any{
				"type":        "string",
				"description": "Stylesheet for the markup.",
			},
		},
		"required":         []string{"html", "css"},
		"propertyOrdering": []string{"html", "css"},
	}
}

// =============================================================================
// REGISTRY
// =============================================================================

// registry holds every feature, keyed by ID. Populated once at init.
var registry = map[string]Config{}

// navOrder fixes the navigation display order.
var navOrder = []string{
	IDGenerate, IDFix, IDExplain, IDDocs, IDTests, IDMockup, IDAbout, IDAuthor,
}

func init() {
	for _, c := range []Config{
		{
			ID:          IDGenerate,
			Title:       "Code Generator",
			Description: "Generate code from a natural-language description.",
			PromptPrefix: "You are an expert software engineer. Write clean, idiomatic, " +
				"well-commented code for the following request. Use fenced code blocks " +
				"with language tags.\n\nRequest:\n",
			ActionLabel: "Generate",
			Placeholder: "Describe the code you want, e.g. \"a rate limiter in Go\"...",
			Kind:        KindText,
		},
		{
			ID:          IDFix,
			Title:       "Bug Fixer",
			Description: "Paste broken code and get a diagnosis plus a corrected version.",
			PromptPrefix: "You are an expert debugger. Analyze the following code, find the " +
				"bug, and produce the corrected code with an explanation.\n\nCode:\n",
			ActionLabel: "Fix Bug",
			Placeholder: "Paste the code that misbehaves...",
			Kind:        KindJSON,
			Schema:      FixSchema(),
		},
		{
			ID:          IDExplain,
			Title:       "Code Explainer",
			Description: "Get a plain-language walkthrough of unfamiliar code.",
			PromptPrefix: "You are a patient senior engineer. Explain the following code " +
				"step by step for a developer who has never seen it. Cover intent, " +
				"control flow, and any subtle behavior.\n\nCode:\n",
			ActionLabel: "Explain",
			Placeholder: "Paste the code you want explained...",
			Kind:        KindText,
		},
		{
			ID:          IDDocs,
			Title:       "Doc Writer",
			Description: "Produce reference documentation for existing code.",
			PromptPrefix: "You are a technical writer. Write clear reference documentation " +
				"in markdown for the following code: a summary, parameter and return " +
				"descriptions, and a usage example.\n\nCode:\n",
			ActionLabel: "Write Docs",
			Placeholder: "Paste the code to document...",
			Kind:        KindText,
		},
		{
			ID:          IDTests,
			Title:       "Test Generator",
			Description: "Generate unit tests covering the code you paste.",
			PromptPrefix: "You are a test engineer. Write thorough unit tests for the " +
				"following code using the conventional test framework for its language. " +
				"Cover the happy path and the edge cases.\n\nCode:\n",
			ActionLabel: "Generate Tests",
			Placeholder: "Paste the code to test...",
			Kind:        KindText,
		},
		{
			ID:          IDMockup,
			Title:       "UI Mockup",
			Description: "Turn a description into HTML and CSS you can preview.",
			PromptPrefix: "You are a frontend designer. Produce a self-contained HTML " +
				"fragment and matching CSS for the following interface description. " +
				"No external assets or scripts.\n\nDescription:\n",
			ActionLabel: "Create Mockup",
			Placeholder: "Describe the interface, e.g. \"a pricing page with three tiers\"...",
			Kind:        KindJSON,
			Schema:      MockupSchema(),
		},
		{
			ID:          IDAbout,
			Title:       "About",
			Description: "What devkit is and how it works.",
			Kind:        KindText,
			Static: "# devkit\n\n" +
				"A terminal workbench for everyday development tasks, powered by a " +
				"generative model. Pick a tool from the navigation, describe or paste " +
				"what you are working on, and the result streams straight into the " +
				"output pane.\n\n" +
				"Responses are rendered as markdown with syntax-highlighted code " +
				"blocks. Structured tools such as the Bug Fixer and UI Mockup present " +
				"their results in tabbed panes.\n",
		},
		{
			ID:          IDAuthor,
			Title:       "Author",
			Description: "Who builds and maintains devkit.",
			Kind:        KindText,
			Static: "# Morgan Forge\n\n" +
				"devkit is built and maintained by Morgan Forge. Bug reports and " +
				"patches are welcome through the project tracker.\n",
		},
	} {
		if err := c.Validate(); err != nil {
			panic(err)
		}
		registry[c.ID] = c
	}
}

// Get returns the feature with the given ID.
func Get(id string) (Config, bool) {
	c, ok := registry[id]
	return c, ok
}

// All returns every feature in navigation order.
func All() []Config {
	out := make([]Config, 0, len(navOrder))
	for _, id := range navOrder {
		out = append(out, registry[id])
	}
	return out
}

// Generative returns the features that can call the API, in navigation order.
func Generative() []Config {
	var out []Config
	for _, c := range All() {
		if !c.Informational() {
			out = append(out, c)
		}
	}
	return out
}

// IDs returns all registered feature IDs, sorted.
func IDs() []string {
	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Default returns the feature the workspace opens on.
func Default() Config {
	return registry[IDGenerate]
}
