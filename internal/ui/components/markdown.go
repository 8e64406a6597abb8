// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI widgets for the devkit TUI.
package components

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var (
	rendererMu    sync.Mutex
	renderer      *glamour.TermRenderer
	rendererWidth int
)

// RenderMarkdown renders markdown for terminal display at the given word-wrap
// width. The renderer is cached and rebuilt only when the width changes. On
// any renderer failure the raw markdown is returned, never an empty string.
func RenderMarkdown(markdown string, width int) string {
	if width <= 0 {
		width = 80
	}

	rendererMu.Lock()
	defer rendererMu.Unlock()

	if renderer == nil || rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return markdown
		}
		renderer = r
		rendererWidth = width
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
