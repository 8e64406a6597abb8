// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI widgets for the devkit TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	uistyles "github.com/jeranaias/devkit-tui/internal/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// HighlightCode renders source code with ANSI syntax highlighting. The
// language hint comes from the fence tag; when it is empty or unknown the
// content is analysed, falling back to plain text.
func HighlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var sb strings.Builder
	if err := formatter.Format(&sb, style, iterator); err != nil {
		return code
	}
	return sb.String()
}

// =============================================================================
// CODE PANE
// =============================================================================

// RenderCodePane frames highlighted code with a language caption and the
// copy hint. Used for the tabbed structured-output panes.
func RenderCodePane(theme *uistyles.Theme, code, language string, width int) string {
	caption := language
	if caption == "" {
		caption = "code"
	}

	highlighted := strings.TrimRight(HighlightCode(code, language), "\n")

	frame := theme.OutputFrame.Width(width - 2)
	header := theme.StatusHint.Render(caption)

	return lipgloss.JoinVertical(lipgloss.Left, header, frame.Render(highlighted))
}
