// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for devkit.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// TEXT WRAPPING
// =============================================================================

// WrapText wraps text to a maximum display width, handling wide runes
// correctly. Existing line breaks are preserved; long lines break at the last
// space before the limit when one exists.
func WrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(wrapLine(line, maxWidth))
	}
	return result.String()
}

func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	runes := []rune(line)

	for len(runes) > 0 {
		width := 0
		cut := len(runes)
		lastSpace := -1

		for idx, r := range runes {
			width += runewidth.RuneWidth(r)
			if r == ' ' {
				lastSpace = idx
			}
			if width > maxWidth {
				cut = idx
				break
			}
		}

		if cut == len(runes) {
			result.WriteString(string(runes))
			break
		}

		// Prefer breaking at a space when one fits on the line.
		if lastSpace > 0 && lastSpace < cut {
			cut = lastSpace
		}

		result.WriteString(string(runes[:cut]))
		result.WriteString("\n")
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}

	return result.String()
}

// TruncateToWidth truncates s to the given display width, appending an
// ellipsis when content was removed.
func TruncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// =============================================================================
// CODE BLOCK EXTRACTION
// =============================================================================

// FencedBlock is a single fenced code block extracted from markdown text.
type FencedBlock struct {
	Language string
	Code     string
}

// ExtractFencedBlocks returns all fenced code blocks in markdown text, in
// order of appearance. An unterminated trailing fence is included as-is.
func ExtractFencedBlocks(text string) []FencedBlock {
	var blocks []FencedBlock
	var current []string
	var language string
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "```") {
			if inBlock {
				blocks = append(blocks, FencedBlock{
					Language: language,
					Code:     strings.Join(current, "\n"),
				})
				current = nil
				language = ""
				inBlock = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inBlock = true
			}
			continue
		}
		if inBlock {
			current = append(current, line)
		}
	}

	if inBlock && len(current) > 0 {
		blocks = append(blocks, FencedBlock{
			Language: language,
			Code:     strings.Join(current, "\n"),
		})
	}

	return blocks
}
