// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI widgets for the devkit TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	uistyles "github.com/jeranaias/devkit-tui/internal/ui/styles"
)

// =============================================================================
// ERROR PANEL
// =============================================================================

// RenderError draws an error inside a rose-bordered panel. The title names
// the fault category and the body carries the message.
func RenderError(theme *uistyles.Theme, title, message string, width int) string {
	if width < 20 {
		width = 20
	}

	panel := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(uistyles.RoseDeep).
		Padding(0, 1).
		Width(width - 2)

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.ErrorTitle.Render(title),
		theme.ErrorBody.Render(message),
	)
	return panel.Render(body)
}
