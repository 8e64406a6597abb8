// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the devkit TUI application model.
//
// This file renders the full frame: header, feature navigation, workspace
// (input, action, output), and status bar. While a transition is fading, the
// whole frame draws in the dimmed header style.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/devkit-tui/internal/util"
)

// View renders the complete TUI frame.
func (m Model) View() string {
	if !m.ready {
		return "Starting devkit..."
	}

	sections := []string{
		m.viewHeader(),
		m.viewNav(),
		"",
	}

	f := m.active()
	if !f.Informational() {
		sections = append(sections, m.viewInput(), "")
	}
	sections = append(sections, m.viewOutput(), m.viewStatus())

	frame := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.fading {
		// Fade approximation: repaint the frame in the muted style.
		return m.theme.HeaderDimmed.Render(frame)
	}
	return frame
}

// viewHeader renders the title line for the active feature.
func (m Model) viewHeader() string {
	f := m.active()
	title := m.theme.HeaderTitle.Render("devkit")
	subText := fmt.Sprintf("%s · %s", f.Title, f.Description)
	if m.width > 12 {
		subText = util.TruncateToWidth(subText, m.width-12)
	}
	sub := m.theme.HeaderSubtitle.Render(subText)
	return m.theme.Header.Render(title + "  " + sub)
}

// viewNav renders the feature strip with the active entry highlighted.
func (m Model) viewNav() string {
	items := make([]string, len(m.features))
	highlight := m.activeIdx
	if m.fading {
		highlight = m.pendingIdx
	}
	for i, f := range m.features {
		label := f.Title
		if i == highlight {
			items[i] = m.theme.NavItemActive.Render(label)
		} else {
			items[i] = m.theme.NavItem.Render(label)
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(items, ""))
}

// viewInput renders the input area and action row.
func (m Model) viewInput() string {
	f := m.active()

	var action string
	switch {
	case !m.configured:
		action = m.theme.ActionWaiting.Render(f.ActionLabel + " (unavailable)")
	case m.isLoading:
		action = m.theme.ActionWaiting.Render(m.spin.View() + " Working...")
	default:
		action = m.theme.ActionButton.Render(f.ActionLabel)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.InputLabel.Render("Input"),
		m.input.View(),
		action,
	)
}

// viewOutput renders the output viewport in its frame.
func (m Model) viewOutput() string {
	return m.theme.OutputFrame.Width(m.width - 2).Render(m.output.View())
}

// viewStatus renders the bottom status bar: transient confirmations first,
// then the key help for the current focus.
func (m Model) viewStatus() string {
	if m.copyStatus != "" {
		return m.theme.StatusBar.Render(m.theme.CopyOK.Render(m.copyStatus))
	}

	var hints []string
	hints = append(hints, "ctrl+n/ctrl+p tools")
	if !m.active().Informational() {
		hints = append(hints, "ctrl+s "+strings.ToLower(m.active().ActionLabel))
		hints = append(hints, "tab focus")
	}
	if m.isLoading {
		hints = append(hints, "esc cancel")
	}
	if m.focus == focusOutput {
		hints = append(hints, "c copy")
		if m.tabs == nil && m.result != nil && m.result.Text != "" {
			hints = append(hints, "b copy code")
		}
		if m.tabs != nil {
			hints = append(hints, "[/] tabs")
		}
		if m.result != nil && m.result.Mockup != nil {
			hints = append(hints, "p save preview")
		}
	}
	hints = append(hints, "ctrl+c quit")

	return m.theme.StatusBar.Render(
		m.theme.StatusHint.Render(strings.Join(hints, " · ")))
}
