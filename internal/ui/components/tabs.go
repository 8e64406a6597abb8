// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI widgets for the devkit TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	uistyles "github.com/jeranaias/devkit-tui/internal/ui/styles"
)

// =============================================================================
// TABBED PANE
// =============================================================================

// Tab is one pane in a TabGroup.
type Tab struct {
	// Label is the tab caption.
	Label string
	// Content is the rendered body shown when the tab is active.
	Content string
	// CopySource is the literal text the copy action places on the
	// clipboard. It is the raw source, not the rendered Content.
	CopySource string
}

// TabGroup is a horizontal strip of tabs with one active pane.
type TabGroup struct {
	Tabs   []Tab
	active int
}

// NewTabGroup builds a tab group with the first tab active.
func NewTabGroup(tabs ...Tab) *TabGroup {
	return &TabGroup{Tabs: tabs}
}

// Active returns the index of the active tab.
func (g *TabGroup) Active() int {
	return g.active
}

// ActiveTab returns the active tab, or a zero Tab when the group is empty.
func (g *TabGroup) ActiveTab() Tab {
	if len(g.Tabs) == 0 {
		return Tab{}
	}
	return g.Tabs[g.active]
}

// Next activates the following tab, wrapping around.
func (g *TabGroup) Next() {
	if len(g.Tabs) == 0 {
		return
	}
	g.active = (g.active + 1) % len(g.Tabs)
}

// Prev activates the preceding tab, wrapping around.
func (g *TabGroup) Prev() {
	if len(g.Tabs) == 0 {
		return
	}
	g.active = (g.active - 1 + len(g.Tabs)) % len(g.Tabs)
}

// Select activates the tab at index i if it exists.
func (g *TabGroup) Select(i int) {
	if i >= 0 && i < len(g.Tabs) {
		g.active = i
	}
}

// View renders the tab strip followed by the active pane.
func (g *TabGroup) View(theme *uistyles.Theme) string {
	if len(g.Tabs) == 0 {
		return ""
	}

	labels := make([]string, len(g.Tabs))
	for i, t := range g.Tabs {
		if i == g.active {
			labels[i] = theme.TabActive.Render(t.Label)
		} else {
			labels[i] = theme.TabInactive.Render(t.Label)
		}
	}
	strip := strings.Join(labels, " ")

	return lipgloss.JoinVertical(lipgloss.Left, strip, "", g.ActiveTab().Content)
}
