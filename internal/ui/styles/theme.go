// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the devkit TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderDimmed   lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// NAVIGATION STYLES
	// ==========================================================================

	NavItem       lipgloss.Style
	NavItemActive lipgloss.Style

	// ==========================================================================
	// WORKSPACE STYLES
	// ==========================================================================

	InputLabel    lipgloss.Style
	ActionButton  lipgloss.Style
	ActionWaiting lipgloss.Style
	OutputFrame   lipgloss.Style
	StreamingText lipgloss.Style

	// ==========================================================================
	// TAB STYLES
	// ==========================================================================

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusBar  lipgloss.Style
	StatusHint lipgloss.Style
	CopyOK     lipgloss.Style
	ErrorTitle lipgloss.Style
	ErrorBody  lipgloss.Style
}

// NewTheme creates the default theme, probing terminal capabilities.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
		Width:        80,
		Height:       24,
	}

	t.Header = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	// Fade-out approximation for the view transition: same layout, muted text.
	t.HeaderDimmed = t.Header.
		Foreground(TextMuted)

	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.NavItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.NavItemActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.InputLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ActionButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 2)

	t.ActionWaiting = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(OverlayDim).
		Padding(0, 2)

	t.OutputFrame = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.StreamingText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 2)

	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(OverlayDim).
		Padding(0, 2)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CopyOK = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	return t
}

// SetSize records the current terminal dimensions on the theme.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
