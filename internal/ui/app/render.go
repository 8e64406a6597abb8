// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the devkit TUI application model.
//
// This file turns generation results into viewport content. Text results are
// rendered as markdown; structured results become tabbed panes whose copy
// action always yields the literal source, never the styled rendering.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devkit-tui/internal/config"
	"github.com/jeranaias/devkit-tui/internal/generate"
	"github.com/jeranaias/devkit-tui/internal/ui/components"
	"github.com/jeranaias/devkit-tui/internal/util"
)

// =============================================================================
// OUTPUT REFRESH
// =============================================================================

// refreshOutput rebuilds the viewport content from the current state.
func (m *Model) refreshOutput() {
	if !m.ready {
		return
	}
	m.output.SetContent(m.renderOutput())
}

// renderOutput selects the renderer for the current state.
func (m *Model) renderOutput() string {
	f := m.active()
	width := m.output.Width
	if width <= 0 {
		width = 80
	}
	wrap := m.cfg.UI.WordWrap
	if wrap > width {
		wrap = width
	}

	if f.Informational() {
		return components.RenderMarkdown(f.Static, wrap)
	}

	if m.errMsg != "" {
		return components.RenderError(m.theme, m.errTitle, m.errMsg, width)
	}

	// Streamed text is shown raw while in flight and rendered as markdown
	// once complete.
	if m.isLoading {
		return m.theme.StreamingText.Render(util.WrapText(m.acc.String(), width))
	}

	if m.result == nil {
		return m.theme.StatusHint.Render("Output will appear here.")
	}

	switch {
	case m.result.Fix != nil:
		m.ensureFixTabs(m.result.Fix, width, wrap)
		return m.tabs.View(m.theme)
	case m.result.Mockup != nil:
		m.ensureMockupTabs(m.result.Mockup, width, wrap)
		return m.tabs.View(m.theme)
	default:
		return components.RenderMarkdown(m.result.Text, wrap)
	}
}

// ensureFixTabs builds the bug-fixing tab group, preserving the active tab
// across rebuilds triggered by resizes.
func (m *Model) ensureFixTabs(fix *generate.FixResult, width, wrap int) {
	active := 0
	if m.tabs != nil {
		active = m.tabs.Active()
	}
	m.tabs = components.NewTabGroup(
		components.Tab{
			Label:      "Analysis",
			Content:    components.RenderMarkdown(fix.Analysis, wrap),
			CopySource: fix.Analysis,
		},
		components.Tab{
			Label:      "Corrected Code",
			Content:    components.RenderCodePane(m.theme, fix.CorrectedCode, "", width),
			CopySource: fix.CorrectedCode,
		},
		components.Tab{
			Label:      "Explanation",
			Content:    components.RenderMarkdown(fix.Explanation, wrap),
			CopySource: fix.Explanation,
		},
	)
	m.tabs.Select(active)
}

// ensureMockupTabs builds the mockup tab group. The preview tab shows the
// combined standalone document; `p` saves a sandboxed host page for a real
// browser.
func (m *Model) ensureMockupTabs(mock *generate.MockupResult, width, wrap int) {
	active := 0
	if m.tabs != nil {
		active = m.tabs.Active()
	}
	doc := generate.BuildPreviewDocument(mock)
	m.tabs = components.NewTabGroup(
		components.Tab{
			Label:      "Preview",
			Content:    components.RenderCodePane(m.theme, doc, "html", width),
			CopySource: doc,
		},
		components.Tab{
			Label:      "HTML",
			Content:    components.RenderCodePane(m.theme, mock.HTML, "html", width),
			CopySource: mock.HTML,
		},
		components.Tab{
			Label:      "CSS",
			Content:    components.RenderCodePane(m.theme, mock.CSS, "css", width),
			CopySource: mock.CSS,
		},
	)
	m.tabs.Select(active)
}

// =============================================================================
// COPY TO CLIPBOARD
// =============================================================================

// copyActive copies the literal source of the visible pane and shows a
// transient confirmation that reverts after two seconds.
func (m Model) copyActive() (tea.Model, tea.Cmd) {
	text := m.copySource()
	if text == "" {
		return m, nil
	}

	if err := clipboard.WriteAll(text); err != nil {
		m.copyStatus = "Copy failed"
	} else {
		m.copyStatus = "Copied!"
	}

	m.copySeq++
	seq := m.copySeq
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return CopyResetMsg{Seq: seq}
	})
}

// copyCodeBlock copies the first fenced code block of a text result, which
// is usually the part worth pasting.
func (m Model) copyCodeBlock() (tea.Model, tea.Cmd) {
	if m.result == nil || m.result.Text == "" {
		return m, nil
	}
	blocks := util.ExtractFencedBlocks(m.result.Text)
	if len(blocks) == 0 {
		return m.copyActive()
	}

	if err := clipboard.WriteAll(blocks[0].Code); err != nil {
		m.copyStatus = "Copy failed"
	} else {
		m.copyStatus = "Copied code block!"
	}

	m.copySeq++
	seq := m.copySeq
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return CopyResetMsg{Seq: seq}
	})
}

// copySource picks the raw text behind the visible pane.
func (m Model) copySource() string {
	if m.tabs != nil {
		return m.tabs.ActiveTab().CopySource
	}
	if m.result != nil && m.result.Text != "" {
		return m.result.Text
	}
	if m.acc.Len() > 0 {
		return m.acc.String()
	}
	f := m.active()
	if f.Informational() {
		return f.Static
	}
	return ""
}

// =============================================================================
// MOCKUP PREVIEW EXPORT
// =============================================================================

// exportPreview writes the mockup preview host page to the devkit directory
// so it can be opened in a browser.
func (m Model) exportPreview() (tea.Model, tea.Cmd) {
	if m.result == nil || m.result.Mockup == nil {
		return m, nil
	}

	path := filepath.Join(config.Dir(), "mockup-preview.html")
	host := generate.BuildPreviewHost(m.result.Mockup)
	if err := os.WriteFile(path, []byte(host), 0o644); err != nil {
		m.copyStatus = fmt.Sprintf("Preview save failed: %v", err)
	} else {
		m.copyStatus = fmt.Sprintf("Preview saved to %s", path)
	}

	m.copySeq++
	seq := m.copySeq
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return CopyResetMsg{Seq: seq}
	})
}
