// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the devkit TUI application model.
//
// This file implements feature switching. A switch dims the current view,
// waits out the configured fade, then swaps content and resets workspace
// state. Rapid switches are latest-wins: each transition gets a sequence
// number and only the newest one is allowed to complete the swap.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// activateOffset switches to the feature offset positions away in
// navigation order, wrapping around.
func (m Model) activateOffset(offset int) (tea.Model, tea.Cmd) {
	target := m.activeIdx
	if m.fading {
		target = m.pendingIdx
	}
	n := len(m.features)
	return m.activateIndex(((target+offset)%n + n) % n)
}

// activateIndex begins a transition to the feature at idx. Activating the
// feature already shown (with no newer transition pending) is a no-op. Any
// in-flight generation is cancelled immediately so it cannot write into the
// next view.
func (m Model) activateIndex(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.features) {
		return m, nil
	}
	if idx == m.activeIdx && !m.fading {
		return m, nil
	}

	m.cancels.stopAll()
	m.isLoading = false
	m.genID = ""

	m.transitionSeq++
	m.fading = true
	m.pendingIdx = idx

	seq := m.transitionSeq
	delay := time.Duration(m.cfg.UI.TransitionMillis) * time.Millisecond
	return m, tea.Tick(delay, func(time.Time) tea.Msg {
		return TransitionDoneMsg{Seq: seq}
	})
}

// handleTransitionDone completes a fade. Stale transitions are dropped.
func (m Model) handleTransitionDone(msg TransitionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.transitionSeq || !m.fading {
		return m, nil
	}

	m.fading = false
	m.activeIdx = m.pendingIdx
	m.resetWorkspace()
	return m, nil
}

// resetWorkspace clears input, output, and status for the newly active
// feature.
func (m Model) resetWorkspace() {
	f := m.active()

	m.input.Reset()
	m.input.Placeholder = f.Placeholder
	m.result = nil
	m.rendered = ""
	m.tabs = nil
	m.acc = newAccumulator()
	m.copyStatus = ""
	m.errTitle = ""
	m.errMsg = ""
	if !m.configured {
		m.errTitle = "Configuration Error"
		m.errMsg = "API key not configured (set GEMINI_API_KEY or api.key in ~/.devkit/config.toml)"
	}

	if f.Informational() {
		m.focus = focusOutput
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}

	m.refreshOutput()
}

// featureIndex returns the navigation index of a feature ID, or -1.
func (m Model) featureIndex(id string) int {
	for i, f := range m.features {
		if f.ID == id {
			return i
		}
	}
	return -1
}
