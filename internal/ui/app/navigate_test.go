// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devkit-tui/internal/config"
	"github.com/jeranaias/devkit-tui/internal/feature"
	"github.com/jeranaias/devkit-tui/internal/gemini"
)

// testModel builds a sized, configured model. The client points at an
// unroutable address so no test traffic ever leaves the process.
func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	client := gemini.NewClient("test-key", "test-model",
		gemini.WithBaseURL("http://127.0.0.1:0"))
	m := New(cfg, client, true)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	m, ok := tm.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", tm)
	}
	return m
}

func TestActivateSameFeatureIsNoop(t *testing.T) {
	m := testModel(t)
	updated, cmd := m.activateIndex(m.activeIdx)
	m = asModel(t, updated)
	if cmd != nil {
		t.Error("activating the current feature should schedule nothing")
	}
	if m.fading {
		t.Error("no fade should start")
	}
}

func TestActivateStartsFade(t *testing.T) {
	m := testModel(t)
	updated, cmd := m.activateIndex(1)
	m = asModel(t, updated)

	if cmd == nil {
		t.Fatal("expected a transition tick command")
	}
	if !m.fading {
		t.Error("fade flag not set")
	}
	if m.pendingIdx != 1 {
		t.Errorf("pendingIdx = %d, want 1", m.pendingIdx)
	}
	if m.activeIdx != 0 {
		t.Error("active feature must not change before the fade completes")
	}
}

func TestTransitionLatestWins(t *testing.T) {
	m := testModel(t)

	updated, _ := m.activateIndex(1)
	m = asModel(t, updated)
	firstSeq := m.transitionSeq

	updated, _ = m.activateIndex(2)
	m = asModel(t, updated)

	// The superseded transition must not complete the swap.
	updated, _ = m.handleTransitionDone(TransitionDoneMsg{Seq: firstSeq})
	m = asModel(t, updated)
	if !m.fading {
		t.Error("stale transition ended the fade")
	}
	if m.activeIdx != 0 {
		t.Errorf("stale transition swapped the view to %d", m.activeIdx)
	}

	updated, _ = m.handleTransitionDone(TransitionDoneMsg{Seq: m.transitionSeq})
	m = asModel(t, updated)
	if m.fading {
		t.Error("current transition should end the fade")
	}
	if m.activeIdx != 2 {
		t.Errorf("activeIdx = %d, want 2", m.activeIdx)
	}
}

func TestTransitionDoneAfterCompletionIgnored(t *testing.T) {
	m := testModel(t)
	updated, _ := m.activateIndex(1)
	m = asModel(t, updated)
	updated, _ = m.handleTransitionDone(TransitionDoneMsg{Seq: m.transitionSeq})
	m = asModel(t, updated)

	// Re-delivering the same message must not re-run the swap.
	updated, _ = m.handleTransitionDone(TransitionDoneMsg{Seq: m.transitionSeq})
	m = asModel(t, updated)
	if m.activeIdx != 1 || m.fading {
		t.Error("replayed transition message changed state")
	}
}

func TestActivateCancelsInFlightGeneration(t *testing.T) {
	m := testModel(t)
	m.isLoading = true
	m.genID = "gen-1"

	updated, _ := m.activateIndex(1)
	m = asModel(t, updated)

	if m.isLoading {
		t.Error("switching features must clear the loading flag")
	}
	if m.genID != "" {
		t.Error("switching features must drop the generation ID")
	}
}

func TestActivateOffsetWraps(t *testing.T) {
	m := testModel(t)
	updated, _ := m.activateOffset(-1)
	m = asModel(t, updated)
	if m.pendingIdx != len(m.features)-1 {
		t.Errorf("pendingIdx = %d, want %d", m.pendingIdx, len(m.features)-1)
	}
}

func TestResetWorkspaceFocusesOutputForInformational(t *testing.T) {
	m := testModel(t)
	aboutIdx := m.featureIndex(feature.IDAbout)
	if aboutIdx < 0 {
		t.Fatal("about feature missing")
	}

	updated, _ := m.activateIndex(aboutIdx)
	m = asModel(t, updated)
	updated, _ = m.handleTransitionDone(TransitionDoneMsg{Seq: m.transitionSeq})
	m = asModel(t, updated)

	if m.focus != focusOutput {
		t.Error("informational views should focus the output pane")
	}
	if !m.active().Informational() {
		t.Error("active feature should be informational")
	}
}

func TestUnconfiguredWorkspaceShowsConfigurationError(t *testing.T) {
	cfg := config.Default()
	client := gemini.NewClient("", "test-model")
	m := New(cfg, client, false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = asModel(t, updated)

	if m.errTitle != "Configuration Error" {
		t.Errorf("errTitle = %q", m.errTitle)
	}

	// The error survives feature switches.
	updated, _ = m.activateIndex(1)
	m = asModel(t, updated)
	updated, _ = m.handleTransitionDone(TransitionDoneMsg{Seq: m.transitionSeq})
	m = asModel(t, updated)
	if m.errTitle != "Configuration Error" {
		t.Error("configuration error must persist across feature switches")
	}
}
