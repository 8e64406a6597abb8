// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the devkit TUI application model.
//
// This file orchestrates generations. Text features stream over a channel
// pump: each chunk received schedules another read command, so tokens flow
// through Update one message at a time. JSON features run as a single
// blocking command that decodes and shape-checks the response.
package app

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/devkit-tui/internal/feature"
	"github.com/jeranaias/devkit-tui/internal/gemini"
	"github.com/jeranaias/devkit-tui/internal/generate"
)

func newAccumulator() *gemini.StreamAccumulator {
	return &gemini.StreamAccumulator{}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// startGeneration validates preconditions and kicks off a generation for the
// active feature. Empty input, a generation already in flight, a missing API
// key, and informational views all refuse silently.
func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	f := m.active()
	if f.Informational() || !m.configured || m.isLoading || m.fading {
		return m, nil
	}

	userInput := strings.TrimSpace(m.input.Value())
	if userInput == "" {
		return m, nil
	}

	genID := uuid.NewString()
	ctx := m.cancels.begin(genID)
	prompt := f.PromptPrefix + userInput

	m.isLoading = true
	m.genID = genID
	m.acc = newAccumulator()
	m.result = nil
	m.rendered = ""
	m.tabs = nil
	m.errTitle = ""
	m.errMsg = ""
	m.copyStatus = ""
	m.refreshOutput()

	if f.Kind == feature.KindJSON {
		return m, m.structuredCmd(ctx, f, genID, prompt)
	}

	chunks, errs := m.client.GenerateStream(ctx, prompt)
	m.chunks = chunks
	m.errs = errs
	return m, tea.Batch(
		func() tea.Msg { return StreamStartMsg{GenID: genID} },
		waitStream(genID, chunks, errs),
	)
}

// cancelGeneration aborts the in-flight generation and returns the workspace
// to idle. The partial output already shown is kept.
func (m Model) cancelGeneration() (tea.Model, tea.Cmd) {
	if !m.isLoading {
		return m, nil
	}
	m.cancels.stop(m.genID)
	m.isLoading = false
	m.genID = ""
	m.chunks = nil
	m.errs = nil
	return m, nil
}

// =============================================================================
// CHANNEL PUMP
// =============================================================================

// waitStream reads one event from the stream channels and converts it into a
// message. The handler for that message schedules the next read, so exactly
// one read is outstanding at a time.
func waitStream(genID string, chunks <-chan string, errs <-chan error) tea.Cmd {
	return func() tea.Msg {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				if err, ok := <-errs; ok && err != nil {
					return StreamErrorMsg{GenID: genID, Err: err}
				}
				return StreamCompleteMsg{GenID: genID}
			}
			return StreamTokenMsg{GenID: genID, Chunk: chunk}
		case err, ok := <-errs:
			if ok && err != nil {
				return StreamErrorMsg{GenID: genID, Err: err}
			}
			// Error channel closed without an error: drain remaining chunks.
			if chunk, ok := <-chunks; ok {
				return StreamTokenMsg{GenID: genID, Chunk: chunk}
			}
			return StreamCompleteMsg{GenID: genID}
		}
	}
}

// structuredCmd runs a blocking structured generation off the UI goroutine.
func (m Model) structuredCmd(ctx context.Context, f feature.Config, genID, prompt string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		raw, err := client.Generate(ctx, prompt, f.Schema)
		if err != nil {
			return StreamErrorMsg{GenID: genID, Err: err}
		}
		result, err := generate.Parse(f, raw)
		if err != nil {
			return StreamErrorMsg{GenID: genID, Err: err}
		}
		return StructuredResultMsg{GenID: genID, Result: result}
	}
}

// =============================================================================
// GENERATION MESSAGE HANDLERS
// =============================================================================

// stale reports whether a generation message belongs to a superseded
// generation.
func (m Model) stale(genID string) bool {
	return genID != m.genID || m.genID == ""
}

func (m Model) handleStreamStart(msg StreamStartMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.GenID) {
		return m, nil
	}
	return m, nil
}

func (m Model) handleStreamToken(msg StreamTokenMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.GenID) {
		return m, nil
	}
	m.acc.Add(msg.Chunk)
	m.refreshOutput()
	m.output.GotoBottom()
	return m, waitStream(msg.GenID, m.chunks, m.errs)
}

func (m Model) handleStreamComplete(msg StreamCompleteMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.GenID) {
		return m, nil
	}
	m.isLoading = false
	m.genID = ""
	m.chunks = nil
	m.errs = nil
	m.cancels.stop(msg.GenID)

	m.result = &generate.Result{FeatureID: m.active().ID, Text: m.acc.String()}
	m.refreshOutput()
	return m, nil
}

func (m Model) handleStreamError(msg StreamErrorMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.GenID) {
		return m, nil
	}
	m.isLoading = false
	m.genID = ""
	m.chunks = nil
	m.errs = nil
	m.cancels.stop(msg.GenID)

	// User cancellation is not an error state.
	if errors.Is(msg.Err, context.Canceled) {
		return m, nil
	}

	logGenerationError(m.active().ID, msg.Err)
	m.errTitle, m.errMsg = classifyError(msg.Err)
	m.refreshOutput()
	return m, nil
}

func (m Model) handleStructuredResult(msg StructuredResultMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.GenID) {
		return m, nil
	}
	m.isLoading = false
	m.genID = ""
	m.cancels.stop(msg.GenID)

	m.result = msg.Result
	m.focus = focusOutput
	m.input.Blur()
	m.refreshOutput()
	return m, nil
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// classifyError maps a generation failure to a panel title and message.
func classifyError(err error) (title, message string) {
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		return "Configuration Error", err.Error()
	case errors.Is(err, generate.ErrMalformedResult):
		return "Malformed Result", "The model returned output that could not be understood. Try again."
	case errors.Is(err, gemini.ErrRateLimited):
		return "Request Failed", "Rate limited by the API. Wait a moment and try again."
	default:
		return "Request Failed", err.Error()
	}
}
