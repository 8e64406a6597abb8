// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the devkit TUI application model.
//
// This file defines the Bubble Tea message taxonomy. Every message produced
// by a generation carries the generation ID it belongs to; Update compares it
// against the model's current ID and drops anything stale, so a cancelled or
// superseded generation can never touch the view.
package app

import (
	"github.com/jeranaias/devkit-tui/internal/config"
	"github.com/jeranaias/devkit-tui/internal/generate"
)

// =============================================================================
// GENERATION MESSAGES
// =============================================================================

// StreamStartMsg announces that a streaming generation has opened.
type StreamStartMsg struct {
	GenID string
}

// StreamTokenMsg carries one streamed text chunk.
type StreamTokenMsg struct {
	GenID string
	Chunk string
}

// StreamCompleteMsg announces that a streaming generation finished cleanly.
type StreamCompleteMsg struct {
	GenID string
}

// StreamErrorMsg announces that a generation failed.
type StreamErrorMsg struct {
	GenID string
	Err   error
}

// StructuredResultMsg delivers a decoded structured generation.
type StructuredResultMsg struct {
	GenID  string
	Result *generate.Result
}

// =============================================================================
// VIEW TRANSITION MESSAGES
// =============================================================================

// TransitionDoneMsg fires when a view fade completes. Seq identifies the
// transition; a newer transition supersedes it.
type TransitionDoneMsg struct {
	Seq int
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// CopyResetMsg clears the transient "Copied!" confirmation. Seq identifies
// the copy action; a newer copy restarts the timer.
type CopyResetMsg struct {
	Seq int
}

// ConfigReloadedMsg delivers a freshly reloaded configuration.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}
