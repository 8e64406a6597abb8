// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the devkit TUI application model.
//
// This file manages cancellation of in-flight generations. Each generation
// owns a context; switching features, submitting again, or pressing escape
// cancels the previous context before anything new starts.
package app

import (
	"context"
	"sync"
)

// cancelManager tracks the cancel function for the current generation.
// A pointer to it lives on the Model so Bubble Tea's value copies share it.
type cancelManager struct {
	mu     sync.Mutex
	genID  string
	cancel context.CancelFunc
}

func newCancelManager() *cancelManager {
	return &cancelManager{}
}

// begin cancels any in-flight generation and registers a new one. Returns
// the context the new generation must use.
func (c *cancelManager) begin(genID string) context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.genID = genID
	c.cancel = cancel
	return ctx
}

// stop cancels the generation with the given ID. A mismatched ID is a stale
// request and is ignored.
func (c *cancelManager) stop(genID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.genID != genID || c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
}

// stopAll cancels whatever is in flight.
func (c *cancelManager) stopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
