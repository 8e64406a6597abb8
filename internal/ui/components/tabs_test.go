// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	uistyles "github.com/jeranaias/devkit-tui/internal/ui/styles"
)

func threeTabs() *TabGroup {
	return NewTabGroup(
		Tab{Label: "A", Content: "content-a", CopySource: "raw-a"},
		Tab{Label: "B", Content: "content-b", CopySource: "raw-b"},
		Tab{Label: "C", Content: "content-c", CopySource: "raw-c"},
	)
}

func TestTabGroupStartsOnFirstTab(t *testing.T) {
	g := threeTabs()
	if g.Active() != 0 {
		t.Errorf("expected active 0, got %d", g.Active())
	}
	if g.ActiveTab().CopySource != "raw-a" {
		t.Errorf("unexpected copy source %q", g.ActiveTab().CopySource)
	}
}

func TestTabGroupNextWraps(t *testing.T) {
	g := threeTabs()
	g.Next()
	g.Next()
	g.Next()
	if g.Active() != 0 {
		t.Errorf("expected wrap to 0, got %d", g.Active())
	}
}

func TestTabGroupPrevWraps(t *testing.T) {
	g := threeTabs()
	g.Prev()
	if g.Active() != 2 {
		t.Errorf("expected wrap to 2, got %d", g.Active())
	}
}

func TestTabGroupSelectBounds(t *testing.T) {
	g := threeTabs()
	g.Select(2)
	if g.Active() != 2 {
		t.Errorf("expected 2, got %d", g.Active())
	}
	g.Select(99)
	if g.Active() != 2 {
		t.Errorf("out-of-range select must not move, got %d", g.Active())
	}
	g.Select(-1)
	if g.Active() != 2 {
		t.Errorf("negative select must not move, got %d", g.Active())
	}
}

func TestTabGroupViewShowsActivePaneOnly(t *testing.T) {
	g := threeTabs()
	g.Select(1)
	out := g.View(uistyles.NewTheme())
	if !strings.Contains(out, "content-b") {
		t.Error("active pane content missing")
	}
	if strings.Contains(out, "content-a") || strings.Contains(out, "content-c") {
		t.Error("inactive pane content leaked into view")
	}
}

func TestEmptyTabGroup(t *testing.T) {
	g := NewTabGroup()
	g.Next()
	g.Prev()
	if got := g.View(uistyles.NewTheme()); got != "" {
		t.Errorf("empty group should render nothing, got %q", got)
	}
	if g.ActiveTab().CopySource != "" {
		t.Error("empty group should have a zero active tab")
	}
}
