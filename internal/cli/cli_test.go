// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/jeranaias/devkit-tui/internal/feature"
)

func TestParseNoArgsOpensTUI(t *testing.T) {
	cmd, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "tui" {
		t.Errorf("Name = %q, want tui", cmd.Name)
	}
}

func TestParseVersionAliases(t *testing.T) {
	for _, args := range [][]string{{"version"}, {"--version"}, {"-v"}} {
		cmd, err := Parse(args)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if cmd.Name != "version" {
			t.Errorf("%v: Name = %q", args, cmd.Name)
		}
	}
}

func TestParseAskDefaultsToGenerate(t *testing.T) {
	cmd, err := Parse([]string{"ask", "write", "a", "parser"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Feature != feature.IDGenerate {
		t.Errorf("Feature = %q, want %q", cmd.Feature, feature.IDGenerate)
	}
	if cmd.Input != "write a parser" {
		t.Errorf("Input = %q", cmd.Input)
	}
}

func TestParseAskWithFeatureFlag(t *testing.T) {
	cmd, err := Parse([]string{"ask", "-f", "explain", "this", "code"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Feature != feature.IDExplain {
		t.Errorf("Feature = %q", cmd.Feature)
	}
	if cmd.Input != "this code" {
		t.Errorf("Input = %q", cmd.Input)
	}
}

func TestParseAskUnknownFeature(t *testing.T) {
	if _, err := Parse([]string{"ask", "-f", "nope", "x"}); err == nil {
		t.Error("expected error for unknown feature")
	}
}

func TestParseAskInformationalFeatureRejected(t *testing.T) {
	if _, err := Parse([]string{"ask", "-f", feature.IDAbout, "x"}); err == nil {
		t.Error("expected error for informational feature")
	}
}

func TestParseAskMissingFlagValue(t *testing.T) {
	if _, err := Parse([]string{"ask", "-f"}); err == nil {
		t.Error("expected error for dangling -f")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	if _, err := Parse([]string{"frobnicate"}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestUsageListsGenerativeFeatures(t *testing.T) {
	usage := Usage()
	for _, f := range feature.Generative() {
		if !strings.Contains(usage, f.ID) {
			t.Errorf("usage missing feature %q", f.ID)
		}
	}
	if strings.Contains(usage, feature.IDAbout) {
		t.Error("usage should not list informational views as askable")
	}
}
