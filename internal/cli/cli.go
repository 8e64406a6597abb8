// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the devkit command line: argument parsing, the
// one-shot ask mode, and the usage text.
package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/devkit-tui/internal/feature"
)

// Version is the devkit release version.
const Version = "0.3.0"

// =============================================================================
// COMMANDS
// =============================================================================

// Command is a parsed invocation.
type Command struct {
	// Name is one of "tui", "ask", "version", "help".
	Name string
	// Feature is the feature ID for ask mode.
	Feature string
	// Input is the inline prompt text for ask mode. Empty means read stdin.
	Input string
}

// Parse interprets command-line arguments (without the program name).
// No arguments opens the TUI.
func Parse(args []string) (*Command, error) {
	if len(args) == 0 {
		return &Command{Name: "tui"}, nil
	}

	switch args[0] {
	case "version", "--version", "-v":
		return &Command{Name: "version"}, nil

	case "help", "--help", "-h":
		return &Command{Name: "help"}, nil

	case "ask":
		return parseAsk(args[1:])

	default:
		return nil, fmt.Errorf("unknown command %q (try `devkit help`)", args[0])
	}
}

func parseAsk(args []string) (*Command, error) {
	cmd := &Command{Name: "ask", Feature: feature.IDGenerate}

	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f", "--feature":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a feature ID", args[i])
			}
			i++
			cmd.Feature = args[i]
		default:
			rest = append(rest, args[i])
		}
	}
	cmd.Input = strings.Join(rest, " ")

	f, ok := feature.Get(cmd.Feature)
	if !ok {
		return nil, fmt.Errorf("unknown feature %q (known: %s)",
			cmd.Feature, strings.Join(feature.IDs(), ", "))
	}
	if f.Informational() {
		return nil, fmt.Errorf("feature %q is informational and cannot be asked", cmd.Feature)
	}
	return cmd, nil
}

// Usage returns the help text.
func Usage() string {
	var sb strings.Builder
	sb.WriteString("devkit - a terminal workbench for everyday development tasks\n\n")
	sb.WriteString("Usage:\n")
	sb.WriteString("  devkit                    open the interactive TUI\n")
	sb.WriteString("  devkit ask [-f ID] TEXT   run one feature and print the result\n")
	sb.WriteString("  devkit ask [-f ID] < file pipe input from stdin\n")
	sb.WriteString("  devkit version            print the version\n")
	sb.WriteString("  devkit help               show this help\n\n")
	sb.WriteString("Features:\n")
	for _, f := range feature.Generative() {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", f.ID, f.Description))
	}
	sb.WriteString("\nConfiguration lives in ~/.devkit/config.toml; the API key can also\n")
	sb.WriteString("be provided via the GEMINI_API_KEY environment variable.\n")
	return sb.String()
}
