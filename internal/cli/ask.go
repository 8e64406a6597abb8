// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the devkit command line.
//
// This file implements ask mode: run a single feature non-interactively and
// print the result. When stdout is a terminal the response is rendered as
// markdown; when piped, raw text is emitted so the output stays scriptable.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/devkit-tui/internal/feature"
	"github.com/jeranaias/devkit-tui/internal/gemini"
	"github.com/jeranaias/devkit-tui/internal/generate"
)

// Ask runs one generation for cmd and writes the result to stdout.
func Ask(client *gemini.Client, cmd *Command) error {
	f, ok := feature.Get(cmd.Feature)
	if !ok {
		return fmt.Errorf("unknown feature %q", cmd.Feature)
	}

	input := strings.TrimSpace(cmd.Input)
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = strings.TrimSpace(string(data))
	}
	if input == "" {
		return fmt.Errorf("no input provided (pass text or pipe stdin)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompt := f.PromptPrefix + input

	if f.Kind == feature.KindJSON {
		return askStructured(ctx, client, f, prompt)
	}
	return askStreaming(ctx, client, prompt)
}

// askStreaming prints streamed text as it arrives, then re-renders the
// complete response as markdown on a terminal.
func askStreaming(ctx context.Context, client *gemini.Client, prompt string) error {
	chunks, errs := client.GenerateStream(ctx, prompt)

	var acc gemini.StreamAccumulator
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	for chunk := range chunks {
		acc.Add(chunk)
		if !isTTY {
			fmt.Print(chunk)
		}
	}
	if err := <-errs; err != nil {
		return err
	}

	if isTTY {
		displayResponse(acc.String())
	} else {
		fmt.Println()
	}
	return nil
}

// askStructured runs a JSON feature and prints its panes in order.
func askStructured(ctx context.Context, client *gemini.Client, f feature.Config, prompt string) error {
	raw, err := client.Generate(ctx, prompt, f.Schema)
	if err != nil {
		return err
	}
	result, err := generate.Parse(f, raw)
	if err != nil {
		return err
	}

	switch {
	case result.Fix != nil:
		out := fmt.Sprintf("## Analysis\n\n%s\n\n## Corrected Code\n\n```\n%s\n```\n\n## Explanation\n\n%s\n",
			result.Fix.Analysis, result.Fix.CorrectedCode, result.Fix.Explanation)
		displayResponse(out)
	case result.Mockup != nil:
		// Pipeable: the combined document goes straight to stdout.
		fmt.Println(generate.BuildPreviewDocument(result.Mockup))
	default:
		displayResponse(result.Text)
	}
	return nil
}

// displayResponse renders markdown when stdout is a terminal, otherwise
// prints the raw text.
func displayResponse(markdown string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(markdown)
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(markdown)
		return
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
