// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// devkit is a terminal workbench for everyday development tasks backed by a
// generative model: code generation, bug fixing, explanation, documentation,
// test generation, and UI mockups.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devkit-tui/internal/cli"
	"github.com/jeranaias/devkit-tui/internal/config"
	"github.com/jeranaias/devkit-tui/internal/gemini"
	"github.com/jeranaias/devkit-tui/internal/ui/app"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "devkit: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd, err := cli.Parse(args)
	if err != nil {
		return err
	}

	switch cmd.Name {
	case "version":
		fmt.Printf("devkit %s\n", cli.Version)
		return nil

	case "help":
		fmt.Print(cli.Usage())
		return nil
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrMissingAPIKey) {
		return cfgErr
	}
	config.SetGlobal(cfg)
	configured := cfgErr == nil

	client := gemini.NewClient(cfg.API.Key, cfg.API.Model, clientOptions(cfg)...)

	switch cmd.Name {
	case "ask":
		if !configured {
			return config.ErrMissingAPIKey
		}
		return cli.Ask(client, cmd)

	case "tui":
		return runTUI(cfg, client, configured)

	default:
		return fmt.Errorf("unknown command %q", cmd.Name)
	}
}

func clientOptions(cfg *config.Config) []gemini.Option {
	var opts []gemini.Option
	if cfg.API.BaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.API.BaseURL))
	}
	return opts
}

func runTUI(cfg *config.Config, client *gemini.Client, configured bool) error {
	logCloser := config.OpenDebugLog()
	defer logCloser.Close()

	program := tea.NewProgram(
		app.New(cfg, client, configured),
		tea.WithAltScreen(),
	)

	stopWatch := config.Watch(func(updated *config.Config) {
		program.Send(app.ConfigReloadedMsg{Cfg: updated})
	})
	defer stopWatch()

	_, err := program.Run()
	return err
}
