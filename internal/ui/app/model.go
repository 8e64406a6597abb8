// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app implements the devkit TUI application model.
//
// The model follows the Elm architecture: a single immutable-ish Model value,
// an Update function dispatching on messages, and a View renderer. Session
// state is deliberately small: which feature is active and whether a
// generation is in flight. Everything else is derived.
package app

import (
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/devkit-tui/internal/config"
	"github.com/jeranaias/devkit-tui/internal/feature"
	"github.com/jeranaias/devkit-tui/internal/gemini"
	"github.com/jeranaias/devkit-tui/internal/generate"
	"github.com/jeranaias/devkit-tui/internal/ui/components"
	"github.com/jeranaias/devkit-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

type focusArea int

const (
	focusInput focusArea = iota
	focusOutput
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the complete TUI state.
type Model struct {
	theme  *styles.Theme
	cfg    *config.Config
	client *gemini.Client

	// configured is false when no API key was found. The workspace is
	// disabled and a configuration error is shown instead.
	configured bool

	features  []feature.Config
	activeIdx int
	focus     focusArea

	// View transition state. fading is true while the old view dims;
	// transitionSeq identifies the latest transition so a superseded fade
	// cannot swap the view.
	fading        bool
	pendingIdx    int
	transitionSeq int

	input  textarea.Model
	output viewport.Model
	spin   spinner.Model

	// Generation state. genID identifies the one generation allowed to
	// mutate the view; chunks/errs feed the channel pump while streaming.
	isLoading bool
	genID     string
	acc       *gemini.StreamAccumulator
	chunks    <-chan string
	errs      <-chan error

	result   *generate.Result
	rendered string
	tabs     *components.TabGroup

	errTitle string
	errMsg   string

	copyStatus string
	copySeq    int

	cancels *cancelManager

	width  int
	height int
	ready  bool
}

// New builds the initial model. configured reflects whether an API key was
// found at startup; when false, every generative feature is disabled.
func New(cfg *config.Config, client *gemini.Client, configured bool) Model {
	theme := styles.NewTheme()

	input := textarea.New()
	input.Placeholder = feature.Default().Placeholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spin.Style.Foreground(styles.Amber)

	m := Model{
		theme:      theme,
		cfg:        cfg,
		client:     client,
		configured: configured,
		features:   feature.All(),
		input:      input,
		spin:       spin,
		acc:        &gemini.StreamAccumulator{},
		cancels:    newCancelManager(),
	}

	if !configured {
		m.errTitle = "Configuration Error"
		m.errMsg = config.ErrMissingAPIKey.Error()
	}

	return m
}

// Init starts the spinner ticker.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// active returns the currently displayed feature.
func (m Model) active() feature.Config {
	return m.features[m.activeIdx]
}

// =============================================================================
// UPDATE
// =============================================================================

// Update is the single message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case TransitionDoneMsg:
		return m.handleTransitionDone(msg)

	case StreamStartMsg:
		return m.handleStreamStart(msg)

	case StreamTokenMsg:
		return m.handleStreamToken(msg)

	case StreamCompleteMsg:
		return m.handleStreamComplete(msg)

	case StreamErrorMsg:
		return m.handleStreamError(msg)

	case StructuredResultMsg:
		return m.handleStructuredResult(msg)

	case CopyResetMsg:
		if msg.Seq == m.copySeq {
			m.copyStatus = ""
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Cfg != nil {
			m.cfg = msg.Cfg
		}
		return m, nil
	}

	return m.updateComponents(msg)
}

// handleResize propagates new terminal dimensions to every component.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	inputHeight := 5
	chromeHeight := 10
	m.input.SetWidth(msg.Width - 4)
	m.input.SetHeight(inputHeight)

	outHeight := msg.Height - inputHeight - chromeHeight
	if outHeight < 3 {
		outHeight = 3
	}
	if !m.ready {
		m.output = viewport.New(msg.Width-4, outHeight)
		m.ready = true
	} else {
		m.output.Width = msg.Width - 4
		m.output.Height = outHeight
	}

	m.refreshOutput()
	return m
}

// handleKey routes key presses by focus area.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancels.stopAll()
		return m, tea.Quit

	case "ctrl+n":
		return m.activateOffset(1)

	case "ctrl+p":
		return m.activateOffset(-1)

	case "ctrl+s":
		return m.startGeneration()

	case "esc":
		if m.isLoading {
			return m.cancelGeneration()
		}
		if m.focus == focusOutput {
			m.focus = focusInput
			m.input.Focus()
			return m, nil
		}
		return m, nil

	case "tab":
		if m.focus == focusInput && !m.active().Informational() {
			m.focus = focusOutput
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	if m.focus == focusOutput || m.active().Informational() {
		return m.handleOutputKey(msg)
	}

	return m.updateComponents(msg)
}

// handleOutputKey handles keys while the output pane has focus.
func (m Model) handleOutputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3", "4", "5", "6", "7", "8":
		return m.activateIndex(int(msg.String()[0] - '1'))

	case "q":
		m.cancels.stopAll()
		return m, tea.Quit

	case "c":
		return m.copyActive()

	case "b":
		return m.copyCodeBlock()

	case "p":
		return m.exportPreview()

	case "]", "l", "right":
		if m.tabs != nil {
			m.tabs.Next()
			m.refreshOutput()
		}
		return m, nil

	case "[", "h", "left":
		if m.tabs != nil {
			m.tabs.Prev()
			m.refreshOutput()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

// updateComponents forwards messages to the focused bubbles.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.output, cmd = m.output.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// logGenerationError records a failed generation in the debug log with its
// fault category, so transport failures and malformed model output can be
// told apart after the fact.
func logGenerationError(featureID string, err error) {
	log.Printf("generation failed feature=%s err=%v", featureID, err)
}
