// ============================================================================
// fnc - front end for the fn expression language
// ============================================================================
//
// Package:     repl
// Description: Main Bubbletea model for the fnc REPL
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/fnc/foundation/lang"
	mdwast "github.com/msto63/fnc/foundation/lang/ast"
	"github.com/msto63/fnc/internal/store"
	"github.com/msto63/fnc/pkg/core/version"
)

// SourceName names every line parsed by the REPL
const SourceName = "repl"

// Config holds REPL configuration
type Config struct {
	Prompt      string
	HistorySize int
	Mode        Mode
	Engine      *lang.Engine
	History     *store.Store // optional, records every parsed line
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Prompt:      "fn> ",
		HistorySize: 200,
		Mode:        ModeDump,
	}
}

// Model is the main Bubbletea model for the REPL
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Transcript
	entries []Entry
	parsed  int
	faulty  int

	// Input history
	lines      []string
	historyPos int

	// Configuration
	prompt      string
	historySize int
	mode        Mode
	engine      *lang.Engine
	history     *store.Store
}

// New creates a new REPL model
func New(cfg Config) Model {
	defaults := DefaultConfig()
	if cfg.Prompt == "" {
		cfg.Prompt = defaults.Prompt
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaults.HistorySize
	}
	if cfg.Engine == nil {
		cfg.Engine = lang.New(lang.Options{})
	}

	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(cfg.Prompt)
	ti.Placeholder = "Ausdruck, Definition oder :help"
	ti.CharLimit = cfg.Engine.MaxInputLength()
	ti.Focus()

	return Model{
		input:       ti,
		prompt:      cfg.Prompt,
		historySize: cfg.HistorySize,
		mode:        cfg.Mode,
		engine:      cfg.Engine,
		history:     cfg.History,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()

		case tea.KeyUp:
			m.recall(-1)
			return m, nil

		case tea.KeyDown:
			m.recall(1)
			return m, nil

		case tea.KeyCtrlT:
			m.mode = (m.mode + 1) % (ModeTokens + 1)
			return m, nil

		case tea.KeyCtrlL:
			m.entries = nil
			m.updateViewportContent()
			return m, nil

		case tea.KeyPgUp:
			m.viewport.ViewUp()
			return m, nil

		case tea.KeyPgDown:
			m.viewport.ViewDown()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 5 // Input box + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8 - lipgloss.Width(m.input.Prompt)
		m.updateViewportContent()

	case parsedMsg:
		m.entries = append(m.entries, msg.entry)
		m.parsed++
		if len(msg.entry.Faults) > 0 {
			m.faulty++
		}
		m.updateViewportContent()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles the current input line
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.lines = append(m.lines, line)
	if len(m.lines) > m.historySize {
		m.lines = m.lines[len(m.lines)-m.historySize:]
	}
	m.historyPos = len(m.lines)

	if strings.HasPrefix(line, ":") {
		return m.command(line)
	}

	return m, m.parseCmd(line)
}

// command handles REPL commands starting with ':'
func (m Model) command(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return m, nil
	}

	note := ""
	switch fields[0] {
	case "q", "quit", "exit":
		return m, tea.Quit

	case "clear":
		m.entries = nil
		m.updateViewportContent()
		return m, nil

	case "mode":
		if len(fields) < 2 {
			note = fmt.Sprintf("Modus: %s", m.mode)
			break
		}
		mode, ok := ParseMode(fields[1])
		if !ok {
			note = fmt.Sprintf("Unbekannter Modus: %s (dump, infix, tokens)", fields[1])
			break
		}
		m.mode = mode
		note = fmt.Sprintf("Modus: %s", m.mode)

	case "help":
		note = helpText

	default:
		note = fmt.Sprintf("Unbekannter Befehl: %s (siehe :help)", fields[0])
	}

	m.entries = append(m.entries, Entry{Input: line, Note: note})
	m.updateViewportContent()
	return m, nil
}

const helpText = `:mode dump|infix|tokens  Ausgabeformat waehlen
:clear                   Verlauf leeren
:quit                    Beenden`

// parseCmd parses line off the update loop and records it when a history
// store is configured
func (m Model) parseCmd(line string) tea.Cmd {
	engine := m.engine
	history := m.history
	mode := m.mode

	return func() tea.Msg {
		entry, result := Evaluate(engine, line, mode)
		if history != nil && result != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := history.Record(ctx, result, line); err != nil {
				entry.Note = fmt.Sprintf("Nicht gespeichert: %v", err)
			}
		}
		return parsedMsg{entry: entry}
	}
}

// Evaluate runs one line through the engine and renders it for mode. The
// engine result is nil in token mode and when the input was rejected.
func Evaluate(engine *lang.Engine, line string, mode Mode) (Entry, *lang.Result) {
	start := time.Now()
	entry := Entry{Input: line}

	if mode == ModeTokens {
		tokens, err := engine.Tokenize(line)
		entry.Duration = time.Since(start)
		if err != nil {
			entry.Faults = []lang.FaultInfo{lang.Describe(err)}
			return entry, nil
		}
		parts := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			parts = append(parts, tok.String())
		}
		entry.Output = strings.Join(parts, " ")
		return entry, nil
	}

	result, err := engine.Parse(SourceName, line)
	if err != nil {
		entry.Duration = time.Since(start)
		entry.Faults = []lang.FaultInfo{lang.Describe(err)}
		return entry, nil
	}

	entry.Duration = result.Duration
	entry.Faults = result.FaultInfos()
	if result.Program != nil {
		if mode == ModeInfix {
			entry.Output = result.Program.String()
		} else {
			entry.Output = strings.TrimSuffix(mdwast.Dump(result.Program), "\n")
		}
	}
	return entry, result
}

// recall moves through the input history; delta -1 is older
func (m *Model) recall(delta int) {
	if len(m.lines) == 0 {
		return
	}
	pos := m.historyPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.lines) {
		m.historyPos = len(m.lines)
		m.input.SetValue("")
		return
	}
	m.historyPos = pos
	m.input.SetValue(m.lines[pos])
	m.input.CursorEnd()
}

// updateViewportContent re-renders the transcript
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders all entries
func (m Model) renderTranscript() string {
	if len(m.entries) == 0 {
		return HelpDescStyle.Render("Noch keine Eingaben. :help zeigt die Befehle.")
	}

	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(InputEchoStyle.Render(m.prompt + e.Input))
		b.WriteString("\n")
		if e.Output != "" {
			b.WriteString(OutputStyle.Render(e.Output))
			b.WriteString("\n")
		}
		for _, f := range e.Faults {
			b.WriteString(RenderFault(f))
			b.WriteString("\n")
		}
		if e.Note != "" {
			b.WriteString(HelpDescStyle.Render(e.Note))
			b.WriteString("\n")
		}
		if !strings.HasPrefix(e.Input, ":") {
			b.WriteString(RenderSummary(len(e.Faults)))
			b.WriteString(" ")
			b.WriteString(TimingStyle.Render(e.Duration.Round(time.Microsecond).String()))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade REPL..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(FocusedInputStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the title panel
func (m Model) renderHeader() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		strings.Repeat(" ", 3),
		SubHeaderStyle.Render("Lexer und Pratt-Parser fuer fn"),
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderStatusBar renders parse counters, the display mode and the version
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("Eingaben: %d  Fehlerhaft: %d", m.parsed, m.faulty)
	if m.history != nil {
		left += "  " + OKStyle.Render("Verlauf aktiv")
	}
	right := ModeStyle.Render("Modus: "+m.mode.String()) + "  " + HelpDescStyle.Render("v"+version.REPL)

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if padding < 1 {
		padding = 1
	}
	return StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

// renderHelpBar renders the keyboard hints
func (m Model) renderHelpBar() string {
	hints := []string{
		RenderKeyHint("Enter", "Parsen"),
		RenderKeyHint("Up/Down", "Verlauf"),
		RenderKeyHint("Ctrl+T", "Modus"),
		RenderKeyHint("Ctrl+L", "Leeren"),
		RenderKeyHint("PgUp/PgDn", "Scrollen"),
		RenderKeyHint("Esc", "Beenden"),
	}
	return strings.Join(hints, "  ")
}

// Entries returns a copy of the transcript
func (m Model) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Mode returns the current display mode
func (m Model) Mode() Mode {
	return m.mode
}

// Run starts the REPL
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
