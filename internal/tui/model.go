package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alednik/leadscout/internal/agent"
	"github.com/alednik/leadscout/internal/report"
	"github.com/alednik/leadscout/internal/session"
)

// ViewState represents the current view state of the TUI
type ViewState int

const (
	// ViewInput is the company entry view
	ViewInput ViewState = iota
	// ViewRunning is the view while a prospect search is in flight
	ViewRunning
	// ViewResult is the view showing the prospect list
	ViewResult
)

// Runner executes one prospect search. It is satisfied by
// *agent.Pipeline.
type Runner interface {
	Run(ctx context.Context, company string) (string, error)
}

type runDoneMsg struct {
	company string
	content string
}

type runFailedMsg struct {
	err error
}

type progressMsg agent.ProgressEvent

type savedMsg struct {
	path string
	err  error
}

// Model is the main TUI model following the Bubble Tea architecture
type Model struct {
	state ViewState

	input   textinput.Model
	spinner spinner.Model

	runner  Runner
	session *session.Session

	// Events channel fed by the pipeline's progress hook.
	events chan agent.ProgressEvent

	// Last searching-event detail, shown under the spinner.
	activity string

	// Parsed from the raw result for display; the raw markdown
	// stays the source of truth for saving.
	prospects []report.Prospect

	statusLine string
	err        error

	width    int
	height   int
	quitting bool
}

type keyMap struct {
	Enter key.Binding
	Clear key.Binding
	Save  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "new search"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates the TUI model. Events must be the same channel
// the runner's progress hook writes to.
func NewModel(runner Runner, events chan agent.ProgressEvent) Model {
	input := textinput.New()
	input.Placeholder = "Tesla"
	input.Focus()
	input.CharLimit = 128
	input.Width = 40
	input.Prompt = "🏢 "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = progressStyle

	return Model{
		state:   ViewInput,
		input:   input,
		spinner: sp,
		runner:  runner,
		session: session.New(),
		events:  events,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case ViewInput:
			return m.handleInputView(msg)
		case ViewResult:
			return m.handleResultView(msg)
		case ViewRunning:
			if key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			// Other input is ignored while running.
			return m, nil
		}

	case spinner.TickMsg:
		if m.state == ViewRunning {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case progressMsg:
		if agent.ProgressEvent(msg).Type == agent.ProgressEventSearching {
			m.activity = agent.ProgressEvent(msg).Detail
		}
		cmds = append(cmds, m.waitForEvent())

	case runDoneMsg:
		m.session.Complete(msg.content)
		m.prospects = report.ParseProspects(msg.content)
		m.state = ViewResult
		m.statusLine = ""
		m.err = nil
		return m, nil

	case runFailedMsg:
		m.session.Fail(msg.err)
		m.err = msg.err
		// Keep showing the previous result if there is one.
		if _, result := m.session.Result(); result != "" {
			m.state = ViewResult
		} else {
			m.state = ViewInput
			m.input.Focus()
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.statusLine = errorStyle.Render("save failed: " + msg.err.Error())
		} else {
			m.statusLine = successStyle.Render("saved to " + msg.path)
		}
		return m, nil
	}

	if m.state == ViewInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleInputView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Enter):
		company := strings.TrimSpace(m.input.Value())
		if err := m.session.Submit(company); err != nil {
			m.err = err
			return m, nil
		}
		m.state = ViewRunning
		m.activity = ""
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, m.startRun(company), m.waitForEvent())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResultView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Clear):
		m.session.Clear()
		m.prospects = nil
		m.statusLine = ""
		m.err = nil
		m.state = ViewInput
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Save):
		company, result := m.session.Result()
		if result == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			path, err := report.Save(".", company, result)
			return savedMsg{path: path, err: err}
		}
	}

	return m, nil
}

// startRun executes the pipeline off the UI goroutine.
func (m Model) startRun(company string) tea.Cmd {
	return func() tea.Msg {
		content, err := m.runner.Run(context.Background(), company)
		if err != nil {
			return runFailedMsg{err: err}
		}
		return runDoneMsg{company: company, content: content}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return progressMsg(<-m.events)
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("LeadScout"))
	sb.WriteString("\n")

	switch m.state {
	case ViewInput:
		sb.WriteString(subtitleStyle.Render("Find sales prospects at any company"))
		sb.WriteString("\n\n")
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		if m.err != nil {
			sb.WriteString(errorStyle.Render(m.err.Error()))
			sb.WriteString("\n")
		}
		sb.WriteString(helpStyle.Render("enter search · ctrl+c quit"))

	case ViewRunning:
		sb.WriteString(fmt.Sprintf("%s Researching %s...\n", m.spinner.View(), m.session.Company()))
		if m.activity != "" {
			sb.WriteString(subtitleStyle.Render("searching: " + m.activity))
			sb.WriteString("\n")
		}

	case ViewResult:
		company, result := m.session.Result()
		sb.WriteString(successStyle.Render(fmt.Sprintf("Prospects at %s", company)))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderProspects(result))
		sb.WriteString("\n")
		if m.err != nil {
			sb.WriteString(errorStyle.Render("last search failed: " + m.err.Error()))
			sb.WriteString("\n")
		}
		if m.statusLine != "" {
			sb.WriteString(m.statusLine)
			sb.WriteString("\n")
		}
		sb.WriteString(helpStyle.Render("s save · c new search · q quit"))
	}

	return sb.String()
}

// renderProspects shows parsed rows when the table parsed, raw
// markdown otherwise.
func (m Model) renderProspects(raw string) string {
	if len(m.prospects) == 0 {
		return boxStyle.Render(raw)
	}

	var sb strings.Builder
	for _, p := range m.prospects {
		sb.WriteString(prospectNameStyle.Render(p.Name))
		sb.WriteString("\n")
		sb.WriteString(prospectDetailStyle.Render(fmt.Sprintf("  %s · %s", p.JobTitle, p.Department)))
		sb.WriteString("\n")
		sb.WriteString(prospectDetailStyle.Render("  " + p.ProfileURL))
		sb.WriteString("\n\n")
	}
	return boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
