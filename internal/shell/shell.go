package shell

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const prompt = "fmex> "

type model struct {
	exec *Executor

	lines   []string
	input   string
	history []string
	histPos int

	width  int
	height int
}

// New builds the interactive shell around a command executor.
func New(exec *Executor) *model {
	m := &model{exec: exec, width: 80, height: 24, histPos: -1}
	m.lines = append(m.lines,
		titleStyle.Render("fmex - explorative simulation of the perfusion cultivation"),
		dimStyle.Render(`type "help" for the command list, ctrl+c to leave`),
		"")
	return m
}

// Run starts the terminal program and blocks until the user leaves.
func Run(exec *Executor) error {
	_, err := tea.NewProgram(New(exec)).Run()
	return err
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		return m, tea.Quit
	case "enter":
		line := strings.TrimSpace(m.input)
		m.input = ""
		m.histPos = -1
		if line == "" {
			return m, nil
		}
		if line == "quit" || line == "exit" {
			return m, tea.Quit
		}
		m.history = append(m.history, line)
		m.lines = append(m.lines, promptStyle.Render(prompt)+line)
		m.runCommand(line)
		return m, nil
	case "up":
		if len(m.history) > 0 {
			if m.histPos < 0 {
				m.histPos = len(m.history) - 1
			} else if m.histPos > 0 {
				m.histPos--
			}
			m.input = m.history[m.histPos]
		}
		return m, nil
	case "down":
		if m.histPos >= 0 && m.histPos < len(m.history)-1 {
			m.histPos++
			m.input = m.history[m.histPos]
		} else {
			m.histPos = -1
			m.input = ""
		}
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.input += " "
		}
		return m, nil
	}
}

// runCommand executes one line and folds its output into the scrollback.
// Engine invocations block here until the run returns; the shell is
// deliberately synchronous, one command at a time.
func (m *model) runCommand(line string) {
	var buf strings.Builder
	if err := m.exec.Exec(&buf, line); err != nil {
		m.lines = append(m.lines, errStyle.Render("Error: "+err.Error()))
	}
	out := strings.TrimRight(buf.String(), "\n")
	if out != "" {
		m.lines = append(m.lines, strings.Split(out, "\n")...)
	}
}

func (m *model) View() string {
	visible := m.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if len(m.lines) > visible {
		start = len(m.lines) - visible
	}

	var b strings.Builder
	for _, line := range m.lines[start:] {
		fmt.Fprintln(&b, line)
	}
	fmt.Fprint(&b, promptStyle.Render(prompt), m.input, dimStyle.Render("█"))
	return b.String()
}
