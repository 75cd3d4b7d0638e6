package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// modeColors holds the badge background of each stage.
var modeColors = map[mode]lipgloss.Color{
	modeTokens: lipgloss.Color("#8B5CF6"),
	modeTree:   lipgloss.Color("#0EA5E9"),
	modeEval:   lipgloss.Color("#10B981"),
}

var (
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func badge(m mode) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#111827")).
		Background(modeColors[m]).
		Bold(true).
		Render(fmt.Sprintf(" %-6s", m))
}

type historyEntry struct {
	mode   mode
	input  string
	output string
	isErr  bool
}

type replKeys struct {
	Prev     key.Binding
	Next     key.Binding
	Submit   key.Binding
	Mode     key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
	commands []key.Binding
}

func (k replKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Help, k.Quit}
}

func (k replKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Prev, k.Next, k.Mode},
		{k.Clear, k.Help, k.Quit},
		k.commands,
	}
}

var keys = replKeys{
	Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Next:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Mode:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tokens → tree → eval")),
	Clear:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Help:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	// Colon commands are typed on the input line. No keystroke matches
	// these bindings; they exist so the help view lists the commands.
	commands: []key.Binding{
		key.NewBinding(key.WithKeys(":mode"), key.WithHelp(":mode [name]", "show or set mode")),
		key.NewBinding(key.WithKeys(":clear"), key.WithHelp(":clear", "clear transcript")),
		key.NewBinding(key.WithKeys(":help"), key.WithHelp(":help", "toggle help")),
		key.NewBinding(key.WithKeys(":quit"), key.WithHelp(":quit, exit", "leave")),
	},
}

type replModel struct {
	textInput  textinput.Model
	help       help.Model
	env        *runEnv
	mode       mode
	history    []historyEntry
	cmdHistory []string
	historyIdx int
	width      int
	height     int
	showHelp   bool
	quitting   bool
	ready      bool
}

func newREPLModel(env *runEnv, m mode) replModel {
	ti := textinput.New()
	ti.Placeholder = "2 * (3 + 4)"
	ti.Prompt = " "
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return replModel{
		textInput:  ti,
		help:       help.New(),
		env:        env,
		mode:       m,
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textInput.Width = max(10, msg.Width-lipgloss.Width(badge(m.mode))-2)
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, keys.Mode):
			m.mode = m.mode.next()
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, keys.Next):
			m.recall(1)
			return m, nil
		case key.Matches(msg, keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// recall moves through earlier inputs. Stepping past the newest entry
// clears the input line.
func (m *replModel) recall(step int) {
	if len(m.cmdHistory) == 0 {
		return
	}
	switch {
	case m.historyIdx == -1 && step < 0:
		m.historyIdx = len(m.cmdHistory) - 1
	case m.historyIdx == -1:
		return
	default:
		m.historyIdx += step
	}
	if m.historyIdx < 0 {
		m.historyIdx = 0
	}
	if m.historyIdx >= len(m.cmdHistory) {
		m.historyIdx = -1
		m.textInput.SetValue("")
		return
	}
	m.textInput.SetValue(m.cmdHistory[m.historyIdx])
	m.textInput.CursorEnd()
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	m.textInput.SetValue("")
	m.historyIdx = -1
	switch {
	case input == "":
		return m, nil
	case isExitCommand(input):
		m.quitting = true
		return m, tea.Quit
	case strings.HasPrefix(input, ":"):
		return m.handleCommand(input)
	}

	output, isErr := m.evaluate(input)
	m.record(input, output, isErr)
	m.cmdHistory = append(m.cmdHistory, input)
	return m, nil
}

func (m *replModel) record(input, output string, isErr bool) {
	m.history = append(m.history, historyEntry{mode: m.mode, input: input, output: output, isErr: isErr})
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	switch parts[0] {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":mode", ":m":
		if len(parts) < 2 {
			m.record(input, fmt.Sprintf("Mode: %s (%s)", m.mode, m.mode.description()), false)
			break
		}
		next, ok := parseMode(parts[1])
		if !ok {
			m.record(input, fmt.Sprintf("Unknown mode: %s", parts[1]), true)
			break
		}
		m.mode = next
		m.record(input, fmt.Sprintf("Mode set to %s", next), false)
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.record(input, fmt.Sprintf("Unknown command: %s", parts[0]), true)
	}
	return m, nil
}

func (m replModel) evaluate(input string) (string, bool) {
	output, err := runMode(m.env.engine, m.mode, input)
	m.env.logResult(m.mode, input, err)
	if err != nil {
		return err.Error(), true
	}
	if output == "" {
		return "(no tokens)", false
	}
	return output, false
}

func (m replModel) View() string {
	if !m.ready {
		return ""
	}
	if m.quitting {
		return shellGoodbye + "\n"
	}

	m.help.ShowAll = m.showHelp
	footer := m.help.View(keys)
	prompt := badge(m.mode) + m.textInput.View()

	room := m.height - lipgloss.Height(footer) - 2
	transcript := m.transcriptLines()
	if len(transcript) > room {
		transcript = transcript[len(transcript)-max(0, room):]
	}

	var b strings.Builder
	for _, line := range transcript {
		b.WriteString(line + "\n")
	}
	b.WriteString(prompt + "\n\n")
	b.WriteString(footer)
	return b.String()
}

// transcriptLines renders every entry as its input line followed by the
// indented output.
func (m replModel) transcriptLines() []string {
	var lines []string
	for _, entry := range m.history {
		lines = append(lines, badge(entry.mode)+" "+entry.input)
		style := resultStyle
		if entry.isErr {
			style = errorStyle
		}
		for _, out := range strings.Split(entry.output, "\n") {
			lines = append(lines, mutedStyle.Render("  │ ")+style.Render(out))
		}
	}
	return lines
}

func replCommand(args []string) error {
	fs, opts := newFlagSet("repl")
	modeName := fs.String("mode", "eval", "initial stage: tokens, tree or eval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	m, ok := parseMode(*modeName)
	if !ok {
		return fmt.Errorf("arith repl: unknown mode %q", *modeName)
	}
	// The alternate screen owns the terminal, so stderr logging is discarded
	// unless a log file was requested.
	env, err := opts.setup(io.Discard)
	if err != nil {
		return err
	}
	defer env.Close()

	return runREPL(env, m)
}

func runREPL(env *runEnv, m mode) error {
	p := tea.NewProgram(newREPLModel(env, m), tea.WithAltScreen(), tea.WithOutput(os.Stdout))
	_, err := p.Run()
	return err
}
