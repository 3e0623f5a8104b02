package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/rulex/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// inputMode selects whether a line is an expression or a command.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// Option configures [Run].
type Option func(*config)

type config struct {
	in     io.Reader
	out    io.Writer
	logger log.Logger
}

// WithIO sets the terminal input and output.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *config) { c.in, c.out = in, out }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

type model struct {
	ctx        context.Context
	input      textinput.Model
	session    *session
	history    *History
	historyIdx int
	matches    fuzzy.Matches
	selected   int
	mode       inputMode
	quitting   bool
}

// Run starts an interactive calculator. History is kept in cacheDir unless
// it is empty.
func Run(ctx context.Context, cacheDir string, opts ...Option) error {
	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	path := ""
	if cacheDir != "" {
		path = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		cfg.logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	cfg.logger.TraceContext(ctx, "repl start",
		slog.String("history", path),
		slog.Int("entries", history.Len()),
	)

	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.in != nil {
		popts = append(popts, tea.WithInput(cfg.in))
	}

	if cfg.out != nil {
		popts = append(popts, tea.WithOutput(cfg.out))
	}

	_, err := tea.NewProgram(newModel(ctx, history, cfg.logger), popts...).Run()

	return err
}

func newModel(ctx context.Context, history *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.CharLimit = 1024
	ti.Width = 78
	ti.Focus()

	return model{
		ctx:        ctx,
		input:      ti,
		session:    &session{logger: logger},
		history:    history,
		historyIdx: history.Len(),
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(evalPrompt)-2, 10)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.refresh()

		return m, nil

	case tea.KeyEsc:
		m.setMode(1 - m.mode)

		return m, nil

	case tea.KeyUp, tea.KeyDown:
		m.recall(msg.Type == tea.KeyDown)

		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if m.mode == modeCtrl && len(m.matches) > 0 {
			if msg.Type == tea.KeyTab {
				m.selected = (m.selected + 1) % len(m.matches)
			} else {
				m.selected = (m.selected + len(m.matches) - 1) % len(m.matches)
			}

			m.input.SetValue(m.matches[m.selected].Str)
			m.input.CursorEnd()
		}

		return m, nil

	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

func (m *model) setMode(mode inputMode) {
	m.mode = mode
	m.selected = 0

	if mode == modeCtrl {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	} else {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	}

	m.refresh()
}

// refresh recomputes the command candidates for the current input.
func (m *model) refresh() {
	if m.mode != modeCtrl {
		m.matches = nil

		return
	}

	m.matches = complete(m.input.Value())
	m.selected = min(m.selected, max(len(m.matches)-1, 0))
}

// recall moves through the history of the current mode.
func (m *model) recall(forward bool) {
	i := m.history.Search(m.historyIdx, m.mode, forward)
	if i < 0 {
		if forward {
			m.historyIdx = m.history.Len()
			m.input.SetValue("")
		}

		return
	}

	e, err := m.history.At(i)
	if err != nil {
		return
	}

	m.historyIdx = i
	m.input.SetValue(e.Line)
	m.input.CursorEnd()
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	if m.mode == modeCtrl && len(m.matches) > 0 && line != m.matches[m.selected].Str {
		line = m.matches[m.selected].Str
	}

	m.input.SetValue("")

	if line == "" {
		return m, nil
	}

	if err := m.history.Add(line, m.mode); err != nil {
		m.session.logger.WarnContext(m.ctx, "history not saved", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	prompt, promptText := promptStyle, evalPrompt
	if m.mode == modeCtrl {
		prompt, promptText = ctrlPromptStyle, ctrlPrompt
	}

	echo := tea.Println(prompt.Render(promptText) + inputStyle.Render(line))

	if m.mode == modeCtrl {
		out, act, err := m.session.control(line)
		m.setMode(modeEval)

		switch {
		case err != nil:
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		case act == actionQuit:
			m.quitting = true

			return m, tea.Sequence(echo, tea.Quit)
		case act == actionClear:
			return m, tea.ClearScreen
		}

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(out)))
	}

	out, err := m.session.eval(m.ctx, line)

	cmds := []tea.Cmd{echo}
	for _, s := range out {
		cmds = append(cmds, tea.Println(resultStyle.Render(s)))
	}

	if err != nil {
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(cmds...)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteByte('\n')

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())))

	case m.mode == modeCtrl:
		b.WriteString(renderCandidates(m.matches, m.selected))

	case m.input.Value() == "":
		b.WriteString(hintStyle.Render("Type an expression or press Esc for commands"))
	}

	b.WriteByte('\n')

	return b.String()
}
