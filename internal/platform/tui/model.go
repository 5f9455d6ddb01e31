package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/menu"
	"github.com/vovakirdan/led-arcade/internal/platform/input"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// FrameMsg carries a frame written by the game loop.
type FrameMsg core.Frame

// doneMsg reports that the program stopped.
type doneMsg struct{ err error }

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Options tunes a Model.
type Options struct {
	// Renderer styles the output; nil uses the default lipgloss renderer.
	Renderer *lipgloss.Renderer
	// ScreenshotDir receives ctrl+s dumps. Empty means ~/.arcade/screenshots.
	ScreenshotDir string
	// Clipboard receives ctrl+y dumps. Nil means the system clipboard.
	Clipboard func(string) error
}

// Model is the Bubble Tea model for one arcade cabinet. The menu or a single
// game runs on its own goroutine; the model forwards keys to the controller and
// draws whatever frame arrives last.
type Model struct {
	ctx  context.Context
	env  registry.Env
	prog menu.Program
	opts Options

	session  *input.Session
	renderer *Renderer
	keys     KeyMap
	help     help.Model

	frame    core.Frame
	status   string
	statusAt time.Time
	err      error
	quitting bool
}

// NewModel creates a cabinet. Nothing runs until Init.
func NewModel(ctx context.Context, env registry.Env, prog menu.Program, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	return &Model{
		ctx:      ctx,
		env:      env,
		prog:     prog,
		opts:     opts,
		renderer: NewRenderer(opts.Renderer, env.Config.Display.BrightnessPercent),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

// Init starts the program and begins listening for frames.
func (m *Model) Init() tea.Cmd {
	m.session = input.Start(m.ctx, m.env, m.prog)
	return tea.Batch(waitFrame(m.session.Sink), waitDone(m.session))
}

func waitFrame(sink *input.FrameSink) tea.Cmd {
	return func() tea.Msg {
		return FrameMsg(<-sink.Frames())
	}
}

func waitDone(s *input.Session) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: <-s.Done()}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = core.Frame(msg)
		if m.session == nil {
			return m, nil
		}
		return m, waitFrame(m.session.Sink)

	case doneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit

	case clearStatusMsg:
		if time.Time(msg).Equal(m.statusAt) {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.session != nil {
			m.session.Stop()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			return m, m.setStatus("screenshot failed: " + err.Error())
		}
		return m, m.setStatus("saved " + path)
	case key.Matches(msg, m.keys.Copy):
		if err := m.opts.Clipboard(Dump(&m.frame)); err != nil {
			return m, m.setStatus("copy failed: " + err.Error())
		}
		return m, m.setStatus("frame copied")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if ev, ok := input.KeyEvent(msg.String()); ok && m.session != nil {
		m.session.Controller.Send(ev)
	}
	return m, nil
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusAt = time.Now()
	return clearStatusCmd(m.statusAt)
}

// saveScreenshot writes the current frame as '#' art and returns the path.
func (m *Model) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	name := fmt.Sprintf("frame_%s.txt", time.Now().Format("20060102_150405.000"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(Dump(&m.frame)+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// Err returns why the program stopped, if it failed.
func (m *Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	view := m.renderer.Render(&m.frame) + "\n" + m.help.View(m.keys)
	if m.status != "" {
		view += "\n" + statusStyle.Render(m.status)
	}
	return view
}

// Run starts the Bubble Tea program on the local terminal and blocks until
// the player quits.
func Run(ctx context.Context, env registry.Env, prog menu.Program) error {
	model := NewModel(ctx, env, prog, Options{})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
