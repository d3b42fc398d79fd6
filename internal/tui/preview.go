// Package tui implements the interactive markup preview.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/open-cli-collective/mcml-cli/api"
	"github.com/open-cli-collective/mcml-cli/internal/view"
	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

const sendTimeout = 15 * time.Second

// Sender delivers parsed runs; *api.Client implements it.
type Sender interface {
	Broadcast(ctx context.Context, target string, runs []mcml.StyleRun) (*api.BroadcastResponse, error)
}

// Options configures the preview.
type Options struct {
	Parser  *mcml.Parser
	Sender  Sender // nil disables ctrl+s
	Target  string
	Initial string
	Profile termenv.Profile
}

type sendResultMsg struct {
	resp *api.BroadcastResponse
	err  error
}

// Model is the bubbletea model for the preview: an editor at the bottom and
// the live rendering with per-run details above it.
type Model struct {
	opts Options

	vp     viewport.Model
	ta     textarea.Model
	spin   spinner.Model
	styles *lipgloss.Renderer

	width   int
	height  int
	ready   bool
	sending bool
	status  string

	runs     []mcml.StyleRun
	warnings []mcml.Warning

	border   lipgloss.Style
	dim      lipgloss.Style
	warnLine lipgloss.Style
	errLine  lipgloss.Style
	okLine   lipgloss.Style
}

// NewModel creates a preview model.
func NewModel(opts Options) *Model {
	if opts.Parser == nil {
		opts.Parser = mcml.New()
	}
	if opts.Target == "" {
		opts.Target = api.DefaultTarget
	}

	ta := textarea.New()
	ta.Placeholder = "Type markup… (ctrl+s to send, esc to quit)"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetValue(opts.Initial)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(opts.Profile)

	m := &Model{
		opts:     opts,
		vp:       viewport.New(80, 10),
		ta:       ta,
		spin:     sp,
		styles:   lr,
		border:   lr.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		dim:      lr.NewStyle().Foreground(lipgloss.Color("244")),
		warnLine: lr.NewStyle().Foreground(lipgloss.Color("214")),
		errLine:  lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		okLine:   lr.NewStyle().Foreground(lipgloss.Color("70")),
	}
	m.spin.Style = lr.NewStyle().Foreground(lipgloss.Color("63"))
	m.reparse()
	return m
}

// Runs returns the runs for the current editor content.
func (m *Model) Runs() []mcml.StyleRun {
	return m.runs
}

func (m *Model) reparse() {
	res := m.opts.Parser.ParseResult(m.ta.Value(), nil)
	m.runs = res.Runs
	m.warnings = res.Warnings
	m.refresh()
}

// Content builds the viewport text: the rendered message, one line per
// run and any parser warnings.
func (m *Model) Content() string {
	var b strings.Builder
	b.WriteString(view.StyleRuns(m.styles, m.runs))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		b.WriteString(m.dim.Render("(empty)"))
		b.WriteString("\n")
	}
	for _, row := range view.RunRows(m.runs) {
		b.WriteString(m.dim.Render(row[0] + "."))
		b.WriteString(" ")
		b.WriteString(strings.Join(row[1:], "  "))
		b.WriteString("\n")
	}

	for _, w := range m.warnings {
		b.WriteString(m.warnLine.Render("! " + w.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) refresh() {
	m.vp.SetContent(m.Content())
}

func (m *Model) recalcLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	inner := m.width - 2
	if inner < 1 {
		inner = 1
	}
	m.ta.SetWidth(inner)

	// editor (3) + status (1) + two borders (4)
	vpH := m.height - 8
	if vpH < 3 {
		vpH = 3
	}
	m.vp.Width = inner
	m.vp.Height = vpH
}

func (m *Model) sendCmd(runs []mcml.StyleRun) tea.Cmd {
	sender := m.opts.Sender
	target := m.opts.Target
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		resp, err := sender.Broadcast(ctx, target, runs)
		return sendResultMsg{resp: resp, err: err}
	}
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input, resizes and send results.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlS:
			switch {
			case m.opts.Sender == nil:
				m.status = m.errLine.Render("no endpoint configured")
			case m.sending:
			case len(m.runs) == 0:
				m.status = m.errLine.Render("nothing to send")
			default:
				m.sending = true
				m.status = ""
				return m, tea.Batch(m.spin.Tick, m.sendCmd(m.runs))
			}
			return m, nil
		}

	case sendResultMsg:
		m.sending = false
		if msg.err != nil {
			m.status = m.errLine.Render("✗ " + msg.err.Error())
		} else {
			m.status = m.okLine.Render(fmt.Sprintf("✓ sent to %s (%d delivered)", m.opts.Target, msg.resp.Delivered))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	before := m.ta.Value()
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	cmds = append(cmds, cmd)
	if m.ta.Value() != before {
		m.reparse()
	}

	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View draws the preview.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing…"
	}
	status := m.status
	if m.sending {
		status = m.spin.View() + " sending to " + m.opts.Target + "…"
	}
	if status == "" {
		status = m.dim.Render(fmt.Sprintf("%d run(s), %d warning(s)", len(m.runs), len(m.warnings)))
	}
	top := m.border.Render(m.vp.View())
	bottom := m.border.Render(m.ta.View() + "\n" + status)
	return top + "\n" + bottom
}

// Run starts the preview in the alternate screen.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
