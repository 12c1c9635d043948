package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/screens/home"
	"github.com/abhisek/hanzidrill/internal/screens/welcome"
	"github.com/abhisek/hanzidrill/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps home.Deps

	// Start builds a screen to open on top of home, skipping the splash.
	Start func(home.Deps) screen.Screen

	// SkipSplash opens home directly.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	initCmd tea.Cmd
}

// newAppModel creates a new AppModel with the first screens from opts.
func newAppModel(opts Options) AppModel {
	if opts.Deps.Logger == nil {
		opts.Deps.Logger = slog.Default()
	}
	deps := opts.Deps
	newHome := func() screen.Screen { return home.New(deps) }

	if !opts.SkipSplash && opts.Start == nil {
		r := router.New(welcome.New(newHome))
		return AppModel{router: r, initCmd: r.Active().Init()}
	}

	r := router.New(newHome())
	initCmd := r.Active().Init()
	if opts.Start != nil {
		initCmd = tea.Batch(initCmd, r.Push(opts.Start(deps)))
	}
	return AppModel{router: r, initCmd: initCmd}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "esc":
			if c, ok := m.router.Active().(screen.Capturer); ok && c.Capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// quit lets the active screen flush before the program exits.
func (m AppModel) quit() tea.Cmd {
	if l, ok := m.router.Active().(screen.Leaver); ok {
		if cmd := l.Leave(); cmd != nil {
			return tea.Sequence(cmd, tea.Quit)
		}
	}
	return tea.Quit
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	return []layout.KeyHint{
		{Key: "Phím bất kỳ", Description: "Tiếp tục"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
