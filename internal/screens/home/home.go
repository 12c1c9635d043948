package home

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/grammarcheck"
	"github.com/abhisek/hanzidrill/internal/quiz"
	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/screens/dashboard"
	"github.com/abhisek/hanzidrill/internal/screens/notes"
	"github.com/abhisek/hanzidrill/internal/screens/placeholder"
	sessionscreen "github.com/abhisek/hanzidrill/internal/screens/session"
	"github.com/abhisek/hanzidrill/internal/screens/speaking"
	sess "github.com/abhisek/hanzidrill/internal/session"
	"github.com/abhisek/hanzidrill/internal/store"
	"github.com/abhisek/hanzidrill/internal/ui/components"
	"github.com/abhisek/hanzidrill/internal/ui/layout"
)

// Deps are the services screens opened from home share.
type Deps struct {
	Catalog dataset.Catalog
	Source  dataset.Source
	Checker grammarcheck.Checker

	// Submissions is nil when no database could be opened.
	Submissions store.SubmissionRepo
	Logger      *slog.Logger
	Rand        quiz.Rand
}

// Open returns the screen that fits entry's kind.
func (d Deps) Open(entry dataset.Entry) screen.Screen {
	switch kindOf(entry) {
	case dataset.KindGrammar:
		return notes.New(entry, d.Source)
	case dataset.KindSpeakingLine, dataset.KindTranslationTriad:
		return speaking.New(entry, d.Source, d.Rand)
	default:
		return d.Quiz(entry, sess.ModeQuiz)
	}
}

// Quiz returns a quiz screen over entry starting in mode.
func (d Deps) Quiz(entry dataset.Entry, mode sess.Mode) screen.Screen {
	return sessionscreen.New(sessionscreen.Config{
		Entry:       entry,
		Mode:        mode,
		Source:      d.Source,
		Checker:     d.Checker,
		Submissions: d.Submissions,
		Logger:      d.Logger,
		Rand:        d.Rand,
	})
}

// Dashboard returns the submissions dashboard, or a notice when there is
// no store.
func (d Deps) Dashboard() screen.Screen {
	if d.Submissions == nil {
		return placeholder.New("Bảng điều khiển", "Không mở được cơ sở dữ liệu nên chưa có bài nộp nào được lưu.")
	}
	return dashboard.New(d.Submissions)
}

func kindOf(e dataset.Entry) dataset.Kind {
	if e.Kind != "" {
		return e.Kind
	}
	return dataset.InferKind(e.Path)
}

func kindLabel(k dataset.Kind) string {
	switch k {
	case dataset.KindTabular:
		return "từ vựng"
	case dataset.KindSpeakingLine:
		return "luyện nói"
	case dataset.KindTranslationTriad:
		return "dịch câu"
	case dataset.KindGrammar:
		return "ngữ pháp"
	default:
		return string(k)
	}
}

type countLoadedMsg struct {
	N   int
	Err error
}

// HomeScreen lists the catalog and the dashboard.
type HomeScreen struct {
	deps        Deps
	menu        components.Menu
	submissions int
	online      bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, submissions: -1}
	if o, ok := deps.Checker.(interface{ Online() bool }); ok {
		h.online = o.Online()
	}

	var items []components.MenuItem
	for _, e := range deps.Catalog.Entries {
		items = append(items, components.MenuItem{
			Label:  e.Name,
			Detail: kindLabel(kindOf(e)),
			Action: push(func() screen.Screen { return deps.Open(e) }),
		})
	}
	items = append(items,
		components.MenuItem{Label: "Bảng điều khiển", Detail: "bài nộp", Action: push(deps.Dashboard)},
		components.MenuItem{Label: "Thoát", Action: func() tea.Cmd { return tea.Quit }},
	)
	h.menu = components.NewMenu(items)
	return h
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: build()}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.deps.Submissions
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := repo.Count(context.Background())
		return countLoadedMsg{N: n, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "Enter", Description: "Mở"},
		{Key: "q", Description: "Trắc nghiệm"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

// selectedEntry returns the catalog entry under the cursor.
func (h *HomeScreen) selectedEntry() (dataset.Entry, bool) {
	if h.menu.Selected < len(h.deps.Catalog.Entries) {
		return h.deps.Catalog.Entries[h.menu.Selected], true
	}
	return dataset.Entry{}, false
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countLoadedMsg:
		if msg.Err != nil {
			if h.deps.Logger != nil {
				h.deps.Logger.Warn("count submissions failed", "error", msg.Err)
			}
			return h, nil
		}
		h.submissions = msg.N
		return h, nil

	case tea.KeyMsg:
		if msg.String() == "q" {
			return h, h.quizSelected()
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// quizSelected opens a quiz over the selected entry. Speaking lists are
// quizzed on pronunciation and translation sets on writing.
func (h *HomeScreen) quizSelected() tea.Cmd {
	e, ok := h.selectedEntry()
	if !ok {
		return nil
	}
	mode := sess.ModeQuiz
	switch kindOf(e) {
	case dataset.KindGrammar:
		return nil
	case dataset.KindTranslationTriad:
		mode = sess.ModeTranslation
	}
	deps := h.deps
	return push(func() screen.Screen { return deps.Quiz(e, mode) })()
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header (3) + footer (3) + frame gaps
	compact := layout.IsCompact(width, height+8)

	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(len(h.deps.Catalog.Entries), h.submissions, h.online, cw),
	}
	if !h.online {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
