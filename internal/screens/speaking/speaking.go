// Package speaking is the read-aloud drill over speaking and translation
// sentence lists.
package speaking

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/quiz"
	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/session"
	"github.com/abhisek/hanzidrill/internal/ui/components"
	"github.com/abhisek/hanzidrill/internal/ui/layout"
	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

type itemsLoadedMsg struct {
	Gen     uint64
	Dataset dataset.Dataset
	Err     error
}

// SpeakingScreen shows one sentence at a time. In translation datasets the
// Vietnamese sentence is the prompt and the Chinese is hidden until revealed.
type SpeakingScreen struct {
	entry   dataset.Entry
	src     dataset.Source
	rng     quiz.Rand
	tracker session.LoadTracker

	drill    *session.Drill
	report   dataset.Report
	loading  bool
	errMsg   string
	revealed bool
}

var _ screen.Screen = (*SpeakingScreen)(nil)
var _ screen.KeyHintProvider = (*SpeakingScreen)(nil)
var _ screen.StatusProvider = (*SpeakingScreen)(nil)

// New creates a SpeakingScreen for a speaking or translation entry. A nil
// rng uses the global source.
func New(entry dataset.Entry, src dataset.Source, rng quiz.Rand) *SpeakingScreen {
	return &SpeakingScreen{entry: entry, src: src, rng: rng}
}

func (s *SpeakingScreen) Init() tea.Cmd {
	gen := s.tracker.Begin()
	s.loading = true
	entry, src := s.entry, s.src
	return func() tea.Msg {
		ds, err := dataset.Load(context.Background(), src, entry)
		return itemsLoadedMsg{Gen: gen, Dataset: ds, Err: err}
	}
}

func (s *SpeakingScreen) Title() string {
	return s.entry.Name
}

// Status shows the cursor position and order.
func (s *SpeakingScreen) Status() string {
	if s.drill == nil {
		return ""
	}
	i, n := s.drill.Position()
	order := "tuần tự"
	if s.drill.Random() {
		order = "ngẫu nhiên"
	}
	return fmt.Sprintf("Câu %d/%d · %s  ", i, n, order)
}

func (s *SpeakingScreen) KeyHints() []layout.KeyHint {
	if s.drill == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Quay lại"}}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Câu tiếp"},
		{Key: "←", Description: "Câu trước"},
		{Key: "R", Description: "Ngẫu nhiên"},
	}
	if s.translation() {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Xem đáp án"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Ẩn/hiện phiên âm"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quay lại"})
}

func (s *SpeakingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		if !s.tracker.IsCurrent(msg.Gen) {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.report = msg.Dataset.Report
		drill, err := session.NewDrill(msg.Dataset.Items, s.rng)
		if err != nil {
			s.errMsg = "Không có câu nào trong tệp dữ liệu."
			return s, nil
		}
		s.drill = drill
		// Pronunciation is shown by default for plain speaking lists.
		s.revealed = !s.translation()
		return s, nil

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if s.drill == nil {
			return s, nil
		}
		switch msg.String() {
		case "enter", "right", "l", "n":
			s.drill.Next()
			s.revealed = !s.translation()
		case "left", "h", "p":
			s.drill.Prev()
			s.revealed = !s.translation()
		case "r":
			s.drill.ToggleRandom()
		case "space":
			s.revealed = !s.revealed
		}
	}
	return s, nil
}

func (s *SpeakingScreen) translation() bool {
	return s.entry.Kind == dataset.KindTranslationTriad
}

func (s *SpeakingScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Lỗi: %s\n\n  Nhấn phím bất kỳ để quay lại.", s.errMsg))
	}
	if s.drill == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n\n  Đang tải dữ liệu...")
	}

	item := s.drill.Current()
	cw := components.ContentWidth(width)

	var lines []string
	if s.translation() {
		lines = append(lines, theme.Body.Bold(true).Render(item.Translation))
		if s.revealed {
			lines = append(lines, "", theme.Hanzi.Render(item.Term), theme.Subtitle.Render(item.Pronunciation))
		} else {
			lines = append(lines, "", theme.Hint.Render("Hãy nói câu này bằng tiếng Trung"))
		}
	} else {
		lines = append(lines, theme.Hanzi.Render(item.Term))
		if s.revealed {
			lines = append(lines, "", theme.Subtitle.Render(item.Pronunciation))
		}
	}

	card := components.Card(strings.Join(lines, "\n"), cw)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	if s.report.Dropped > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("Bỏ qua %d dòng không đúng định dạng", s.report.Dropped))))
	}
	return b.String()
}
