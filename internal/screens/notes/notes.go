// Package notes renders grammar notes with search and flashcards.
package notes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/grammar"
	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/session"
	"github.com/abhisek/hanzidrill/internal/ui/components"
	"github.com/abhisek/hanzidrill/internal/ui/layout"
	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

type notesLoadedMsg struct {
	Gen  uint64
	Text string
	Err  error
}

// NotesScreen shows one subsection at a time. Tab switches to flashcards
// built from the "中文 (bản dịch)" pairs in the notes.
type NotesScreen struct {
	entry   dataset.Entry
	src     dataset.Source
	tracker session.LoadTracker

	loaded bool
	errMsg string

	parts    []grammar.Part
	matches  []grammar.Match
	selected int
	query    string

	searching bool
	search    components.TextInput

	deck  *grammar.Deck
	cards bool
}

var _ screen.Screen = (*NotesScreen)(nil)
var _ screen.KeyHintProvider = (*NotesScreen)(nil)
var _ screen.Capturer = (*NotesScreen)(nil)

// New creates a NotesScreen for a grammar entry.
func New(entry dataset.Entry, src dataset.Source) *NotesScreen {
	return &NotesScreen{entry: entry, src: src}
}

func (s *NotesScreen) Init() tea.Cmd {
	gen := s.tracker.Begin()
	entry, src := s.entry, s.src
	return func() tea.Msg {
		data, err := src.Fetch(context.Background(), entry.Path)
		return notesLoadedMsg{Gen: gen, Text: string(data), Err: err}
	}
}

func (s *NotesScreen) Title() string {
	return s.entry.Name
}

// Capturing reports whether the search box owns the keyboard.
func (s *NotesScreen) Capturing() bool {
	return s.searching
}

func (s *NotesScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.searching:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Lọc"},
			{Key: "Esc", Description: "Xoá tìm kiếm"},
		}
	case s.cards:
		return []layout.KeyHint{
			{Key: "Space", Description: "Lật thẻ"},
			{Key: "←→", Description: "Thẻ trước/sau"},
			{Key: "Tab", Description: "Bài đọc"},
			{Key: "Esc", Description: "Quay lại"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Mục"},
			{Key: "/", Description: "Tìm"},
			{Key: "Tab", Description: "Thẻ ghi nhớ"},
			{Key: "Esc", Description: "Quay lại"},
		}
	}
}

func (s *NotesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if !s.tracker.IsCurrent(msg.Gen) {
			return s, nil
		}
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.parts = grammar.ParseSections(msg.Text, s.entry.Label)
		s.deck = grammar.NewDeck(grammar.ExtractCards(msg.Text))
		s.filter("")
		return s, nil

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if !s.loaded {
			return s, nil
		}
		if s.searching {
			return s.handleSearchKey(msg)
		}
		if s.cards {
			return s.handleCardKey(msg)
		}
		return s.handleReaderKey(msg)
	}

	if s.searching {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *NotesScreen) handleReaderKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.matches)-1 {
			s.selected++
		}
	case "/":
		s.searching = true
		s.search = components.NewTextInput("Tìm trong ghi chú...", 0)
		s.search.Model.SetValue(s.query)
		s.search.Model.CursorEnd()
		return s, s.search.Init()
	case "tab":
		s.cards = true
	}
	return s, nil
}

func (s *NotesScreen) handleSearchKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.searching = false
		s.filter(s.search.Value())
		return s, nil
	case "esc":
		s.searching = false
		s.filter("")
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.filter(s.search.Value())
	return s, cmd
}

func (s *NotesScreen) handleCardKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "space", "enter":
		s.deck.Flip()
	case "right", "l", "n":
		s.deck.Next()
	case "left", "h", "p":
		s.deck.Prev()
	case "tab":
		s.cards = false
	}
	return s, nil
}

func (s *NotesScreen) filter(query string) {
	s.query = strings.TrimSpace(query)
	s.matches = grammar.Search(s.parts, s.query)
	s.selected = 0
}

func (s *NotesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Lỗi: %s\n\n  Nhấn phím bất kỳ để quay lại.", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n\n  Đang tải ghi chú...")
	}
	if s.cards {
		return s.renderCard(width)
	}
	return s.renderReader(width, height)
}

func (s *NotesScreen) renderReader(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	switch {
	case s.searching:
		b.WriteString("  / " + s.search.View())
	case s.query != "":
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  Kết quả cho %q: %d mục", s.query, len(s.matches))))
	default:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d phần · %d mục", len(s.parts), len(s.matches))))
	}
	b.WriteString("\n\n")

	if len(s.matches) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Không tìm thấy mục nào."))
		return b.String()
	}

	m := s.matches[s.selected]
	part := s.parts[m.Part]
	sub := part.Subs[m.Sub]

	header := theme.Subtitle.Render(part.Title)
	if sub.Title != "" {
		header += "\n" + theme.Selected.Render(sub.Title)
	}
	body := renderBlocks(sub.Blocks(), cw-6)

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(header+"\n\n"+body, cw)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(fmt.Sprintf("%d / %d", s.selected+1, len(s.matches)))))
	return b.String()
}

func renderBlocks(blocks []grammar.Block, width int) string {
	var out []string
	for _, bl := range blocks {
		switch bl.Kind {
		case grammar.BlockExample:
			line := "• " + theme.Hanzi.Render(bl.Text)
			if bl.Translation != "" {
				line += "  " + theme.Hint.Render(bl.Translation)
			}
			out = append(out, line)
		default:
			out = append(out, lipgloss.NewStyle().Width(width).Align(lipgloss.Left).Foreground(theme.Text).Render(bl.Text))
		}
	}
	return strings.Join(out, "\n")
}

func (s *NotesScreen) renderCard(width int) string {
	card, ok := s.deck.Current()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Ghi chú này không có ví dụ để làm thẻ.")
	}
	content := theme.Hanzi.Render(card.Front)
	if s.deck.Flipped() {
		content += "\n\n" + theme.Body.Render(card.Back)
	} else {
		content += "\n\n" + theme.Hint.Render("Nhấn Space để lật")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(content, components.ContentWidth(width))))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(fmt.Sprintf("Thẻ %d / %d", s.deck.Index()+1, s.deck.Len()))))
	return b.String()
}
