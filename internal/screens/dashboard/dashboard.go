// Package dashboard lists recent submissions and follows new ones live.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/store"
	"github.com/abhisek/hanzidrill/internal/ui/layout"
	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

// PollInterval is how often the dashboard checks for new submissions.
const PollInterval = 2 * time.Second

type submissionsLoadedMsg struct {
	Subs  []store.Submission
	Count int
	Err   error
}

type submissionArrivedMsg struct {
	Sub store.Submission
}

type watchStoppedMsg struct {
	Err error
}

// DashboardScreen shows the newest submissions first.
type DashboardScreen struct {
	repo     store.SubmissionRepo
	interval time.Duration

	subs     []store.Submission
	count    int
	selected int
	expanded map[int64]bool
	loaded   bool
	errMsg   string
	watchErr string

	cancel context.CancelFunc
	feed   <-chan store.Submission
	errc   <-chan error
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.StatusProvider = (*DashboardScreen)(nil)
var _ screen.Leaver = (*DashboardScreen)(nil)

// New creates a DashboardScreen over repo.
func New(repo store.SubmissionRepo) *DashboardScreen {
	return &DashboardScreen{
		repo:     repo,
		interval: PollInterval,
		expanded: make(map[int64]bool),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()
		subs, err := repo.Latest(ctx, store.DefaultLatestLimit)
		if err != nil {
			return submissionsLoadedMsg{Err: err}
		}
		n, err := repo.Count(ctx)
		if err != nil {
			return submissionsLoadedMsg{Err: err}
		}
		return submissionsLoadedMsg{Subs: subs, Count: n}
	}
}

func (s *DashboardScreen) Title() string {
	return "Bảng điều khiển"
}

func (s *DashboardScreen) Status() string {
	if !s.loaded {
		return ""
	}
	return fmt.Sprintf("%d bài nộp", s.count)
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Chi tiết"},
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

// Leave stops the live feed.
func (s *DashboardScreen) Leave() tea.Cmd {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return nil
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submissionsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.subs = msg.Subs
		s.count = msg.Count
		return s, s.startWatch()

	case submissionArrivedMsg:
		if s.hasID(msg.Sub.ID) {
			return s, s.waitForSubmission()
		}
		s.subs = append([]store.Submission{msg.Sub}, s.subs...)
		if len(s.subs) > store.DefaultLatestLimit {
			s.subs = s.subs[:store.DefaultLatestLimit]
		}
		s.count++
		if s.selected > 0 {
			s.selected = min(s.selected+1, len(s.subs)-1)
		}
		return s, s.waitForSubmission()

	case watchStoppedMsg:
		if msg.Err != nil {
			s.watchErr = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.subs)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.subs) {
				id := s.subs[s.selected].ID
				s.expanded[id] = !s.expanded[id]
			}
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *DashboardScreen) startWatch() tea.Cmd {
	var after int64
	for _, sub := range s.subs {
		after = max(after, sub.ID)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.feed, s.errc = s.repo.Watch(ctx, after, s.interval)
	return s.waitForSubmission()
}

// waitForSubmission blocks on the feed for one message. It is issued
// again after every arrival.
func (s *DashboardScreen) waitForSubmission() tea.Cmd {
	feed, errc := s.feed, s.errc
	if feed == nil {
		return nil
	}
	return func() tea.Msg {
		sub, ok := <-feed
		if ok {
			return submissionArrivedMsg{Sub: sub}
		}
		return watchStoppedMsg{Err: <-errc}
	}
}

func (s *DashboardScreen) hasID(id int64) bool {
	for _, sub := range s.subs {
		if sub.ID == id {
			return true
		}
	}
	return false
}

func (s *DashboardScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nLỗi: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Đang tải bài nộp...")
	}
	if len(s.subs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Chưa có bài nộp nào. Hãy bắt đầu luyện tập!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sub := range s.subs {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+rowText(sub))))
		b.WriteString("\n")

		if s.expanded[sub.ID] {
			for _, line := range detailLines(sub) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+line)))
				b.WriteString("\n")
			}
		}
	}
	if s.watchErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Ngừng cập nhật: "+s.watchErr)))
	}
	return b.String()
}

func rowText(sub store.Submission) string {
	when := sub.CreatedAt.Local().Format("02/01 15:04")
	if sub.IsSessionSummary() {
		return fmt.Sprintf("%s  ★ %s · %s  %d/%d", when, sub.Dataset, sub.Mode, sub.Score, sub.Total)
	}
	mark := theme.Incorrect.Render("✗")
	if sub.Correct {
		mark = theme.Correct.Render("✓")
	}
	return fmt.Sprintf("%s  %s %s  %s", when, mark, truncate(sub.Prompt, 24), truncate(sub.Answer, 30))
}

func detailLines(sub store.Submission) []string {
	var lines []string
	if !sub.IsSessionSummary() {
		lines = append(lines, "Đề: "+sub.Prompt, "Bài làm: "+sub.Answer)
	}
	if sub.Feedback != "" {
		lines = append(lines, "Nhận xét: "+sub.Feedback)
	}
	if len(lines) == 0 {
		lines = append(lines, "Không có nhận xét")
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
