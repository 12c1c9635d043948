package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/router"
	"github.com/abhisek/hanzidrill/internal/screen"
	"github.com/abhisek/hanzidrill/internal/session"
	"github.com/abhisek/hanzidrill/internal/ui/components"
	"github.com/abhisek/hanzidrill/internal/ui/layout"
	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

// Result is what the quiz screen hands over when a session ends.
type Result struct {
	Dataset string
	Summary session.Summary
	// FirstTry counts questions answered without a wrong attempt.
	FirstTry int
	Skipped  int
}

// FirstTryRate returns FirstTry/Total, or 0 when nothing was answered.
func (r Result) FirstTryRate() float64 {
	if r.Summary.Total == 0 {
		return 0
	}
	return float64(r.FirstTry) / float64(r.Summary.Total)
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Tổng kết"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Tiếp tục"},
		{Key: "Esc", Description: "Trang chủ"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	sum := r.Summary
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Hoàn thành phiên luyện tập!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s · %s · %d:%02d", r.Dataset, sum.Mode, mins, secs)))
	b.WriteString("\n\n")

	if sum.Total == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Chưa trả lời câu nào."))
		return b.String()
	}

	stats := fmt.Sprintf("Đã trả lời: %d        Đúng ngay lần đầu: %d        Bỏ qua: %d",
		sum.Total, r.FirstTry, r.Skipped)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Chính xác lần đầu", r.FirstTryRate(), cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	return b.String()
}
