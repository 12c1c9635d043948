package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/hanzidrill/internal/session"
	"github.com/abhisek/hanzidrill/internal/ui/components"
	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

// renderQuestionView renders the active question.
func (s *SessionScreen) renderQuestionView(width int) string {
	q := s.state.Current()
	if q == nil {
		return renderLoading(width)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))))
	b.WriteString("\n\n")

	prompt := theme.Body.Bold(true).Render(q.Prompt)
	if q.Mode == sess.ModeQuiz {
		prompt = theme.Hanzi.Render(q.Prompt)
	}
	if q.Secondary != "" {
		prompt += "\n" + theme.Subtitle.Render(q.Secondary)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(prompt, cw)))
	b.WriteString("\n\n")

	if q.Mode.HasChoices() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		b.WriteString(s.renderWritten(q, width))
	}

	if fb := s.renderFeedback(width); fb != "" {
		b.WriteString("\n")
		b.WriteString(fb)
	}
	return b.String()
}

func (s *SessionScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + modeLabel(s.state.Mode()))

	info := fmt.Sprintf("%d mục", s.state.Len())
	if s.report.Dropped > 0 {
		info += fmt.Sprintf(" (bỏ %d dòng lỗi)", s.report.Dropped)
	}
	if n := s.state.Attempts(); n > 0 {
		info += fmt.Sprintf("  sai %d lần", n)
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(info)

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// renderWritten shows both parts of a written question with the active
// input on the part being answered.
func (s *SessionScreen) renderWritten(q *sess.Question, width int) string {
	var lines []string
	for _, p := range q.Parts() {
		label := partLabel(p, q.Mode)
		switch {
		case q.PartDone(p) && p != s.part:
			lines = append(lines, theme.Correct.Render("✓ "+label))
		case p == s.part:
			lines = append(lines, theme.Body.Render(label+": ")+s.input.View())
		default:
			lines = append(lines, theme.Hint.Render("  "+label))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n\n"))
}

func (s *SessionScreen) renderFeedback(width int) string {
	fb := s.feedback
	if fb.text == "" {
		return ""
	}
	style := theme.Incorrect
	switch {
	case s.checking:
		style = theme.Hint
	case fb.ok:
		style = theme.Correct
	}
	out := style.Render(fb.text)
	if fb.detail != "" {
		out += "\n" + lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(fb.detail)
	}
	if s.state.Phase() == sess.PhaseAnswered {
		out += "\n\n" + theme.Hint.Render("Nhấn Enter để sang câu tiếp")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(out))
}

func (s *SessionScreen) renderNotice(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Chế độ hiện tại: %s", s.notice, modeLabel(s.state.Mode())))
}

func partLabel(p sess.Part, m sess.Mode) string {
	switch {
	case p == sess.PartTerm && m == sess.ModeTranslation:
		return "Câu tiếng Trung"
	case p == sess.PartTerm:
		return "Chữ Hán"
	case m == sess.ModeTranslation:
		return "Cách dịch của bạn"
	default:
		return "Đặt câu"
	}
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Đang tải dữ liệu...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Lỗi: %s\n\n  Nhấn phím bất kỳ để quay lại.", errMsg))
}
