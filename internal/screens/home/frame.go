package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/ui/components"
	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

const homeTitleFull = `╔═╗ 汉 字 ╔═╗
║ H A N Z I ║
╚═╗ DRILL ╔═╝`

const homeTitleCompact = "汉字 · DRILL"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := homeTitleFull
	if compact {
		art = homeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows source and submission counts in a bordered box.
func renderStatsBar(sources, submissions int, online bool, cw int) string {
	sourceStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	subs := dimStyle.Render("✎ –")
	if submissions >= 0 {
		subs = subStyle.Render(fmt.Sprintf("✎ %d bài nộp", submissions))
	}
	checker := dimStyle.Render("kiểm tra cục bộ")
	if online {
		checker = lipgloss.NewStyle().Foreground(theme.Success).Render("kiểm tra AI")
	}

	stats := fmt.Sprintf("%s  %s  %s",
		sourceStyle.Render(fmt.Sprintf("▤ %d nguồn", sources)), subs, checker)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderMenu(menu components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Left).
		Render(strings.TrimRight(menu.View(), "\n"))
}

// renderLLMBanner is shown when sentences are only checked locally.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Chưa cấu hình LLM: câu viết chỉ được kiểm tra cục bộ (xem hanzidrill --help)")
}

// renderFrame wraps content in a double-border frame, centered in the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
