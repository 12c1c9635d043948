package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzidrill/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗ █████╗ ███╗   ██╗███████╗██╗    ██████╗ ██████╗ ██╗██╗     ██╗
 ██║  ██║██╔══██╗████╗  ██║╚══███╔╝██║    ██╔══██╗██╔══██╗██║██║     ██║
 ███████║███████║██╔██╗ ██║  ███╔╝ ██║    ██║  ██║██████╔╝██║██║     ██║
 ██╔══██║██╔══██║██║╚██╗██║ ███╔╝  ██║    ██║  ██║██╔══██╗██║██║     ██║
 ██║  ██║██║  ██║██║ ╚████║███████╗██║    ██████╔╝██║  ██║██║███████╗███████╗
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝    ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚══════╝`

const bannerCompact = "汉字 DRILL"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 78

// RenderBanner returns the banner styled in the primary color, or the
// compact form on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
