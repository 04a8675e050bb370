package components

import (
	"charm.land/lipgloss/v2"

	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

const bannerArt = `
 ██████╗  █████╗ ███╗   ██╗ █████╗ ███╗   ██╗ █████╗
 ██╔══██╗██╔══██╗████╗  ██║██╔══██╗████╗  ██║██╔══██╗
 ██████╔╝███████║██╔██╗ ██║███████║██╔██╗ ██║███████║
 ██╔══██╗██╔══██║██║╚██╗██║██╔══██║██║╚██╗██║██╔══██║
 ██████╔╝██║  ██║██║ ╚████║██║  ██║██║ ╚████║██║  ██║
 ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝
          B R A I N   B L I T Z`

const bannerCompact = "B A N A N A   B R A I N   B L I T Z"

// RenderBanner returns the title banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 56 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
