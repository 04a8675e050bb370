package info

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/layout"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

const howToText = `Each round shows a banana puzzle — open the image link and work out
the hidden number before the clock runs out.

  • Type your answer and press Enter to submit.
  • Skip (S) or a timeout resets your streak and deals a new puzzle.
  • Hints (H) reveal a clue but cost a "perfect solve" bonus.
  • Freeze (F) stops the clock and adds bonus seconds — once per round.
  • Super Banana (B) doubles the points of your next correct answer.
  • Earn coins for correct answers and spend them in the shop (P).
  • Harder difficulty means a shorter timer and bigger rewards.

End the game (Esc) to lock in your score on the leaderboard.`

// HowToScreen explains the rules.
type HowToScreen struct{}

var _ screen.Screen = (*HowToScreen)(nil)
var _ screen.KeyHintProvider = (*HowToScreen)(nil)

// NewHowTo creates the how-to-play screen.
func NewHowTo() *HowToScreen {
	return &HowToScreen{}
}

func (s *HowToScreen) Init() tea.Cmd { return nil }

func (s *HowToScreen) Title() string { return "How To Play" }

func (s *HowToScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HowToScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *HowToScreen) View(width, height int) string {
	content := theme.Card.Width(min(width-8, 74)).Render(
		lipgloss.NewStyle().Foreground(theme.Text).Render(howToText))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
