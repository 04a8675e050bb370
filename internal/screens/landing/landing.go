package landing

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/components"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

// Factories builds the screens reachable from the landing menu. The
// landing screen itself never touches the network.
type Factories struct {
	Leaderboard func() screen.Screen
	History     func() screen.Screen
	HowTo       func() screen.Screen
	Contact     func() screen.Screen
}

// LandingScreen is the arcade front door.
type LandingScreen struct {
	menu           components.Menu
	rememberedName string
	notice         string
}

var _ screen.Screen = (*LandingScreen)(nil)

// New creates the landing screen. rememberedName greets a returning
// player; notice shows a one-shot message (e.g. "session expired").
func New(factories Factories, rememberedName, notice string) *LandingScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: factory()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "PLAY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.AuthRequestedMsg{Tab: router.TabLogin}
			}
		}},
		{Label: "NEW PLAYER", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.AuthRequestedMsg{Tab: router.TabRegister}
			}
		}},
		{Label: "LEADERBOARD", Action: push(factories.Leaderboard)},
		{Label: "MY HISTORY", Action: push(factories.History)},
		{Label: "HOW TO PLAY", Action: push(factories.HowTo)},
		{Label: "CONTACT US", Action: push(factories.Contact)},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &LandingScreen{
		menu:           components.NewMenu(items),
		rememberedName: rememberedName,
		notice:         notice,
	}
}

func (s *LandingScreen) Init() tea.Cmd {
	return nil
}

func (s *LandingScreen) Title() string {
	return "Welcome"
}

func (s *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && s.notice != "" {
		s.notice = ""
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LandingScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, components.RenderBanner(width))

	tagline := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Solve banana puzzles. Beat the clock. Top the board.")
	sections = append(sections, tagline)

	if s.rememberedName != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Welcome back, %s!", s.rememberedName)))
	}

	if s.notice != "" {
		sections = append(sections, theme.Incorrect.Render(s.notice))
	}

	sections = append(sections, "")
	sections = append(sections, s.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
