package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	"github.com/janakan-45/banana-brain-blitz/internal/store"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/layout"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

const fetchLimit = 30

// RoundSource reads locally recorded rounds.
type RoundSource interface {
	RecentRounds(ctx context.Context, limit int) ([]store.RoundRecord, error)
}

// historyLoadedMsg delivers the local round log.
type historyLoadedMsg struct {
	Rounds []store.RoundRecord
	Err    error
}

// HistoryScreen lists recently played rounds from the local database.
type HistoryScreen struct {
	source RoundSource
	rounds []store.RoundRecord
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(source RoundSource) *HistoryScreen {
	return &HistoryScreen{source: source}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		rounds, err := s.source.RecentRounds(context.Background(), fetchLimit)
		return historyLoadedMsg{Rounds: rounds, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "My History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = "Could not read local history"
		} else {
			s.rounds = msg.Rounds
		}
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("RECENT ROUNDS"))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(center.Foreground(theme.TextDim).Render("Loading..."))
	case s.errMsg != "":
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
	case len(s.rounds) == 0:
		b.WriteString(center.Foreground(theme.TextDim).Render("No rounds played yet on this machine."))
	default:
		var rows []string
		for _, r := range s.rounds {
			mark := theme.Incorrect.Render("✗")
			if r.Correct {
				mark = theme.Correct.Render("✓")
			}
			line := fmt.Sprintf("%s  %s  %-24s %5d pts",
				r.AnsweredAt.Format("Jan 02 15:04"), mark, trim(r.PuzzleID, 24), r.Points)
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))
	}

	return b.String()
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
