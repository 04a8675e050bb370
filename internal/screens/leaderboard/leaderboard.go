package leaderboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/layout"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

const fetchLimit = 10

// Backend is the slice of the API client the leaderboard screen uses.
type Backend interface {
	Leaderboard(ctx context.Context, limit int) ([]api.LeaderboardEntry, error)
	GetStats(ctx context.Context) (*api.GameStats, error)
	SubmitRating(ctx context.Context, stars int) error
}

// boardLoadedMsg delivers the leaderboard entries.
type boardLoadedMsg struct {
	Entries []api.LeaderboardEntry
	Err     error
}

// statsLoadedMsg delivers the player's aggregate stats.
type statsLoadedMsg struct {
	Stats *api.GameStats
	Err   error
}

// ratingDoneMsg reports a rating submission.
type ratingDoneMsg struct {
	Stars int
	Err   error
}

// LeaderboardScreen shows the global top scores, the player's final score
// for the round set just finished, and their aggregate stats.
type LeaderboardScreen struct {
	backend  Backend
	log      zerolog.Logger
	username string

	// finalScore is the score of the round set that led here; -1 when the
	// screen was opened from the landing menu.
	finalScore int

	entries []api.LeaderboardEntry
	stats   *api.GameStats
	loaded  bool
	errMsg  string
	notice  string
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

// New creates the leaderboard screen. username is empty for anonymous
// visitors (no stats fetch, no play-again).
func New(backend Backend, log zerolog.Logger, username string, finalScore int) *LeaderboardScreen {
	return &LeaderboardScreen{
		backend:    backend,
		log:        log,
		username:   username,
		finalScore: finalScore,
	}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg {
			entries, err := s.backend.Leaderboard(context.Background(), fetchLimit)
			return boardLoadedMsg{Entries: entries, Err: err}
		},
	}
	if s.username != "" {
		cmds = append(cmds, func() tea.Msg {
			stats, err := s.backend.GetStats(context.Background())
			return statsLoadedMsg{Stats: stats, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (s *LeaderboardScreen) Title() string {
	return "Leaderboard"
}

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.username != "" {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Play again"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "1-5", Description: "Rate the game"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.log.Error().Err(msg.Err).Msg("leaderboard fetch failed")
			s.errMsg = "Could not load the leaderboard"
		} else {
			s.entries = msg.Entries
		}
		return s, nil

	case statsLoadedMsg:
		if msg.Err == nil {
			s.stats = msg.Stats
		}
		return s, nil

	case ratingDoneMsg:
		if msg.Err != nil {
			s.notice = "Could not submit your rating"
		} else {
			s.notice = fmt.Sprintf("Thanks for the %d-star rating!", msg.Stars)
		}
		return s, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "esc", "b":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "p":
			if s.username != "" {
				return s, func() tea.Msg { return router.PlayAgainMsg{} }
			}
		case "1", "2", "3", "4", "5":
			stars := int(key[0] - '0')
			return s, func() tea.Msg {
				err := s.backend.SubmitRating(context.Background(), stars)
				return ratingDoneMsg{Stars: stars, Err: err}
			}
		}
	}
	return s, nil
}

func (s *LeaderboardScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.finalScore >= 0 {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Primary).Bold(true).
			Render(fmt.Sprintf("Final score: %d", s.finalScore)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("TOP BANANAS"))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(center.Foreground(theme.TextDim).Render("Loading..."))
	case s.errMsg != "":
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
	case len(s.entries) == 0:
		b.WriteString(center.Foreground(theme.TextDim).Render("No scores yet — be the first!"))
	default:
		var rows []string
		for i, e := range s.entries {
			line := fmt.Sprintf("%2d. %-20s %8d", i+1, e.Username, e.Score)
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if e.Username == s.username {
				style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			} else if i == 0 {
				style = lipgloss.NewStyle().Foreground(theme.Accent)
			}
			rows = append(rows, style.Render(line))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))
	}

	if s.stats != nil {
		b.WriteString("\n\n")
		statsLine := fmt.Sprintf("Games %d   Correct %d/%d   Best streak %d   Accuracy %.0f%%",
			s.stats.GamesPlayed, s.stats.TotalCorrect, s.stats.TotalAnswered,
			s.stats.BestStreak, s.stats.Accuracy*100)
		b.WriteString(center.Foreground(theme.TextDim).Render(statsLine))
	}

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Secondary).Render(s.notice))
	}

	return b.String()
}
