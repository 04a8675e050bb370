package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	gamecore "github.com/janakan-45/banana-brain-blitz/internal/game"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/components"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.showEndConfirm {
		return s.renderEndConfirm(width, height)
	}
	if s.showShop {
		return s.renderShop(width, height)
	}
	if s.outcome != nil {
		return s.renderOutcome(width, height)
	}
	return s.renderRound(width, height)
}

func (s *GameScreen) renderRound(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if s.daily != nil && !s.daily.Claimed {
		b.WriteString(s.renderDailyBanner(width))
		b.WriteString("\n")
	}

	if s.round == nil || s.loading {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Peeling the next puzzle..."))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(s.renderTimer(width))
	b.WriteString("\n\n")

	// Puzzle card: the image URL is the puzzle; open it in a browser or an
	// image-capable terminal.
	card := theme.Card.Width(min(width-8, 70)).Render(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.puzzlePrompt()) +
			"\n\n" +
			lipgloss.NewStyle().Foreground(theme.Accent).Underline(true).Render(s.round.ImageURL))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if s.hint != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Italic(true).
			Render("Hint: " + s.hint))
		b.WriteString("\n\n")
	}

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
	b.WriteString(answerLine)
	b.WriteString("\n\n")

	b.WriteString(s.renderPowerUpLine(width))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
	}

	return b.String()
}

func (s *GameScreen) puzzlePrompt() string {
	if s.round.Question != "" {
		return s.round.Question
	}
	return "What number hides in this puzzle?"
}

func (s *GameScreen) renderStatusLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Score: %d", s.eco.Score))

	double := ""
	if s.eco.DoublePointsArmed {
		double = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  2x!")
	}

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("🍌 %d   Streak %d   Combo %d   Lv %d   %s",
			s.eco.Coins, s.eco.Streak, s.eco.Combo, s.eco.Level, s.eco.Difficulty)) + double

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *GameScreen) renderTimer(width int) string {
	total := gamecore.RoundDuration(s.eco.Difficulty)
	percent := float64(s.round.TimeLeft) / float64(total)
	if percent > 1 {
		percent = 1
	}

	bar := components.NewProgressBar("", percent, false, min(width-20, 50))
	if s.round.Frozen {
		bar.Color = theme.Secondary
	} else if s.round.TimeLeft <= 10 {
		bar.Color = theme.Error
	} else {
		bar.Color = theme.Primary
	}

	label := fmt.Sprintf(" %2ds", s.round.TimeLeft)
	if s.round.Frozen {
		label += " ❄ frozen"
	}
	line := bar.View() + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *GameScreen) renderPowerUpLine(width int) string {
	line := fmt.Sprintf("[H]int %d   [F]reeze %d   [B]anana %d   [P] shop   [S]kip   [D]ifficulty",
		s.eco.PowerUps.Hint, s.eco.PowerUps.Freeze, s.eco.PowerUps.SuperBanana)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(line)
}

func (s *GameScreen) renderDailyBanner(width int) string {
	d := s.daily
	var text string
	switch {
	case d.Completed && !d.Claimed:
		text = fmt.Sprintf("Daily challenge done! Press C to claim %d coins", d.RewardCoins)
	default:
		text = fmt.Sprintf("Daily: %s (+%d coins)", d.Description, d.RewardCoins)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(text)
}

func (s *GameScreen) renderOutcome(width, height int) string {
	o := s.outcome
	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case o.Failed:
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Connection lost!"))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("That one counts as a miss. On to the next!"))
	case o.Correct:
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("🍌 CORRECT! 🍌"))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("+%d points", o.Points)))
		if o.PerfectSolve {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.Primary).Render("Perfect solve — no hints!"))
		}
		if o.LeveledUp {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("LEVEL UP! Now level %d", s.eco.Level)))
		}
	default:
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite!"))
		if o.CorrectAnswer != "" {
			b.WriteString("\n\n")
			b.WriteString(center.Foreground(theme.TextDim).Render("The answer was " +
				lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.CorrectAnswer)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("press any key for the next puzzle"))
	return b.String()
}

func (s *GameScreen) renderShop(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("BANANA SHOP"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("You have 🍌 %d coins", s.eco.Coins)))
	b.WriteString("\n\n")

	var rows []string
	for i, item := range gamecore.Catalog() {
		owned := s.eco.PowerUpCount(item.Kind)
		line := fmt.Sprintf("%d) %-13s %3d coins   (owned: %d)  %s", i+1, item.Name, item.Cost, owned, item.Desc)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.shopSelected {
			line = "▸ " + line
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		} else {
			line = "  " + line
		}
		if s.eco.Coins < item.Cost {
			style = style.Foreground(theme.TextDim)
		}
		rows = append(rows, style.Render(line))
	}

	block := strings.Join(rows, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
	}
	return b.String()
}

func (s *GameScreen) renderEndConfirm(width, height int) string {
	content := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End this round set?") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Your score of %d will be submitted to the leaderboard.", s.eco.Score)) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("[Y] submit and finish   [N] keep playing")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}
