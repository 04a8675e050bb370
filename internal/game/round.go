package game

import (
	"strings"
	"time"
)

// Difficulty selects the countdown duration for a round.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a difficulty string, defaulting to medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(s)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Next cycles easy → medium → hard → easy.
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// RoundDuration returns the countdown for a difficulty. Easier difficulty
// gets a longer timer.
func RoundDuration(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 60
	case DifficultyHard:
		return 30
	default:
		return 45
	}
}

// FreezeBonusSeconds is added to the remaining time when the timer is
// frozen. Applied at most once per freeze.
const FreezeBonusSeconds = 15

// Round is one active puzzle round. Exactly one Round is live at a time;
// Seq lets async results from an abandoned round be recognized and dropped.
type Round struct {
	PuzzleID  string
	ImageURL  string
	Question  string
	TimeLeft  int
	StartedAt time.Time
	Frozen    bool
	HintsUsed int
	Answer    string
	Seq       int
}

// NewRound replaces the previous round: per-round fields reset, the
// sequence number advances.
func NewRound(prev *Round, imageURL, question string, d Difficulty) *Round {
	seq := 1
	if prev != nil {
		seq = prev.Seq + 1
	}
	return &Round{
		PuzzleID:  PuzzleID(imageURL),
		ImageURL:  imageURL,
		Question:  question,
		TimeLeft:  RoundDuration(d),
		StartedAt: time.Now(),
		Seq:       seq,
	}
}

// PuzzleID derives a stable puzzle identity from its image URL.
func PuzzleID(imageURL string) string {
	if i := strings.LastIndex(imageURL, "/"); i >= 0 && i < len(imageURL)-1 {
		return imageURL[i+1:]
	}
	return imageURL
}

// Tick advances the countdown by one second. The timer only decrements
// while not frozen and never goes below zero.
func (r *Round) Tick() {
	if r.Frozen || r.TimeLeft <= 0 {
		return
	}
	r.TimeLeft--
}

// Expired reports whether the countdown has reached zero.
func (r *Round) Expired() bool {
	return r.TimeLeft <= 0
}

// Freeze suspends the countdown and grants the time bonus. Freezing while
// already frozen is a no-op so the bonus cannot stack.
func (r *Round) Freeze() bool {
	if r.Frozen {
		return false
	}
	r.Frozen = true
	r.TimeLeft += FreezeBonusSeconds
	return true
}

// Elapsed returns whole seconds since the puzzle was acquired.
func (r *Round) Elapsed() int {
	return int(time.Since(r.StartedAt).Seconds())
}
