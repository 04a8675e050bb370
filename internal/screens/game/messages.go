package game

import (
	"time"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
)

// Async results carry the generation counter captured when the work was
// started. Results from an abandoned round are dropped on arrival.

// playerLoadedMsg delivers the player snapshot fetched at mount.
type playerLoadedMsg struct {
	Player *api.PlayerRecord
	Err    error
}

// playerRefreshedMsg delivers the authoritative re-fetch after a round.
type playerRefreshedMsg struct {
	Player *api.PlayerRecord
	Err    error
}

// dailyLoadedMsg delivers the daily-challenge status.
type dailyLoadedMsg struct {
	Daily *api.DailyChallenge
	Err   error
}

// puzzleReadyMsg is sent when a puzzle fetch completes.
type puzzleReadyMsg struct {
	Gen    int
	Puzzle *api.Puzzle
	Err    error
}

// tickMsg is sent every second to drive the countdown.
type tickMsg struct {
	Gen int
	At  time.Time
}

// verdictMsg delivers the backend's answer verification result.
type verdictMsg struct {
	Gen     int
	Verdict *api.Verdict
	Err     error
}

// hintResultMsg delivers a hint response.
type hintResultMsg struct {
	Gen    int
	Result *api.HintResult
	Err    error
}

// freezeAppliedMsg applies the freeze effect after its short delay.
type freezeAppliedMsg struct {
	Gen int
}

// outcomeDoneMsg ends the celebration/failure presentation.
type outcomeDoneMsg struct {
	Gen int
}

// syncDoneMsg reports a fire-and-forget player patch push.
type syncDoneMsg struct {
	Err error
}

// scoreSubmittedMsg reports the final-score submission.
type scoreSubmittedMsg struct {
	Score int
	Err   error
}

// logoutDoneMsg reports the remote logout attempt. Local teardown happens
// regardless of Err.
type logoutDoneMsg struct {
	AllDevices bool
	Err        error
}

// noticeExpiredMsg clears the transient notice line.
type noticeExpiredMsg struct {
	ID int
}
