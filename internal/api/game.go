package api

import (
	"context"
	"fmt"
	"net/http"
)

// Puzzle is one fetched puzzle. The image URL doubles as the puzzle's
// identity: the backend resolves the solution from it, the client never
// sees the answer.
type Puzzle struct {
	ImageURL string `json:"imageUrl"`
	Question string `json:"question,omitempty"`
}

// Verdict is the backend's ruling on a submitted answer.
type Verdict struct {
	Correct       bool           `json:"correct"`
	Points        int            `json:"points"`
	Breakdown     map[string]int `json:"breakdown,omitempty"`
	Combo         int            `json:"combo"`
	XP            int            `json:"xp"`
	Level         int            `json:"level"`
	XPNeeded      int            `json:"xpNeeded"`
	LeveledUp     bool           `json:"leveledUp"`
	PerfectSolve  bool           `json:"perfectSolve"`
	CorrectAnswer string         `json:"correctAnswer,omitempty"`
}

// HintResult is the response to a hint request.
type HintResult struct {
	Hint           string `json:"hint"`
	HintsRemaining int    `json:"hintsRemaining"`
}

// FetchPuzzle retrieves the next puzzle for the given difficulty.
func (c *Client) FetchPuzzle(ctx context.Context, difficulty string) (*Puzzle, error) {
	var res Puzzle
	path := fmt.Sprintf("/api/game/puzzle?difficulty=%s", difficulty)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	if res.ImageURL == "" {
		return nil, fmt.Errorf("puzzle response missing image URL")
	}
	return &res, nil
}

// CheckAnswer submits an answer for verification. Elapsed time and hint
// usage feed the server-side scoring formula.
func (c *Client) CheckAnswer(ctx context.Context, answer, puzzleURL string, elapsedSeconds, hintsUsed int) (*Verdict, error) {
	req := map[string]any{
		"answer":    answer,
		"puzzleUrl": puzzleURL,
		"elapsed":   elapsedSeconds,
		"hintsUsed": hintsUsed,
	}
	var res Verdict
	if err := c.do(ctx, http.MethodPost, "/api/game/check", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UseHint asks the backend for a hint on the active puzzle. The returned
// remaining count is authoritative.
func (c *Client) UseHint(ctx context.Context, puzzleURL string) (*HintResult, error) {
	req := map[string]string{"puzzleUrl": puzzleURL}
	var res HintResult
	if err := c.do(ctx, http.MethodPost, "/api/game/hint", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitScore records the final score of a round set for leaderboard
// placement.
func (c *Client) SubmitScore(ctx context.Context, score int) error {
	req := map[string]int{"score": score}
	return c.do(ctx, http.MethodPost, "/api/game/score", req, nil)
}
