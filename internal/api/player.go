package api

import (
	"context"
	"net/http"
)

// PowerUps is the player's consumable inventory.
type PowerUps struct {
	Hint        int `json:"hint"`
	Freeze      int `json:"freeze"`
	SuperBanana int `json:"superBanana"`
}

// PlayerRecord is the backend's authoritative player state.
type PlayerRecord struct {
	Username     string   `json:"username"`
	Coins        int      `json:"coins"`
	PowerUps     PowerUps `json:"powerUps"`
	Achievements []string `json:"achievements"`
	Level        int      `json:"level"`
	XP           int      `json:"xp"`
	XPNeeded     int      `json:"xpNeeded"`
	Difficulty   string   `json:"difficulty"`
	Combo        int      `json:"combo"`
	HighScore    int      `json:"highScore"`
}

// PlayerPatch is a partial update pushed after an optimistic local
// mutation. Nil fields are left untouched by the backend.
type PlayerPatch struct {
	Coins      *int      `json:"coins,omitempty"`
	PowerUps   *PowerUps `json:"powerUps,omitempty"`
	Difficulty *string   `json:"difficulty,omitempty"`
}

// GameStats are aggregate statistics for the authenticated player.
type GameStats struct {
	GamesPlayed   int     `json:"gamesPlayed"`
	TotalCorrect  int     `json:"totalCorrect"`
	TotalAnswered int     `json:"totalAnswered"`
	BestStreak    int     `json:"bestStreak"`
	Accuracy      float64 `json:"accuracy"`
}

// DailyChallenge describes today's challenge and whether its reward has
// been claimed.
type DailyChallenge struct {
	Description string `json:"description"`
	RewardCoins int    `json:"rewardCoins"`
	Completed   bool   `json:"completed"`
	Claimed     bool   `json:"claimed"`
}

// GetPlayer fetches the authoritative player record.
func (c *Client) GetPlayer(ctx context.Context) (*PlayerRecord, error) {
	var res PlayerRecord
	if err := c.do(ctx, http.MethodGet, "/api/player", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdatePlayer pushes an optimistic local mutation to the backend.
func (c *Client) UpdatePlayer(ctx context.Context, patch PlayerPatch) error {
	return c.do(ctx, http.MethodPatch, "/api/player", patch, nil)
}

// GetStats fetches aggregate game statistics.
func (c *Client) GetStats(ctx context.Context) (*GameStats, error) {
	var res GameStats
	if err := c.do(ctx, http.MethodGet, "/api/player/stats", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetDailyChallenge fetches today's challenge status.
func (c *Client) GetDailyChallenge(ctx context.Context) (*DailyChallenge, error) {
	var res DailyChallenge
	if err := c.do(ctx, http.MethodGet, "/api/player/daily", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ClaimDailyChallenge claims the reward for a completed daily challenge.
func (c *Client) ClaimDailyChallenge(ctx context.Context) (*DailyChallenge, error) {
	var res DailyChallenge
	if err := c.do(ctx, http.MethodPost, "/api/player/daily/claim", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
