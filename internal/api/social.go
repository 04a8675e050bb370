package api

import (
	"context"
	"fmt"
	"net/http"
)

// LeaderboardEntry is one row of the global leaderboard. Read-only,
// remote-owned.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Leaderboard fetches the top entries.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var res []LeaderboardEntry
	path := fmt.Sprintf("/api/leaderboard?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// SubmitRating records a 1-5 star rating for the game.
func (c *Client) SubmitRating(ctx context.Context, stars int) error {
	if stars < 1 || stars > 5 {
		return fmt.Errorf("rating must be 1-5, got %d", stars)
	}
	req := map[string]int{"stars": stars}
	return c.do(ctx, http.MethodPost, "/api/rating", req, nil)
}

// SubmitContact sends a contact-form message.
func (c *Client) SubmitContact(ctx context.Context, name, email, message string) error {
	req := map[string]string{
		"name":    name,
		"email":   email,
		"message": message,
	}
	return c.do(ctx, http.MethodPost, "/api/contact", req, nil)
}
