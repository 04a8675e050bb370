package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Credentials is the persisted session identity. A username may be present
// without tokens: a remembered name alone is not proof of a valid session
// and only pre-fills the login form.
type Credentials struct {
	Username     string
	AccessToken  string
	RefreshToken string
	DeviceID     string
	SavedAt      time.Time
}

// HasTokens reports whether either bearer credential is present.
func (c Credentials) HasTokens() bool {
	return c.AccessToken != "" || c.RefreshToken != ""
}

// Credentials loads the persisted credentials. Returns zero-value
// Credentials (with a fresh device ID) when nothing is stored yet.
func (s *Store) Credentials(ctx context.Context) (Credentials, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT username, access_token, refresh_token, device_id, saved_at
		 FROM credentials WHERE id = 1`)

	var c Credentials
	var savedAt sql.NullTime
	err := row.Scan(&c.Username, &c.AccessToken, &c.RefreshToken, &c.DeviceID, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{DeviceID: uuid.New().String()}, nil
	}
	if err != nil {
		return Credentials{}, err
	}
	if savedAt.Valid {
		c.SavedAt = savedAt.Time
	}
	if c.DeviceID == "" {
		c.DeviceID = uuid.New().String()
	}
	return c, nil
}

// SaveCredentials persists the full credential set.
func (s *Store) SaveCredentials(ctx context.Context, c Credentials) error {
	if c.DeviceID == "" {
		c.DeviceID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credentials (id, username, access_token, refresh_token, device_id, saved_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			device_id = excluded.device_id,
			saved_at = excluded.saved_at`,
		c.Username, c.AccessToken, c.RefreshToken, c.DeviceID, time.Now())
	return err
}

// ClearCredentials drops the bearer tokens but keeps the remembered
// username and device ID.
func (s *Store) ClearCredentials(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE credentials SET access_token = '', refresh_token = '', saved_at = ? WHERE id = 1`,
		time.Now())
	return err
}
