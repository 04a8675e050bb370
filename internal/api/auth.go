package api

import (
	"context"
	"net/http"
)

// TokenPair is the opaque bearer credential pair issued at login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the response to a successful login.
type LoginResult struct {
	Username string `json:"username"`
	TokenPair
}

// Login exchanges a username and password for bearer credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	req := map[string]string{"username": username, "password": password}
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates a new account. The backend logs the player in on
// success and returns the same shape as Login.
func (c *Client) Register(ctx context.Context, username, email, password string) (*LoginResult, error) {
	req := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RequestOTP asks the backend to mail a one-time code for verification.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	req := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/otp/request", req, nil)
}

// VerifyOTP confirms a one-time code.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	req := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/api/auth/otp/verify", req, nil)
}

// Refresh exchanges a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	req := map[string]string{"refreshToken": refreshToken}
	var res TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout invalidates the session for a single device.
func (c *Client) Logout(ctx context.Context, deviceID string) error {
	req := map[string]string{"deviceId": deviceID}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", req, nil)
}

// LogoutAll invalidates the session on every device.
func (c *Client) LogoutAll(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout-all", nil, nil)
}
