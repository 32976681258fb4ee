package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sanidhya49/binsavvy-cli/db"
	"github.com/rs/zerolog/log"
)

// Login authenticates with username and password and returns the issued token
// pair and user record.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	log.Info().Str("username", username).Msg("Logging in")
	body := map[string]string{"username": username, "password": password}

	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.LoginPath, body, &out); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if out.Access == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}
	return &out, nil
}

// Register creates a new account and returns the created user record.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*db.User, error) {
	log.Info().Str("username", req.Username).Msg("Registering new account")

	var out db.User
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.RegisterPath, req, &out); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &out, nil
}

// Logout tells the server the session is over. Local state is the session
// manager's concern; a transport failure here is reported but not fatal to
// logging out locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.LogoutPath, nil, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// PerformTokenRefresh exchanges a refresh token for a new pair. It implements
// session.TokenRefresher. An empty returned refresh token means the server
// kept the old one.
func (c *Client) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, string, error) {
	body := map[string]string{"refresh": refreshToken}

	var out RefreshResponse
	if err := c.doJSON(ctx, http.MethodPost, c.cfg.RefreshPath, body, &out); err != nil {
		return "", "", fmt.Errorf("failed to perform token refresh: %w", err)
	}
	if out.Access == "" {
		return "", "", fmt.Errorf("refresh response carried no access token")
	}
	return out.Access, out.Refresh, nil
}

// UserHealth checks the user service health endpoint.
func (c *Client) UserHealth(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.UserHealthPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImageHealth checks the image service health endpoint.
func (c *Client) ImageHealth(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.ImageHealthPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
