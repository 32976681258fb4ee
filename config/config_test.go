package config_test

import (
	"testing"

	"github.com/Sanidhya49/binsavvy-cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.BaseURL)
	assert.Equal(t, "/users/login/", cfg.LoginPath)
	assert.Equal(t, "/auth/refresh/", cfg.RefreshPath)
	assert.Equal(t, 5, cfg.ExpiryThresholdMinutes)
	assert.Equal(t, 4, cfg.UploadWorkers)
	assert.Equal(t, 30, cfg.RequestTimeoutSeconds)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BINSAVVY_API_URL", "https://api.binsavvy.example/v1/")
	t.Setenv("BINSAVVY_REFRESH_PATH", "/token/refresh/")
	t.Setenv("BINSAVVY_EXPIRY_THRESHOLD", "10")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.binsavvy.example/v1", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "/token/refresh/", cfg.RefreshPath)
	assert.Equal(t, 10, cfg.ExpiryThresholdMinutes)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("BINSAVVY_EXPIRY_THRESHOLD", "0")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_RejectsBadWorkerCount(t *testing.T) {
	t.Setenv("BINSAVVY_UPLOAD_WORKERS", "-1")

	_, err := config.Load()
	require.Error(t, err)
}
