package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for the client. Endpoint
// paths are configuration rather than constants so a deployment can remap
// them without a rebuild.
type Config struct {
	// Base URL of the BinSavvy API, without a trailing slash.
	BaseURL string `env:"BINSAVVY_API_URL" envDefault:"http://localhost:8000/api"`

	// Path of the local sqlite database. Empty means ~/.binsavvy/binsavvy.db.
	DatabasePath string `env:"BINSAVVY_DB"`

	// Endpoint paths, relative to BaseURL.
	LoginPath       string `env:"BINSAVVY_LOGIN_PATH" envDefault:"/users/login/"`
	RegisterPath    string `env:"BINSAVVY_REGISTER_PATH" envDefault:"/users/register/"`
	LogoutPath      string `env:"BINSAVVY_LOGOUT_PATH" envDefault:"/users/logout/"`
	RefreshPath     string `env:"BINSAVVY_REFRESH_PATH" envDefault:"/auth/refresh/"`
	UserHealthPath  string `env:"BINSAVVY_USER_HEALTH_PATH" envDefault:"/users/health/"`
	ImageHealthPath string `env:"BINSAVVY_IMAGE_HEALTH_PATH" envDefault:"/images/health/"`
	UploadPath      string `env:"BINSAVVY_UPLOAD_PATH" envDefault:"/images/upload/"`
	ImagesPath      string `env:"BINSAVVY_IMAGES_PATH" envDefault:"/images/"`
	AnalyticsPath   string `env:"BINSAVVY_ANALYTICS_PATH" envDefault:"/admin/analytics/"`
	ReportsPath     string `env:"BINSAVVY_REPORTS_PATH" envDefault:"/admin/reports/"`

	// Minutes before expiry at which a token counts as expiring soon and the
	// scheduler refreshes it.
	ExpiryThresholdMinutes int `env:"BINSAVVY_EXPIRY_THRESHOLD" envDefault:"5"`

	// Worker count for directory batch uploads.
	UploadWorkers int `env:"BINSAVVY_UPLOAD_WORKERS" envDefault:"4"`

	// HTTP timeout for API calls, in seconds.
	RequestTimeoutSeconds int `env:"BINSAVVY_REQUEST_TIMEOUT" envDefault:"30"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.ExpiryThresholdMinutes <= 0 {
		return nil, fmt.Errorf("expiry threshold must be positive, got %d", cfg.ExpiryThresholdMinutes)
	}
	if cfg.UploadWorkers <= 0 {
		return nil, fmt.Errorf("upload worker count must be positive, got %d", cfg.UploadWorkers)
	}
	return &cfg, nil
}
