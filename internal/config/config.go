package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/mediatrack.db

	// MangaDex (manga/webtoon catalog)
	MangaDexURL      string
	MangaDexCoverURL string
	MangaDexDelay    time.Duration
	MangaDexLimit    int

	// Jikan (anime/novel catalog)
	JikanURL   string
	JikanDelay time.Duration
	JikanLimit int

	// Shared HTTP client settings
	UserAgent   string
	HTTPTimeout time.Duration

	// CSV export timestamps are rendered in this zone
	TimeZone string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MANGADEX_API_URL", "https://api.mangadex.org")
	viper.SetDefault("MANGADEX_COVER_URL", "https://uploads.mangadex.org")
	viper.SetDefault("MANGADEX_DELAY_MS", 200)
	viper.SetDefault("MANGADEX_SEARCH_LIMIT", 15)
	viper.SetDefault("JIKAN_API_URL", "https://api.jikan.moe/v4")
	viper.SetDefault("JIKAN_DELAY_MS", 600)
	viper.SetDefault("JIKAN_SEARCH_LIMIT", 10)
	viper.SetDefault("USER_AGENT", "mediatrack/1.0")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	viper.SetDefault("TIME_ZONE", "Local")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "mediatrack")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile: filepath.Join(configDir, "mediatrack.db"),

		MangaDexURL:      viper.GetString("MANGADEX_API_URL"),
		MangaDexCoverURL: viper.GetString("MANGADEX_COVER_URL"),
		MangaDexDelay:    time.Duration(viper.GetInt("MANGADEX_DELAY_MS")) * time.Millisecond,
		MangaDexLimit:    viper.GetInt("MANGADEX_SEARCH_LIMIT"),

		JikanURL:   viper.GetString("JIKAN_API_URL"),
		JikanDelay: time.Duration(viper.GetInt("JIKAN_DELAY_MS")) * time.Millisecond,
		JikanLimit: viper.GetInt("JIKAN_SEARCH_LIMIT"),

		UserAgent:   viper.GetString("USER_AGENT"),
		HTTPTimeout: time.Duration(viper.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,

		TimeZone: viper.GetString("TIME_ZONE"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.MangaDexURL == "" {
		return nil, fmt.Errorf("MANGADEX_API_URL is required")
	}
	if config.JikanURL == "" {
		return nil, fmt.Errorf("JIKAN_API_URL is required")
	}

	return config, nil
}

// Location resolves the configured time zone. Falls back to the system local
// zone when the name cannot be loaded.
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
