package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"dropgate/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port          string
	DBPath        string
	ContentDir    string
	PublicBaseURL string
	AssetBaseURL  string
	SweepInterval time.Duration
	PurgeGrace    time.Duration
	MaxUploadSize int64
	LogLevel      string
	LogFormat     string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	publicBaseURL := getEnv("PUBLIC_BASE_URL", constants.DefaultPublicBaseURL)

	return &Config{
		Port:          getEnv("PORT", constants.DefaultPort),
		DBPath:        getEnv("DB_PATH", constants.DefaultDBPath),
		ContentDir:    getEnv("CONTENT_DIR", constants.DefaultContentDir),
		PublicBaseURL: publicBaseURL,
		AssetBaseURL:  getEnv("ASSET_BASE_URL", publicBaseURL+"/content"),
		SweepInterval: getEnvSeconds("SWEEP_INTERVAL_SECONDS", constants.DefaultSweepInterval),
		PurgeGrace:    getEnvSeconds("PURGE_GRACE_SECONDS", constants.DefaultPurgeGrace),
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_BYTES", constants.DefaultMaxUploadSize),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.ContentDir == "" {
		errors = append(errors, "CONTENT_DIR cannot be empty")
	}

	if c.PublicBaseURL == "" {
		errors = append(errors, "PUBLIC_BASE_URL cannot be empty")
	} else if _, err := url.Parse(c.PublicBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("PUBLIC_BASE_URL is not a valid URL: %s", c.PublicBaseURL))
	}

	if c.AssetBaseURL == "" {
		errors = append(errors, "ASSET_BASE_URL cannot be empty")
	} else if _, err := url.Parse(c.AssetBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("ASSET_BASE_URL is not a valid URL: %s", c.AssetBaseURL))
	}

	if c.SweepInterval <= 0 {
		errors = append(errors, fmt.Sprintf("SWEEP_INTERVAL_SECONDS must be positive, got: %s", c.SweepInterval))
	}

	if c.PurgeGrace < 0 {
		errors = append(errors, fmt.Sprintf("PURGE_GRACE_SECONDS cannot be negative, got: %s", c.PurgeGrace))
	}

	if c.MaxUploadSize <= 0 {
		errors = append(errors, fmt.Sprintf("MAX_UPLOAD_BYTES must be positive, got: %d", c.MaxUploadSize))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvSeconds reads an integer number of seconds, falling back on parse failure
func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
