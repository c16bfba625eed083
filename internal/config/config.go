// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// ErrEngineTimeoutInvalid is returned when the engine timeout is not a
// positive number of seconds.
var ErrEngineTimeoutInvalid = errors.New("config: CLIPFORGE_ENGINE_TIMEOUT_SEC must be positive")

// Config holds all configuration for the application.
type Config struct {
	// Engine settings
	FFmpegPath       string `env:"CLIPFORGE_FFMPEG_PATH, default=ffmpeg" json:"ffmpeg_path"`
	FFprobePath      string `env:"CLIPFORGE_FFPROBE_PATH, default=ffprobe" json:"ffprobe_path"`
	EngineTimeoutSec int    `env:"CLIPFORGE_ENGINE_TIMEOUT_SEC, default=1800" json:"engine_timeout_sec"`

	// Library settings
	MediaDir  string `env:"CLIPFORGE_MEDIA_DIR, default=media" json:"media_dir"`
	OutputDir string `env:"CLIPFORGE_OUTPUT_DIR" json:"output_dir,omitempty"`

	// Optional S3 settings
	S3Bucket           string `env:"CLIPFORGE_S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"CLIPFORGE_S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"CLIPFORGE_S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"CLIPFORGE_LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"CLIPFORGE_LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// EngineTimeout returns the engine run deadline as a duration.
func (c *Config) EngineTimeout() time.Duration {
	return time.Duration(c.EngineTimeoutSec) * time.Second
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	if c.EngineTimeoutSec <= 0 {
		return ErrEngineTimeoutInvalid
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs. Logs go to stderr so
// stdout stays free for command output.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive
// values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{FFmpegPath: %s, FFprobePath: %s, EngineTimeoutSec: %d, MediaDir: %s, OutputDir: %s, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.FFmpegPath,
		c.FFprobePath,
		c.EngineTimeoutSec,
		c.MediaDir,
		c.OutputDir,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
