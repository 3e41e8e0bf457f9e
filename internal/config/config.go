package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds process-environment defaults. Command-line flags override these.
type Config struct {
	Format      string `envconfig:"FORMAT" default:"best"`
	TempDir     string `envconfig:"TEMP_DIR" default:".clipzo-temp"`
	YtdlpPath   string `envconfig:"YTDLP_PATH"`
	FFmpegPath  string `envconfig:"FFMPEG_PATH"`
	HistoryPath string `envconfig:"HISTORY_PATH"`
	UserAgent   string `envconfig:"USER_AGENT"`
}

// Load reads CLIPZO_* environment variables and fills in derived defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("clipzo", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %v", err)
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = defaultHistoryPath()
	}
	return cfg, nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".clipzo", "history.db")
	}
	return filepath.Join(home, ".local", "share", "clipzo", "history.db")
}
