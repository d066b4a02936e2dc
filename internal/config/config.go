package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDayEnd         = "23:59"
	defaultStatusInterval = 15 * time.Minute
)

// Config keeps runtime settings for the tracker.
type Config struct {
	DatabasePath   string
	LogSQL         bool
	DayEnd         string
	StatusInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is read first when present; variables
// already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		DatabasePath:   strings.TrimSpace(os.Getenv("HAMSTER_DB")),
		LogSQL:         parseBool(os.Getenv("HAMSTER_LOG_SQL")),
		DayEnd:         strings.TrimSpace(os.Getenv("HAMSTER_DAY_END")),
		StatusInterval: parseInterval(strings.TrimSpace(os.Getenv("HAMSTER_STATUS_INTERVAL_MINUTES"))),
	}

	if cfg.DatabasePath == "" {
		path, err := defaultDatabasePath()
		if err != nil {
			return cfg, err
		}
		cfg.DatabasePath = path
	}

	if cfg.DayEnd == "" {
		cfg.DayEnd = defaultDayEnd
	}

	if cfg.StatusInterval == 0 {
		cfg.StatusInterval = defaultStatusInterval
	}

	return cfg, nil
}

// defaultDatabasePath is where the applet has always kept its database.
func defaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("HAMSTER_DB is not set and home dir is unknown: %w", err)
	}
	return filepath.Join(home, ".gnome2", "hamster-applet", "hamster.db"), nil
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := time.ParseDuration(raw + "m")
	if err != nil || minutes <= 0 {
		return 0
	}
	return minutes
}
