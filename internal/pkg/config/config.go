package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds process settings read from the environment (.env is loaded by godotenv/autoload in main).
type Config struct {
	Port     int
	DBURL    string
	Store    string
	LogLevel string

	// ExactAlarmsAllowed is the capability the timer service reports through CanScheduleExact.
	ExactAlarmsAllowed bool
	Use24HourClock     bool
	// RingtoneCommand is an argv (split on spaces) started for each alarm. Empty means log-only.
	RingtoneCommand []string

	LineChannelSecret string
	LineChannelToken  string
	LineNotifyTo      string
}

// Warnings collects messages about defaulted values so the caller can log them once a logger exists.
type Warnings []string

// Load reads the configuration from environment variables.
func Load() (*Config, Warnings, error) {
	var warns Warnings
	cfg := &Config{}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
		warns = append(warns, "PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, warns, fmt.Errorf("invalid PORT %q", portStr)
	}
	cfg.Port = port

	cfg.DBURL = os.Getenv("ALARM_DB_URL")
	if cfg.DBURL == "" {
		cfg.DBURL = "alarms.db"
		warns = append(warns, "ALARM_DB_URL environment variable not set, defaulting to 'alarms.db'")
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(os.Getenv("ALARM_STORE")))
	switch cfg.Store {
	case "":
		cfg.Store = StoreSQLite
	case StoreSQLite, StoreMemory:
	default:
		return nil, warns, fmt.Errorf("invalid ALARM_STORE %q (want %s or %s)", cfg.Store, StoreSQLite, StoreMemory)
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")

	if cfg.ExactAlarmsAllowed, err = boolEnv("EXACT_ALARMS_ALLOWED", true); err != nil {
		return nil, warns, err
	}
	if cfg.Use24HourClock, err = boolEnv("USE_24_HOUR_CLOCK", true); err != nil {
		return nil, warns, err
	}

	cfg.RingtoneCommand = strings.Fields(os.Getenv("RINGTONE_COMMAND"))

	cfg.LineChannelSecret = os.Getenv("CHANNEL_SECRET")
	cfg.LineChannelToken = os.Getenv("CHANNEL_ACCESS_TOKEN")
	cfg.LineNotifyTo = os.Getenv("LINE_NOTIFY_TO")
	if !cfg.LineEnabled() && (cfg.LineChannelSecret != "" || cfg.LineChannelToken != "" || cfg.LineNotifyTo != "") {
		warns = append(warns, "CHANNEL_SECRET, CHANNEL_ACCESS_TOKEN and LINE_NOTIFY_TO must all be set for LINE notifications; falling back to log notifications")
	}

	return cfg, warns, nil
}

// LineEnabled reports whether LINE push notifications are fully configured.
func (c *Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != "" && c.LineNotifyTo != ""
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
