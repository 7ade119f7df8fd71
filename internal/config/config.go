// ABOUTME: Singsmart configuration: JSON file, .env file, then SINGSMART_* environment overrides.
// ABOUTME: Also builds the storage backend and coach options from the settings.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/storage"
	"github.com/joho/godotenv"
)

// Defaults for unset fields.
const (
	DefaultBackend = "memory"
	DefaultAddr    = ":5000"
	DefaultLogMode = "dev"
	DBFileName     = "singsmart.db"
	envPrefix      = "SINGSMART_"
)

// Config stores singsmart configuration.
type Config struct {
	// Backend selects the storage backend: "memory" (default) or "sqlite".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage. SQLite puts singsmart.db here.
	// Supports ~ expansion. Defaults to ~/.local/share/singsmart.
	DataDir string `json:"data_dir,omitempty"`

	// Addr is the HTTP listen address.
	Addr string `json:"addr,omitempty"`

	// LogMode is "dev" or "prod".
	LogMode string `json:"log_mode,omitempty"`

	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string `json:"cors_origins,omitempty"`

	// FastUnlock starts new users in phase 3, week 9.
	FastUnlock bool `json:"fast_unlock,omitempty"`

	// MinutesPolicy is "every" (default) or "first".
	MinutesPolicy string `json:"minutes_policy,omitempty"`

	WeeklyGoalMinutes int `json:"weekly_goal_minutes,omitempty"`

	// StatsWindowDays limits dashboard stats to recent days. Zero means all time.
	StatsWindowDays int `json:"stats_window_days,omitempty"`

	// StreakCheck is the HH:MM local time of the daily streak check.
	StreakCheck string `json:"streak_check,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "memory".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return DefaultBackend
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetAddr returns the listen address, defaulting to DefaultAddr.
func (c *Config) GetAddr() string {
	if c.Addr == "" {
		return DefaultAddr
	}
	return c.Addr
}

// GetLogMode returns the log mode, defaulting to "dev".
func (c *Config) GetLogMode() string {
	if c.LogMode == "" {
		return DefaultLogMode
	}
	return c.LogMode
}

// Validate rejects settings the program cannot run with.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	switch c.GetLogMode() {
	case "dev", "prod":
	default:
		return fmt.Errorf("unknown log mode: %q", c.LogMode)
	}
	if c.MinutesPolicy != "" && !coach.IsValidMinutesPolicy(c.MinutesPolicy) {
		return fmt.Errorf("unknown minutes policy: %q", c.MinutesPolicy)
	}
	if c.WeeklyGoalMinutes < 0 {
		return fmt.Errorf("weekly_goal_minutes must not be negative")
	}
	if c.StatsWindowDays < 0 {
		return fmt.Errorf("stats_window_days must not be negative")
	}
	return nil
}

// CoachOptions translates the settings into coach.Options.
func (c *Config) CoachOptions() coach.Options {
	opts := coach.Options{
		NewUserPhase:      1,
		MinutesPolicy:     coach.MinutesPolicy(c.MinutesPolicy),
		WeeklyGoalMinutes: c.WeeklyGoalMinutes,
		StatsWindow:       time.Duration(c.StatsWindowDays) * 24 * time.Hour,
	}
	if c.FastUnlock {
		opts.NewUserPhase = 3
	}
	return opts
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates the configured Repository and seeds its catalog.
func (c *Config) OpenStorage() (storage.Repository, error) {
	var repo storage.Repository
	switch backend := c.GetBackend(); backend {
	case "memory":
		repo = storage.NewMemoryStore()
	case "sqlite":
		db, err := storage.Open(filepath.Join(c.GetDataDir(), DBFileName))
		if err != nil {
			return nil, err
		}
		repo = db
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}

	if err := storage.Seed(repo); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return repo, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "singsmart", "config.json")
}

// Load reads the config file, then .env from the working directory, then
// SINGSMART_* environment variables. Later sources win.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// loadDotEnv exports variables from path without overriding ones already set.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
		return nil
	}

	str("BACKEND", &c.Backend)
	str("DATA_DIR", &c.DataDir)
	str("ADDR", &c.Addr)
	str("LOG_MODE", &c.LogMode)
	str("MINUTES_POLICY", &c.MinutesPolicy)
	str("STREAK_CHECK", &c.StreakCheck)

	if v, ok := lookup(envPrefix + "CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	if v, ok := lookup(envPrefix + "FAST_UNLOCK"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sFAST_UNLOCK: %w", envPrefix, err)
		}
		c.FastUnlock = b
	}
	if err := integer("WEEKLY_GOAL_MINUTES", &c.WeeklyGoalMinutes); err != nil {
		return err
	}
	return integer("STATS_WINDOW_DAYS", &c.StatsWindowDays)
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
