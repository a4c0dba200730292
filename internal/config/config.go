// Package config resolves focuslog runtime settings from defaults, an
// optional YAML file and FOCUSLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/focuslog/internal/model"
)

const (
	EnvDB                   = "FOCUSLOG_DB"
	EnvLog                  = "FOCUSLOG_LOG"
	EnvFocusMinutes         = "FOCUSLOG_FOCUS_MINUTES"
	EnvSeriesDays           = "FOCUSLOG_SERIES_DAYS"
	EnvTagLimit             = "FOCUSLOG_TAG_LIMIT"
	EnvDesktopNotifications = "FOCUSLOG_DESKTOP_NOTIFICATIONS"
	EnvNudgeHour            = "FOCUSLOG_NUDGE_HOUR"
	EnvConfig               = "FOCUSLOG_CONFIG"
)

type RuntimeConfig struct {
	DBPath               string        `yaml:"db_path"`
	LogPath              string        `yaml:"log_path"`
	FocusMinutes         int           `yaml:"focus_minutes"`
	SeriesDays           int           `yaml:"series_days"`
	TagLimit             int           `yaml:"tag_limit"`
	Habits               []model.Habit `yaml:"habits"`
	Moods                []model.Mood  `yaml:"moods"`
	DesktopNotifications bool          `yaml:"desktop_notifications"`
	NudgeHour            int           `yaml:"nudge_hour"`
	NudgeBuffer          int           `yaml:"nudge_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := defaultDataDir()
	return RuntimeConfig{
		DBPath:       filepath.Join(dir, "focuslog.db"),
		LogPath:      filepath.Join(dir, "focuslog.log"),
		FocusMinutes: 25,
		SeriesDays:   7,
		TagLimit:     6,
		Habits:       model.DefaultHabits(),
		Moods:        model.DefaultMoods(),
		NudgeHour:    20,
		NudgeBuffer:  8,
	}
}

// DefaultConfigPath is where Resolve looks when neither a path nor
// $FOCUSLOG_CONFIG is given.
func DefaultConfigPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "focuslog")
	}
	return ".focuslog"
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if c.FocusMinutes <= 0 {
		return fmt.Errorf("config: focus_minutes must be positive, got %d", c.FocusMinutes)
	}
	if c.SeriesDays <= 0 || c.TagLimit <= 0 {
		return errors.New("config: series_days and tag_limit must be positive")
	}
	if len(c.Habits) == 0 {
		return errors.New("config: at least one habit is required")
	}
	if len(c.Moods) == 0 {
		return errors.New("config: at least one mood is required")
	}
	if c.NudgeHour < 0 || c.NudgeHour > 23 {
		return fmt.Errorf("config: nudge_hour must be within 0-23, got %d", c.NudgeHour)
	}
	return nil
}

// LoadFile reads a YAML config on top of the defaults.
func LoadFile(path string) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var fromFile RuntimeConfig
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	cfg := DefaultRuntimeConfig()
	cfg.Merge(fromFile)
	return cfg, nil
}

// Merge copies the non-zero fields of other into c.
func (c *RuntimeConfig) Merge(other RuntimeConfig) {
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.LogPath != "" {
		c.LogPath = other.LogPath
	}
	if other.FocusMinutes > 0 {
		c.FocusMinutes = other.FocusMinutes
	}
	if other.SeriesDays > 0 {
		c.SeriesDays = other.SeriesDays
	}
	if other.TagLimit > 0 {
		c.TagLimit = other.TagLimit
	}
	if len(other.Habits) > 0 {
		c.Habits = normalizeHabits(other.Habits)
	}
	if len(other.Moods) > 0 {
		c.Moods = normalizeMoods(other.Moods)
	}
	if other.DesktopNotifications {
		c.DesktopNotifications = true
	}
	if other.NudgeHour > 0 {
		c.NudgeHour = other.NudgeHour
	}
	if other.NudgeBuffer > 0 {
		c.NudgeBuffer = other.NudgeBuffer
	}
}

func (c RuntimeConfig) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv(EnvDB)); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLog)); v != "" {
		cfg.LogPath = v
	}
	if v, ok := getEnvInt(EnvFocusMinutes); ok && v > 0 {
		cfg.FocusMinutes = v
	}
	if v, ok := getEnvInt(EnvSeriesDays); ok && v > 0 {
		cfg.SeriesDays = v
	}
	if v, ok := getEnvInt(EnvTagLimit); ok && v > 0 {
		cfg.TagLimit = v
	}
	if v, ok := getEnvBool(EnvDesktopNotifications); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt(EnvNudgeHour); ok && v >= 0 && v <= 23 {
		cfg.NudgeHour = v
	}
	return cfg
}

// Resolve layers defaults, the YAML file at path (falling back to
// $FOCUSLOG_CONFIG, then DefaultConfigPath) when it exists, then the
// environment.
func Resolve(path string) (RuntimeConfig, error) {
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg := DefaultRuntimeConfig()
	fromFile, err := LoadFile(path)
	switch {
	case err == nil:
		cfg = fromFile
	case !errors.Is(err, os.ErrNotExist):
		return RuntimeConfig{}, err
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func normalizeHabits(in []model.Habit) []model.Habit {
	out := make([]model.Habit, 0, len(in))
	for _, h := range in {
		h = model.Habit(strings.ToLower(strings.TrimSpace(string(h))))
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}

func normalizeMoods(in []model.Mood) []model.Mood {
	out := make([]model.Mood, 0, len(in))
	for _, m := range in {
		m = model.Mood(strings.ToLower(strings.TrimSpace(string(m))))
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
