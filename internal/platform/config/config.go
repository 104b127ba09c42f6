package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "ECOSCAN_CONFIG"

// Config holds every tunable of the dashboard. Values are resolved as
// defaults < YAML file < ECOSCAN_* environment variables.
type Config struct {
	Profile   ProfileConfig   `yaml:"profile" envPrefix:"PROFILE_"`
	Milestone MilestoneConfig `yaml:"milestone" envPrefix:"MILESTONE_"`
	Detector  DetectorConfig  `yaml:"detector" envPrefix:"DETECTOR_"`
	Location  LocationConfig  `yaml:"location" envPrefix:"LOCATION_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
}

// ProfileConfig seeds the progress aggregator.
type ProfileConfig struct {
	Name   string `yaml:"name" env:"NAME"`
	Level  int    `yaml:"level" env:"LEVEL"`
	XP     int    `yaml:"xp" env:"XP"`
	Streak int    `yaml:"streak" env:"STREAK"`
}

// MilestoneConfig controls the transient milestone notification.
type MilestoneConfig struct {
	Display time.Duration `yaml:"display" env:"DISPLAY"`
}

// DetectorConfig tunes the detection simulator and the optional plugin.
type DetectorConfig struct {
	MinConfidence    float64       `yaml:"min_confidence" env:"MIN_CONFIDENCE"`
	ConfidenceSpread float64       `yaml:"confidence_spread" env:"CONFIDENCE_SPREAD"`
	ScanDelay        time.Duration `yaml:"scan_delay" env:"SCAN_DELAY"`
	Plugin           PluginConfig  `yaml:"plugin" envPrefix:"PLUGIN_"`
}

// PluginConfig is the manifest of an external detector binary.
type PluginConfig struct {
	Name    string `yaml:"name" env:"NAME"`
	Version string `yaml:"version" env:"VERSION"`
	Binary  string `yaml:"binary" env:"BINARY"`
	SHA256  string `yaml:"sha256" env:"SHA256"`
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
}

// LocationConfig is the origin used by "nearest recycling point".
type LocationConfig struct {
	Lat float64 `yaml:"lat" env:"LAT"`
	Lng float64 `yaml:"lng" env:"LNG"`
}

// LogConfig selects the slog level and, for the TUI, a log file.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Profile:   ProfileConfig{Name: "EcoChampion", Level: 5, XP: 450, Streak: 3},
		Milestone: MilestoneConfig{Display: 3 * time.Second},
		Detector: DetectorConfig{
			MinConfidence:    0.75,
			ConfidenceSpread: 0.24,
			ScanDelay:        2 * time.Second,
		},
		Location: LocationConfig{Lat: 41.7151, Lng: 44.8271},
		Log:      LogConfig{Level: "info"},
	}
}

// New resolves the configuration. path may be empty, in which case
// ECOSCAN_CONFIG is consulted; a missing path means defaults only.
func New(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(configPathEnv)
	}
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ECOSCAN_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Profile.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if c.Profile.Level < 1 {
		return fmt.Errorf("profile level must be at least 1, got %d", c.Profile.Level)
	}
	if c.Profile.XP < 0 {
		return fmt.Errorf("profile xp must be non-negative, got %d", c.Profile.XP)
	}
	if c.Profile.Streak < 0 {
		return fmt.Errorf("profile streak must be non-negative, got %d", c.Profile.Streak)
	}
	if c.Milestone.Display <= 0 {
		return fmt.Errorf("milestone display duration must be positive")
	}
	lo, hi := c.Detector.MinConfidence, c.Detector.MinConfidence+c.Detector.ConfidenceSpread
	if lo < 0 || c.Detector.ConfidenceSpread < 0 || hi > 1 {
		return fmt.Errorf("detector confidence range [%.2f, %.2f] must lie within [0, 1]", lo, hi)
	}
	if c.Detector.ScanDelay < 0 {
		return fmt.Errorf("detector scan delay must be non-negative")
	}
	if c.Location.Lat < -90 || c.Location.Lat > 90 || c.Location.Lng < -180 || c.Location.Lng > 180 {
		return fmt.Errorf("location %.4f,%.4f is out of range", c.Location.Lat, c.Location.Lng)
	}
	return nil
}
