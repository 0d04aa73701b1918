package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/petems/recorder/pkg/record"
)

type Config struct {
	LogLevel      string       `toml:"log_level"`
	RecordingsDir string       `toml:"recordings_dir"`
	Record        RecordConfig `toml:"record"`
}

// RecordConfig mirrors record.Options for the fields that can be persisted.
type RecordConfig struct {
	Program        string  `toml:"program"` // "rec", "sox" or "arecord"
	Path           string  `toml:"path"`
	Device         string  `toml:"device"`
	SampleRate     int     `toml:"sample_rate"`
	Threshold      float64 `toml:"threshold"`       // percent
	ThresholdStart string  `toml:"threshold_start"` // raw sox level, e.g. "2%" or "-45d"
	ThresholdEnd   string  `toml:"threshold_end"`
	Silence        string  `toml:"silence"`
	Compress       bool    `toml:"compress"`
	Verbose        bool    `toml:"verbose"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		RecordingsDir: RecordingsPath(),
		Record: RecordConfig{
			Program:    string(record.DefaultProgram),
			SampleRate: record.DefaultSampleRate,
			Threshold:  record.DefaultThreshold,
			Silence:    record.DefaultSilence,
		},
	}
}

// Load reads the config from disk, falling back to defaults, then applies
// environment overrides.
func Load() (*Config, error) {
	return loadFrom(configPath())
}

func loadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		// Keys present in the file replace the defaults; the rest stay.
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.RecordingsDir = expandTilde(cfg.RecordingsDir)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("RECORDER_PROGRAM"); v != "" {
		cfg.Record.Program = v
	}
	if v := os.Getenv("RECORDER_DEVICE"); v != "" {
		cfg.Record.Device = v
	}
	if v := os.Getenv("RECORDER_SAMPLE_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RECORDER_SAMPLE_RATE %q: %w", v, err)
		}
		cfg.Record.SampleRate = rate
	}
	if v := os.Getenv("RECORDER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RECORDER_RECORDINGS_DIR"); v != "" {
		cfg.RecordingsDir = v
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	return c.saveTo(configPath())
}

func (c *Config) saveTo(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.Encode()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Options converts the record section into recording options.
func (c *Config) Options() record.Options {
	r := c.Record
	return record.Options{
		SampleRate:     r.SampleRate,
		Compress:       r.Compress,
		Threshold:      record.Percent(r.Threshold),
		ThresholdStart: r.ThresholdStart,
		ThresholdEnd:   r.ThresholdEnd,
		Silence:        r.Silence,
		Verbose:        r.Verbose,
		Program:        record.Program(r.Program),
		Device:         r.Device,
		Path:           r.Path,
	}
}

// Path returns the config file location.
func Path() string { return configPath() }

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "recorder", "config.toml")
}

// RecordingsPath returns the default directory recordings are written to
func RecordingsPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Recordings")
	}
	return "Recordings"
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
