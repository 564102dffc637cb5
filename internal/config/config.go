package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/carousel/internal/slider"
)

// Config is the resolved carousel configuration.
type Config struct {
	Slider        slider.Settings
	Deck          string // absolute path, empty when no deck is configured
	WatchInterval time.Duration
	Log           LogConfig
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

const (
	defaultConfigPath    = "~/.config/carousel/config.toml"
	defaultLogFile       = "~/.local/state/carousel/carousel.log"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultWatchInterval = 2 * time.Second
)

type rawConfig struct {
	InitialSlide               *int     `toml:"initial_slide"`
	SlidingDurationMS          *int     `toml:"sliding_duration_ms"`
	SlidingDelayMS             *int     `toml:"sliding_delay_ms"`
	SafetyFactor               *float64 `toml:"safety_factor"`
	ShouldAutoplay             *bool    `toml:"should_autoplay"`
	AutoplayDurationMS         *int     `toml:"autoplay_duration_ms"`
	ShouldDisplayButtons       *bool    `toml:"should_display_buttons"`
	ShouldSlideOnArrowKeypress *bool    `toml:"should_slide_on_arrow_keypress"`
	Deck                       string   `toml:"deck"`
	WatchIntervalMS            *int     `toml:"watch_interval_ms"`
	Log                        struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		File   string `toml:"file"`
	} `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Slider:        slider.DefaultSettings(),
		WatchInterval: defaultWatchInterval,
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			File:   mustExpand(defaultLogFile),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the carousel config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := raw.apply(&cfg, filepath.Dir(resolved)); err != nil {
		return Config{}, fmt.Errorf("validate config %s: %w", resolved, err)
	}
	return cfg, nil
}

func (r rawConfig) apply(cfg *Config, baseDir string) error {
	s := &cfg.Slider
	if r.InitialSlide != nil {
		if *r.InitialSlide < 1 {
			return fmt.Errorf("initial_slide must be at least 1, got %d", *r.InitialSlide)
		}
		s.InitialSlide = *r.InitialSlide
	}
	if r.SlidingDurationMS != nil {
		if *r.SlidingDurationMS < 0 {
			return fmt.Errorf("sliding_duration_ms must not be negative, got %d", *r.SlidingDurationMS)
		}
		s.SlidingDuration = millis(*r.SlidingDurationMS)
	}
	if r.SlidingDelayMS != nil {
		if *r.SlidingDelayMS < 0 {
			return fmt.Errorf("sliding_delay_ms must not be negative, got %d", *r.SlidingDelayMS)
		}
		s.SlidingDelay = millis(*r.SlidingDelayMS)
	}
	if r.SafetyFactor != nil {
		if *r.SafetyFactor < 1 {
			return fmt.Errorf("safety_factor must be at least 1, got %g", *r.SafetyFactor)
		}
		s.SafetyFactor = *r.SafetyFactor
	}
	if r.ShouldAutoplay != nil {
		s.ShouldAutoplay = *r.ShouldAutoplay
	}
	if r.AutoplayDurationMS != nil {
		if *r.AutoplayDurationMS <= 0 {
			return fmt.Errorf("autoplay_duration_ms must be positive, got %d", *r.AutoplayDurationMS)
		}
		s.AutoplayDuration = millis(*r.AutoplayDurationMS)
	}
	if r.ShouldDisplayButtons != nil {
		s.ShouldDisplayButtons = *r.ShouldDisplayButtons
	}
	if r.ShouldSlideOnArrowKeypress != nil {
		s.ShouldSlideOnArrowKeypress = *r.ShouldSlideOnArrowKeypress
	}
	if r.WatchIntervalMS != nil {
		if *r.WatchIntervalMS <= 0 {
			return fmt.Errorf("watch_interval_ms must be positive, got %d", *r.WatchIntervalMS)
		}
		cfg.WatchInterval = millis(*r.WatchIntervalMS)
	}

	if deck := strings.TrimSpace(r.Deck); deck != "" {
		resolved, err := resolveRelative(deck, baseDir)
		if err != nil {
			return fmt.Errorf("deck: %w", err)
		}
		cfg.Deck = resolved
	}

	if level := strings.TrimSpace(r.Log.Level); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if format := strings.TrimSpace(r.Log.Format); format != "" {
		format = strings.ToLower(format)
		if format != "text" && format != "json" {
			return fmt.Errorf("log.format must be text or json, got %q", format)
		}
		cfg.Log.Format = format
	}
	if file := strings.TrimSpace(r.Log.File); file != "" {
		cfg.Log.File = mustExpand(file)
	}
	return nil
}

// ResolveDeckPath expands a deck path given on the command line.
func ResolveDeckPath(path string) (string, error) {
	return expandPath(path)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// resolveRelative interprets relative paths against baseDir, so a deck named
// in the config file sits next to it.
func resolveRelative(path, baseDir string) (string, error) {
	if strings.HasPrefix(path, "~") || filepath.IsAbs(path) {
		return expandPath(path)
	}
	return expandPath(filepath.Join(baseDir, path))
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
