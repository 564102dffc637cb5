package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/carousel/internal/config"
	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/prefs"
	"github.com/five82/carousel/internal/state"
	"github.com/five82/carousel/internal/ui"
)

// Options configure the carousel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/carousel/prefs.toml
	DeckPath   string // overrides the configured deck
	Autoplay   *bool  // overrides should_autoplay when set
	Interval   time.Duration
}

// Run boots the carousel TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.DeckPath, opts.Autoplay, opts.Interval)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	d, err := loadDeck(cfg.Deck)
	if err != nil {
		return err
	}
	logger.Info("carousel starting",
		"deck", cfg.Deck,
		"slides", len(d.Slides),
		"autoplay", cfg.Slider.ShouldAutoplay,
	)

	store := state.NewStore(0)

	var decks <-chan deck.Deck
	if cfg.Deck != "" {
		decks = NewWatcher(cfg.Deck, cfg.WatchInterval, store, logger).Start(ctx)
	}

	return ui.Run(ui.Options{
		Context:        ctx,
		Settings:       cfg.Slider,
		Deck:           d,
		DeckPath:       cfg.Deck,
		Store:          store,
		Logger:         logger,
		LogPath:        cfg.Log.File,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		AutoplayPaused: userPrefs.AutoplayPaused,
		Decks:          decks,
	})
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(path, deckPath string, autoplay *bool, interval time.Duration) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if deckPath != "" {
		resolved, err := config.ResolveDeckPath(deckPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve deck path: %w", err)
		}
		cfg.Deck = resolved
	}
	if autoplay != nil {
		cfg.Slider.ShouldAutoplay = *autoplay
	}
	if interval < 0 {
		return config.Config{}, fmt.Errorf("autoplay interval must be positive, got %s", interval)
	}
	if interval > 0 {
		cfg.Slider.AutoplayDuration = interval
	}
	return cfg, nil
}

// loadDeck reads the deck at path, or returns the built-in deck when no path
// is configured.
func loadDeck(path string) (deck.Deck, error) {
	if path == "" {
		return deck.Builtin(), nil
	}
	d, err := deck.Load(path)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("load deck: %w", err)
	}
	return d, nil
}
