package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/slider"
	"github.com/five82/carousel/internal/state"
)

var errUsage = errors.New("usage: next | prev | goto N | pause | resume | toggle")

// HeadlessOptions configure RunHeadless.
type HeadlessOptions struct {
	ConfigPath string
	DeckPath   string
	Autoplay   *bool
	Interval   time.Duration
	For        time.Duration // zero runs until ctx is cancelled
	Output     io.Writer     // log destination; nil uses stderr
	Input      io.Reader     // optional line-oriented command stream
}

// RunHeadless drives the engine without a terminal UI. Every notification is
// logged to Output. Commands read from Input (next, prev, goto N, pause,
// resume, toggle) trigger transitions the way the UI's keys do.
func RunHeadless(ctx context.Context, opts HeadlessOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.DeckPath, opts.Autoplay, opts.Interval)
	if err != nil {
		return err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger := logging.New(cfg.Log, out)

	d, err := loadDeck(cfg.Deck)
	if err != nil {
		return err
	}

	if opts.For > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.For)
		defer cancel()
	}

	h := newHeadless(cfg.Slider, cfg.Deck, logger.Component("headless"))

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = h.loop.Run(loopCtx)
	}()
	defer func() {
		stopLoop()
		<-loopDone
	}()

	if err := h.loop.Call(ctx, func() error { return h.mount(d, cfg.Slider.InitialSlide) }); err != nil {
		return fmt.Errorf("mount slider: %w", err)
	}

	var wg sync.WaitGroup
	if cfg.Deck != "" {
		decks := NewWatcher(cfg.Deck, cfg.WatchInterval, h.store, logger).Start(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for reloaded := range decks {
				reloaded := reloaded // per-iteration copy (go directive < 1.22)
				h.loop.Post(func() { h.reload(reloaded) })
			}
		}()
	}
	if opts.Input != nil {
		go h.readCommands(ctx, opts.Input)
	}

	<-ctx.Done()
	wg.Wait()
	_ = h.loop.Call(context.Background(), func() error {
		h.close()
		return nil
	})

	snap := h.store.Snapshot()
	h.logger.Info("headless run finished",
		"active", snap.Slider.Transition.Active,
		"events", len(snap.Events),
	)
	return nil
}

// headless owns a slider on a Loop. Everything except the action slots is
// touched only from the loop goroutine.
type headless struct {
	loop     *slider.Loop
	logger   *logging.Logger
	store    *state.Store
	settings slider.Settings
	deckPath string
	bridge   *slider.Bridge
	slider   *slider.Slider

	mu       sync.Mutex
	next     slider.Action
	previous slider.Action
}

func newHeadless(settings slider.Settings, deckPath string, logger *logging.Logger) *headless {
	h := &headless{
		loop:     slider.NewLoop(0),
		logger:   logger,
		store:    state.NewStore(0),
		settings: settings,
		deckPath: deckPath,
	}
	h.bridge = slider.NewBridge(
		func(a slider.Action) { h.setAction(&h.next, a) },
		func(a slider.Action) { h.setAction(&h.previous, a) },
	)
	h.bridge.SetDispatcher(h.loop.Dispatcher())
	h.bridge.SetLogger(logger)
	return h
}

func (h *headless) setAction(slot *slider.Action, a slider.Action) {
	h.mu.Lock()
	*slot = a
	h.mu.Unlock()
}

func (h *headless) action(slot *slider.Action) slider.Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	return *slot
}

func (h *headless) mount(d deck.Deck, initial int) error {
	logger, _ := h.logger.ForMount()

	settings := h.settings
	settings.InitialSlide = initial

	s, err := slider.New(slider.Options{
		Settings:  settings,
		Slides:    d.SliderSlides(),
		Callbacks: h.callbacks(logger),
		Clock:     h.loop.Clock(),
		Logger:    logger,
		Bridge:    h.bridge,
	})
	if err == nil {
		err = s.Mount()
	}
	if err != nil {
		h.store.UpdateDeck(h.deckPath, d.Title, err)
		return err
	}

	h.slider = s
	h.store.UpdateDeck(h.deckPath, d.Title, nil)
	h.sync()
	logger.Info("deck mounted", "deck", d.Title, "slides", len(d.Slides), "active", initial)
	return nil
}

func (h *headless) reload(d deck.Deck) {
	initial := 1
	if h.slider != nil {
		if active := h.slider.Controller().Active(); active >= 1 && active <= len(d.Slides) {
			initial = active
		}
		h.slider.Close()
		h.slider = nil
	}
	if err := h.mount(d, initial); err != nil {
		h.logger.Error("deck reload failed", "error", err)
		return
	}
	h.store.Record(state.Event{Kind: state.EventDeck, Message: "reloaded " + d.Title})
	h.logger.Info("deck reloaded", "deck", d.Title, "slides", len(d.Slides))
}

func (h *headless) close() {
	if h.slider != nil {
		h.sync()
		h.slider.Close()
	}
}

func (h *headless) sync() {
	if h.slider != nil {
		h.store.UpdateSlider(h.slider.Snapshot())
	}
}

func (h *headless) callbacks(logger *logging.Logger) slider.Callbacks {
	return slider.Callbacks{
		OnBeforeChange: func(active, next int) {
			h.store.Record(state.Event{Kind: state.EventBeforeChange, Active: active, Other: next})
			logger.Info("before change", "active", active, "next", next)
		},
		OnChange: func(active, previous int) {
			h.store.Record(state.Event{Kind: state.EventChange, Active: active, Other: previous})
			h.sync()
			logger.Info("change", "active", active, "previous", previous)
		},
		OnAfterChange: func(active, previous int) {
			h.store.Record(state.Event{Kind: state.EventAfterChange, Active: active, Other: previous})
			h.sync()
			logger.Info("after change", "active", active, "previous", previous)
		},
	}
}

func (h *headless) readCommands(ctx context.Context, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := h.command(ctx, line); err != nil {
			if ctx.Err() != nil {
				return
			}
			h.logger.Warn("command failed", "command", line, "error", err)
		}
	}
}

// command runs one input line. next and prev go through the bridge slots;
// the rest are marshalled onto the loop and wait for the result.
func (h *headless) command(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "next":
		return h.runSlot(&h.next)
	case "prev", "previous":
		return h.runSlot(&h.previous)
	case "goto":
		if len(fields) != 2 {
			return errUsage
		}
		target, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("goto %q: %w", fields[1], errUsage)
		}
		return h.onLoop(ctx, func() error { return h.slider.Controller().GoToSlide(target) })
	case "pause":
		return h.onLoop(ctx, func() error { return h.slider.Autoplay().Pause(true) })
	case "resume":
		return h.onLoop(ctx, func() error { return h.slider.Autoplay().Resume() })
	case "toggle":
		return h.onLoop(ctx, func() error { return h.slider.Autoplay().Toggle() })
	default:
		return fmt.Errorf("unknown command %q: %w", fields[0], errUsage)
	}
}

func (h *headless) runSlot(slot *slider.Action) error {
	action := h.action(slot)
	if action == nil {
		return fmt.Errorf("no slider mounted: %w", slider.ErrContextMisuse)
	}
	return action()
}

func (h *headless) onLoop(ctx context.Context, fn func() error) error {
	return h.loop.Call(ctx, func() error {
		err := fn()
		h.sync()
		return err
	})
}
