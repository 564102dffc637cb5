package ui

import (
	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/slider"
	"github.com/five82/carousel/internal/state"
)

// engine holds the mounted slider and the imperative action slots the bridge
// writes into. Arrow keys go through the slots, so they keep working across
// deck reloads without the key handler knowing which slider is mounted.
type engine struct {
	deck     deck.Deck
	deckPath string
	slider   *slider.Slider
	bridge   *slider.Bridge
	instance string

	next     slider.Action
	previous slider.Action

	autoplayPaused bool
	mountErr       error
}

func newEngine(d deck.Deck, path string, autoplayPaused bool) *engine {
	e := &engine{deck: d, deckPath: path, autoplayPaused: autoplayPaused}
	e.bridge = slider.NewBridge(
		func(a slider.Action) { e.next = a },
		func(a slider.Action) { e.previous = a },
	)
	return e
}

func (e *engine) close() {
	if e.slider != nil {
		e.slider.Close()
	}
}

// mount creates and mounts a slider for d positioned at initial.
func (m *Model) mount(d deck.Deck, initial int) {
	logger, id := m.logger.ForMount()

	settings := m.settings
	settings.InitialSlide = initial

	s, err := slider.New(slider.Options{
		Settings:  settings,
		Slides:    d.SliderSlides(),
		Callbacks: m.callbacks(),
		Clock:     m.clock,
		Logger:    logger,
		Bridge:    m.engine.bridge,
	})
	if err == nil {
		err = s.Mount()
	}
	if err != nil {
		m.engine.mountErr = err
		m.logger.Error("mount failed", "error", err)
		m.store.UpdateDeck(m.engine.deckPath, d.Title, err)
		return
	}

	if m.engine.autoplayPaused && settings.ShouldAutoplay {
		if err := s.Autoplay().Pause(true); err != nil {
			m.logger.Warn("restore autoplay pause failed", "error", err)
		}
	}

	m.engine.deck = d
	m.engine.slider = s
	m.engine.instance = id
	m.engine.mountErr = nil
	m.store.UpdateDeck(m.engine.deckPath, d.Title, nil)
}

// reload tears down the mounted slider and mounts d, keeping the active slide
// when it still exists.
func (m *Model) reload(d deck.Deck) {
	initial := 1
	if s := m.engine.slider; s != nil {
		if active := s.Controller().Active(); active >= 1 && active <= len(d.Slides) {
			initial = active
		}
		s.Close()
		m.engine.slider = nil
	}
	m.mount(d, initial)
	m.store.Record(state.Event{Kind: state.EventDeck, Message: "reloaded " + d.Title})
}

func (m *Model) callbacks() slider.Callbacks {
	store := m.store
	return slider.Callbacks{
		OnBeforeChange: func(active, next int) {
			store.Record(state.Event{Kind: state.EventBeforeChange, Active: active, Other: next})
		},
		OnChange: func(active, previous int) {
			store.Record(state.Event{Kind: state.EventChange, Active: active, Other: previous})
		},
		OnAfterChange: func(active, previous int) {
			store.Record(state.Event{Kind: state.EventAfterChange, Active: active, Other: previous})
		},
	}
}

// activeSlide returns the deck content of the active slide.
func (e *engine) activeSlide() (deck.Slide, bool) {
	s, ok := e.slider.ActiveSlide()
	if !ok {
		return deck.Slide{}, false
	}
	content, ok := s.Content.(deck.Slide)
	return content, ok
}
