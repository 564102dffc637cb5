package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/carousel/internal/slider"
)

// DefaultHistory is the number of notifications kept when no limit is set.
const DefaultHistory = 50

// EventKind classifies a recorded notification.
type EventKind int

const (
	// EventBeforeChange is a transition request; Other is the target.
	EventBeforeChange EventKind = iota
	// EventChange is the mid-transition notification; Other is the previous slide.
	EventChange
	// EventAfterChange is a completed transition; Other is the previous slide.
	EventAfterChange
	// EventAutoplay is a play/pause toggle; Message holds the new state.
	EventAutoplay
	// EventDeck is a deck reload; Message describes it.
	EventDeck
)

// String returns a short label for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBeforeChange:
		return "before"
	case EventChange:
		return "change"
	case EventAfterChange:
		return "after"
	case EventAutoplay:
		return "autoplay"
	case EventDeck:
		return "deck"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one entry in the notification history.
type Event struct {
	Kind EventKind
	// Active is the slide the notification is about; Other is the next slide
	// for EventBeforeChange and the previous slide otherwise.
	Active  int
	Other   int
	Message string
	At      time.Time
}

// String formats the event for status lines and headless logs.
func (e Event) String() string {
	switch e.Kind {
	case EventBeforeChange:
		return fmt.Sprintf("before %d → %d", e.Active, e.Other)
	case EventChange, EventAfterChange:
		return fmt.Sprintf("%s %d (from %d)", e.Kind, e.Active, e.Other)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Slider    slider.Snapshot
	DeckPath  string
	DeckTitle string
	// Events holds the most recent notifications, oldest first.
	Events              []Event
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // consecutive deck reload failures
}

// LastEvent returns the newest recorded notification.
func (s Snapshot) LastEvent() (Event, bool) {
	if len(s.Events) == 0 {
		return Event{}, false
	}
	return s.Events[len(s.Events)-1], true
}

// IsStale reports whether the deck on screen no longer matches the file
// because reloads keep failing.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	limit    int
}

// NewStore returns a store keeping at most limit events. Zero uses
// DefaultHistory.
func NewStore(limit int) *Store {
	return &Store{limit: limit}
}

// UpdateSlider replaces the slider portion of the snapshot.
func (s *Store) UpdateSlider(snap slider.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Slider = snap
	s.snapshot.LastUpdated = time.Now()
}

// Record appends ev to the bounded history. A zero At is stamped with now.
func (s *Store) Record(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	limit := s.limit
	if limit <= 0 {
		limit = DefaultHistory
	}
	s.snapshot.Events = append(s.snapshot.Events, ev)
	if over := len(s.snapshot.Events) - limit; over > 0 {
		s.snapshot.Events = append([]Event(nil), s.snapshot.Events[over:]...)
	}
	s.snapshot.LastUpdated = ev.At
}

// UpdateDeck records the outcome of a deck load. When err is non-nil the
// previous deck information is kept but the error is recorded for visibility.
func (s *Store) UpdateDeck(path, title string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.DeckPath = path
	s.snapshot.DeckTitle = title
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Events = cloneEvents(s.snapshot.Events)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneEvents(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}
	dup := make([]Event, len(events))
	copy(dup, events)
	return dup
}
