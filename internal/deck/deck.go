package deck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/carousel/internal/slider"
)

// Format identifies a deck file encoding.
type Format string

const (
	// FormatTOML is used for .toml files.
	FormatTOML Format = "toml"
	// FormatYAML is used for .yaml and .yml files.
	FormatYAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat is returned for deck files with an unknown extension.
	ErrUnsupportedFormat = errors.New("deck: unsupported format")
	// ErrEmptyDeck is returned when a deck file declares no slides.
	ErrEmptyDeck = errors.New("deck: no slides")
)

// Deck is a titled list of slides.
type Deck struct {
	Title    string  `toml:"title" yaml:"title"`
	Subtitle string  `toml:"subtitle" yaml:"subtitle"`
	Slides   []Slide `toml:"slides" yaml:"slides"`
}

// Slide is the renderable content of one slide. The engine treats it as
// opaque slider.Slide content.
type Slide struct {
	Title          string `toml:"title" yaml:"title"`
	Subtitle       string `toml:"subtitle" yaml:"subtitle"`
	Body           string `toml:"body" yaml:"body"`
	NavDescription string `toml:"nav_description" yaml:"nav_description"`
	Background     string `toml:"background" yaml:"background"`
}

// NavLabel returns the side-nav label for the slide.
func (s Slide) NavLabel() string {
	if s.NavDescription != "" {
		return s.NavDescription
	}
	return s.Title
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads and validates the deck at path.
func Load(path string) (Deck, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Deck{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck: %w", err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return Deck{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates deck data.
func Parse(data []byte, format Format) (Deck, error) {
	var d Deck
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &d); err != nil {
			return Deck{}, fmt.Errorf("parse deck: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return Deck{}, fmt.Errorf("parse deck: %w", err)
		}
	default:
		return Deck{}, fmt.Errorf("format %q: %w", format, ErrUnsupportedFormat)
	}
	d.normalize()
	if err := d.Validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

// Validate checks that the deck has slides and that backgrounds are colours
// lipgloss understands.
func (d Deck) Validate() error {
	if len(d.Slides) == 0 {
		return ErrEmptyDeck
	}
	for i, s := range d.Slides {
		if s.Background != "" && !validColor(s.Background) {
			return fmt.Errorf("slide %d: invalid background %q", i+1, s.Background)
		}
	}
	return nil
}

// SliderSlides numbers the deck's slides 1..N for the engine.
func (d Deck) SliderSlides() []slider.Slide {
	contents := make([]any, len(d.Slides))
	for i, s := range d.Slides {
		contents[i] = s
	}
	return slider.FromContents(contents...)
}

// Builtin returns the deck shown when none is configured.
func Builtin() Deck {
	return Deck{
		Title:    "Basic Slider",
		Subtitle: "Arrow keys, digits and space drive the carousel",
		Slides: []Slide{
			{Title: "Giau Pass", NavDescription: "Giau Pass - Italy", Background: "#2E4057"},
			{Title: "Bogliasco", NavDescription: "Bogliasco - Italy", Background: "#4F6D7A"},
			{Title: "County Clare", NavDescription: "County Clare - Ireland", Background: "#3A5A40"},
			{Title: "Crater Rock", NavDescription: "Crater Rock, OR - United States", Background: "#6B4226"},
		},
	}
}

func (d *Deck) normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Subtitle = strings.TrimSpace(d.Subtitle)
	for i := range d.Slides {
		s := &d.Slides[i]
		s.Title = strings.TrimSpace(s.Title)
		s.Subtitle = strings.TrimSpace(s.Subtitle)
		s.Body = strings.TrimRight(s.Body, "\n")
		s.NavDescription = strings.TrimSpace(s.NavDescription)
		s.Background = strings.TrimSpace(s.Background)
		if s.Title == "" {
			s.Title = fmt.Sprintf("Slide %d", i+1)
		}
	}
}

// validColor accepts #RGB, #RRGGBB and ANSI 256 colour numbers.
func validColor(c string) bool {
	if strings.HasPrefix(c, "#") {
		hex := c[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return false
			}
		}
		return true
	}
	n := 0
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
		if n > 255 {
			return false
		}
	}
	return true
}
