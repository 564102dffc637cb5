package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the logger and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type record map[string]any

func (r record) num(key string) int {
	v, _ := r[key].(float64)
	return int(v)
}

func parseRecords(t *testing.T, output string) []record {
	t.Helper()
	var records []record
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		var r record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("unparseable log line %q: %v", line, err)
		}
		records = append(records, r)
	}
	return records
}

func byMessage(records []record, msg string) []record {
	var out []record
	for _, r := range records {
		if r["msg"] == msg {
			out = append(out, r)
		}
	}
	return out
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `sliding_duration_ms = 20
sliding_delay_ms = 10
should_autoplay = false
watch_interval_ms = 10

[log]
format = "json"
level = "info"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunHeadless_Commands(t *testing.T) {
	var out syncBuffer
	err := RunHeadless(context.Background(), HeadlessOptions{
		ConfigPath: writeConfig(t),
		For:        400 * time.Millisecond,
		Output:     &out,
		Input:      strings.NewReader("goto 3\n\nnext\nbogus\nprev\n"),
	})
	if err != nil {
		t.Fatalf("RunHeadless error = %v", err)
	}

	records := parseRecords(t, out.String())
	if n := len(byMessage(records, "before change")); n != 3 {
		t.Fatalf("before change logged %d times, want 3\n%s", n, out.String())
	}
	if n := len(byMessage(records, "command failed")); n != 1 {
		t.Fatalf("command failed logged %d times, want 1", n)
	}

	after := byMessage(records, "after change")
	if len(after) != 1 {
		t.Fatalf("after change logged %d times, want 1 (superseded transitions)", len(after))
	}
	if got := after[0].num("active"); got != 3 {
		t.Fatalf("after change active = %d, want 3", got)
	}

	finished := byMessage(records, "headless run finished")
	if len(finished) != 1 || finished[0].num("active") != 3 {
		t.Fatalf("finished = %v, want active 3", finished)
	}
}

func TestRunHeadless_Autoplay(t *testing.T) {
	var out syncBuffer
	autoplay := true
	err := RunHeadless(context.Background(), HeadlessOptions{
		ConfigPath: writeConfig(t),
		Autoplay:   &autoplay,
		Interval:   60 * time.Millisecond,
		For:        500 * time.Millisecond,
		Output:     &out,
	})
	if err != nil {
		t.Fatalf("RunHeadless error = %v", err)
	}

	after := byMessage(parseRecords(t, out.String()), "after change")
	if len(after) < 2 {
		t.Fatalf("autoplay completed %d transitions, want at least 2", len(after))
	}
	if got := after[0].num("previous"); got != 1 {
		t.Fatalf("first transition left slide %d, want 1", got)
	}
}

func TestRunHeadless_DeckReload(t *testing.T) {
	dir := t.TempDir()
	deckPath := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(deckPath, []byte("title: First\nslides:\n  - title: A\n  - title: B\n  - title: C\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	configPath := writeConfig(t)
	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- RunHeadless(context.Background(), HeadlessOptions{
			ConfigPath: configPath,
			DeckPath:   deckPath,
			For:        800 * time.Millisecond,
			Output:     &out,
		})
	}()

	time.Sleep(100 * time.Millisecond)
	// Swap the file in atomically so the watcher never sees a partial write.
	tmp := filepath.Join(dir, "next.yaml")
	if err := os.WriteFile(tmp, []byte("title: Second\nslides:\n  - title: X\n  - title: Y\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(tmp, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	if err := os.Rename(tmp, deckPath); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("RunHeadless error = %v", err)
	}

	records := parseRecords(t, out.String())
	reloaded := byMessage(records, "deck reloaded")
	if len(reloaded) != 1 {
		t.Fatalf("deck reloaded logged %d times, want 1\n%s", len(reloaded), out.String())
	}
	if reloaded[0]["deck"] != "Second" || reloaded[0].num("slides") != 2 {
		t.Fatalf("reload record = %v", reloaded[0])
	}
	if n := len(byMessage(records, "deck mounted")); n != 2 {
		t.Fatalf("deck mounted logged %d times, want 2", n)
	}
}

func TestRunHeadless_BadDeck(t *testing.T) {
	deckPath := filepath.Join(t.TempDir(), "deck.json")
	if err := os.WriteFile(deckPath, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	err := RunHeadless(context.Background(), HeadlessOptions{
		ConfigPath: writeConfig(t),
		DeckPath:   deckPath,
		For:        time.Millisecond,
		Output:     &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "load deck") {
		t.Fatalf("RunHeadless error = %v, want load deck error", err)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	autoplay := true
	cfg, err := loadConfig(writeConfig(t), "~/decks/talk.toml", &autoplay, 3*time.Second)
	if err != nil {
		t.Fatalf("loadConfig error = %v", err)
	}
	if !cfg.Slider.ShouldAutoplay {
		t.Fatal("autoplay override not applied")
	}
	if cfg.Slider.AutoplayDuration != 3*time.Second {
		t.Fatalf("AutoplayDuration = %v, want 3s", cfg.Slider.AutoplayDuration)
	}
	if !filepath.IsAbs(cfg.Deck) || !strings.HasSuffix(cfg.Deck, filepath.Join("decks", "talk.toml")) {
		t.Fatalf("Deck = %q, want expanded path", cfg.Deck)
	}

	if _, err := loadConfig(writeConfig(t), "", nil, -time.Second); err == nil {
		t.Fatal("negative interval accepted")
	}
}

func TestLoadDeck_Builtin(t *testing.T) {
	d, err := loadDeck("")
	if err != nil {
		t.Fatalf("loadDeck error = %v", err)
	}
	if len(d.Slides) != 4 {
		t.Fatalf("len(Slides) = %d, want 4", len(d.Slides))
	}
}
