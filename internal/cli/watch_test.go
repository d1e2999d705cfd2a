package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidefit/pkg/pipeline"
)

func newTestWatcher(t *testing.T, deck string, logs *bytes.Buffer) *deckWatcher {
	t.Helper()
	logger := newLogger(logs, log.DebugLevel)
	opts := pipeline.Options{Mode: pipeline.ModeScreen, Logger: logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	return newDeckWatcher(pipeline.NewRunner(nil, nil, logger), deck, "", opts, logger)
}

func TestDeckWatcherPass(t *testing.T) {
	dir := t.TempDir()
	deck := writeDeck(t, dir)

	var logs bytes.Buffer
	w := newTestWatcher(t, deck, &logs)

	if w.relevant(filepath.Join(dir, "chart.png")) {
		t.Error("assets are unknown before the first pass")
	}
	w.pass(context.Background())

	if _, err := os.Stat(filepath.Join(dir, "talk.json")); err != nil {
		t.Fatalf("pass should write the snapshot: %v", err)
	}
	if !w.relevant(deck) {
		t.Error("the deck itself is always relevant")
	}
	if !w.relevant(filepath.Join(dir, "chart.png")) {
		t.Error("referenced images become relevant after a pass")
	}
	if w.relevant(filepath.Join(dir, "notes.txt")) {
		t.Error("unrelated files are not relevant")
	}
	if !strings.Contains(logs.String(), "Fitted 2 slides") {
		t.Errorf("pass should log progress, got:\n%s", logs.String())
	}
}

func TestDeckWatcherSkipsUnchangedDeck(t *testing.T) {
	dir := t.TempDir()
	deck := writeDeck(t, dir)

	var logs bytes.Buffer
	w := newTestWatcher(t, deck, &logs)
	w.pass(context.Background())

	out := filepath.Join(dir, "talk.json")
	if err := os.Remove(out); err != nil {
		t.Fatal(err)
	}
	w.pass(context.Background())
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("an unchanged deck should not be rewritten")
	}

	if err := os.WriteFile(deck, []byte("# Talk\n\n## Changed\nNew text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.pass(context.Background())
	if _, err := os.Stat(out); err != nil {
		t.Errorf("a changed deck should be rewritten: %v", err)
	}
}

func TestDeckWatcherLogsOverflow(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("- a list item that takes a line\n", 40)
	deck := filepath.Join(dir, "long.md")
	if err := os.WriteFile(deck, []byte("# Talk\n\n## Long\n"+long), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	w := newTestWatcher(t, deck, &logs)
	w.pass(context.Background())

	if !strings.Contains(logs.String(), "slide overflows") {
		t.Errorf("text-only overflow should be logged, got:\n%s", logs.String())
	}
}

func TestDeckWatcherDirs(t *testing.T) {
	dir := t.TempDir()
	deck := writeDeck(t, dir)
	w := newTestWatcher(t, deck, &bytes.Buffer{})

	dirs := w.dirs()
	abs, _ := filepath.Abs(dir)
	if len(dirs) != 1 || dirs[0] != abs {
		t.Errorf("dirs() = %v, want [%s]", dirs, abs)
	}
}
