package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestRunLogDirXDGEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := runLogDir()
	if err != nil {
		t.Fatalf("runLogDir returned error: %v", err)
	}
	want := filepath.Join(tmp, "emoji-life")
	if dir != want {
		t.Errorf("dir = %q; want %q", dir, want)
	}
}

func TestRunLogDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := runLogDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	suffix := filepath.Join(".local", "share", "emoji-life")
	if !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}

func TestSaveRunLog(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	if err := saveRunLog(RunLog{Pattern: "pulsar", Width: 20, Height: 20, Generations: 42, PeakPopulation: 48}); err != nil {
		t.Fatalf("saveRunLog: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "emoji-life", "runs.jsonl"))
	if err != nil {
		t.Fatalf("runs.jsonl not created: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Errorf("log entry should end with newline; got: %q", data)
	}
	var got RunLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Pattern != "pulsar" || got.Generations != 42 || got.PeakPopulation != 48 {
		t.Errorf("decoded %+v", got)
	}
}

func TestSaveRunLogAppendsMultiple(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	for i := range 3 {
		if err := saveRunLog(RunLog{Generations: i}); err != nil {
			t.Fatalf("saveRunLog: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(tmp, "emoji-life", "runs.jsonl"))
	if err != nil {
		t.Fatalf("runs.jsonl not found: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 log lines, got %d", len(lines))
	}
}
