package game

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// RunLog records statistics gathered during one session.
type RunLog struct {
	Started         time.Time `json:"started"`
	Duration        string    `json:"duration"`
	Pattern         string    `json:"pattern"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	Wrap            bool      `json:"wrap"`
	Seed            int64     `json:"seed"`
	Theme           string    `json:"theme"`
	Generations     int       `json:"generations"`
	PeakPopulation  int       `json:"peak_population"`
	FinalPopulation int       `json:"final_population"`
}

// saveRunLog appends log as a single JSON line to runs.jsonl.
func saveRunLog(log RunLog) error {
	dir, err := runLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "create %s", dir)
	}
	path := filepath.Join(dir, "runs.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return eris.Wrap(err, "encode run log")
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}

// runLogDir returns the directory where run logs are stored.
// Uses the XDG data dir: $XDG_DATA_HOME/emoji-life,
// defaulting to ~/.local/share/emoji-life.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", eris.Wrap(err, "locate home directory")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "emoji-life"), nil
}
