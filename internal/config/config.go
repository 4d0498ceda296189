package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"emoji-life/internal/grid"
)

// Config is the runtime configuration shared by every command. Values come
// from defaults, then an optional key=value file, then LIFE_* environment
// variables, then explicitly set command-line flags.
type Config struct {
	Width        int     `config:"LIFE_WIDTH"`
	Height       int     `config:"LIFE_HEIGHT"`
	Wrap         bool    `config:"LIFE_WRAP"`
	TickMillis   int     `config:"LIFE_TICK_MS"`
	Pattern      string  `config:"LIFE_PATTERN"`
	PatternFile  string  `config:"LIFE_PATTERN_FILE"`
	Density      float64 `config:"LIFE_DENSITY"`
	Seed         int64   `config:"LIFE_SEED"`
	Theme        string  `config:"LIFE_THEME"`
	SpawnEvery   int     `config:"LIFE_SPAWN_EVERY"`
	SpawnPattern string  `config:"LIFE_SPAWN_PATTERN"`
	FadeSteps    int     `config:"LIFE_FADE_STEPS"`
	Port         int     `config:"LIFE_PORT"`
	HostKey      string  `config:"LIFE_HOST_KEY"`
	MaxSessions  int     `config:"LIFE_MAX_SESSIONS"`
	LogLevel     string  `config:"LIFE_LOG_LEVEL"`
	LogFile      string  `config:"LIFE_LOG_FILE"`
}

// SoupPattern selects a random initial population instead of a named pattern.
const SoupPattern = "soup"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:        40,
		Height:       20,
		Wrap:         true,
		TickMillis:   150,
		Pattern:      SoupPattern,
		Density:      0.25,
		Theme:        "classic",
		SpawnPattern: "glider",
		FadeSteps:    2,
		Port:         2222,
		MaxSessions:  16,
		LogLevel:     "info",
	}
}

// Load layers the optional file at path and the environment over the
// defaults. An empty path skips the file; a named file that does not exist
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	var b *jlconfig.Builder
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return cfg, eris.Errorf("config file %s does not exist", path)
			}
			return cfg, eris.Wrapf(err, "stat config file %s", path)
		}
		b = jlconfig.From(path).FromEnv()
	} else {
		b = jlconfig.FromEnv()
	}
	if err := b.To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "load config")
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Width < 3 || c.Height < 3:
		return eris.Errorf("board must be at least 3x3, got %dx%d", c.Width, c.Height)
	case c.Width*c.Height > 1<<20:
		return eris.Errorf("board of %dx%d cells is too large", c.Width, c.Height)
	case c.TickMillis < 10:
		return eris.Errorf("tick of %dms is below the 10ms minimum", c.TickMillis)
	case c.Density < 0 || c.Density > 1:
		return eris.Errorf("density %v is outside [0,1]", c.Density)
	case c.SpawnEvery < 0:
		return eris.Errorf("spawn interval %d is negative", c.SpawnEvery)
	case c.FadeSteps < 0:
		return eris.Errorf("fade steps %d is negative", c.FadeSteps)
	case c.Port < 1 || c.Port > 65535:
		return eris.Errorf("port %d is out of range", c.Port)
	case c.MaxSessions < 1:
		return eris.Errorf("max sessions must be positive, got %d", c.MaxSessions)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Grid returns the board geometry.
func (c Config) Grid() grid.Grid { return grid.New(c.Width, c.Height, c.Wrap) }

// Tick returns the interval between generations.
func (c Config) Tick() time.Duration { return time.Duration(c.TickMillis) * time.Millisecond }

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "log level %q", c.LogLevel)
	}
	return lvl, nil
}
