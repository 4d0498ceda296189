package cli

import (
	"github.com/spf13/pflag"

	"emoji-life/internal/config"
)

// boardFlags are the simulation settings shared by run and serve.
type boardFlags struct {
	width, height int
	wrap          bool
	tickMillis    int
	pattern       string
	patternFile   string
	density       float64
	seed          int64
	theme         string
	spawnEvery    int
	spawnPattern  string
	fadeSteps     int
}

func (b *boardFlags) bind(fs *pflag.FlagSet) {
	def := config.Default()
	fs.IntVar(&b.width, "width", def.Width, "board width in cells")
	fs.IntVar(&b.height, "height", def.Height, "board height in cells")
	fs.BoolVar(&b.wrap, "wrap", def.Wrap, "wrap the board edges into a torus")
	fs.IntVar(&b.tickMillis, "tick", def.TickMillis, "milliseconds between generations")
	fs.StringVarP(&b.pattern, "pattern", "p", def.Pattern, "initial pattern name, or soup")
	fs.StringVar(&b.patternFile, "pattern-file", "", "YAML file with extra patterns")
	fs.Float64Var(&b.density, "density", def.Density, "alive fraction for soup")
	fs.Int64Var(&b.seed, "seed", 0, "random seed (0 picks one)")
	fs.StringVarP(&b.theme, "theme", "t", def.Theme, "glyph theme")
	fs.IntVar(&b.spawnEvery, "spawn-every", def.SpawnEvery, "drop a pattern every N generations (0 disables)")
	fs.StringVar(&b.spawnPattern, "spawn-pattern", def.SpawnPattern, "pattern dropped by the spawner and the g key")
	fs.IntVar(&b.fadeSteps, "fade", def.FadeSteps, "generations a dead cell keeps fading")
}

// apply copies the flags the user actually set over cfg.
func (b *boardFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("width", func() { cfg.Width = b.width })
	set("height", func() { cfg.Height = b.height })
	set("wrap", func() { cfg.Wrap = b.wrap })
	set("tick", func() { cfg.TickMillis = b.tickMillis })
	set("pattern", func() { cfg.Pattern = b.pattern })
	set("pattern-file", func() { cfg.PatternFile = b.patternFile })
	set("density", func() { cfg.Density = b.density })
	set("seed", func() { cfg.Seed = b.seed })
	set("theme", func() { cfg.Theme = b.theme })
	set("spawn-every", func() { cfg.SpawnEvery = b.spawnEvery })
	set("spawn-pattern", func() { cfg.SpawnPattern = b.spawnPattern })
	set("fade", func() { cfg.FadeSteps = b.fadeSteps })
}
