package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"emoji-life/internal/config"
	"emoji-life/internal/render"
)

// maxMessages caps the message log kept for the HUD.
const maxMessages = 20

// Game runs one simulation in a local terminal.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	ctl      Controller
	logger   zerolog.Logger
	messages []string
	runLog   RunLog
}

// New prepares a Game drawing sim onto an initialised screen.
func New(screen tcell.Screen, sim *Sim, cfg config.Config, logger zerolog.Logger) (*Game, error) {
	theme, ok := render.ThemeByName(cfg.Theme)
	if !ok {
		return nil, eris.Errorf("unknown theme %q", cfg.Theme)
	}
	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen, theme),
		ctl:      Controller{Sim: sim, Interval: cfg.Tick()},
		logger:   logger,
	}
	g.recenter()
	gr := sim.Grid()
	g.runLog = RunLog{
		Started: time.Now().UTC(),
		Pattern: sim.PatternName(),
		Width:   gr.Width,
		Height:  gr.Height,
		Wrap:    gr.Wrap,
		Seed:    sim.Seed(),
	}
	g.addMessage("Welcome to emoji life. Press q to quit.")
	return g, nil
}

// PollEvents forwards screen events to ch until the screen is finalised or
// ctx ends, then closes ch.
func PollEvents(ctx context.Context, screen tcell.Screen, ch chan<- tcell.Event) {
	defer close(ch)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run drives the simulation until the player quits or ctx ends. The screen
// is finalised on return.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 32)
	go PollEvents(ctx, g.screen, events)

	ticker := time.NewTicker(g.ctl.Interval)
	defer ticker.Stop()

	g.draw()
	for {
		select {
		case <-ctx.Done():
			return g.finish()
		case <-ticker.C:
			if g.ctl.Paused {
				continue
			}
			g.ctl.Sim.Step()
			g.draw()
		case ev, ok := <-events:
			if !ok {
				return g.finish()
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.screen.Sync()
				g.renderer.Resize()
			case *tcell.EventKey:
				interval := g.ctl.Interval
				if g.handle(KeyToAction(ev)) {
					return g.finish()
				}
				if g.ctl.Interval != interval {
					ticker.Reset(g.ctl.Interval)
				}
			}
			g.draw()
		}
	}
}

// handle applies one action and reports whether the player quit.
func (g *Game) handle(a Action) bool {
	switch a {
	case ActionNone:
	case ActionQuit:
		return true
	case ActionTheme:
		g.renderer.SetTheme(render.NextTheme(g.renderer.Theme()))
		g.addMessage("theme " + g.renderer.Theme().Name)
	case ActionPanN, ActionPanS, ActionPanE, ActionPanW:
		dx, dy := ActionDelta(a)
		g.renderer.Camera().Pan(dx, dy)
	case ActionRecenter:
		g.recenter()
	default:
		if msg := g.ctl.Apply(a); msg != "" {
			g.addMessage(msg)
		}
	}
	return false
}

func (g *Game) recenter() {
	cx, cy := g.ctl.Sim.Grid().Bounds().Center()
	g.renderer.CenterOn(cx, cy)
}

func (g *Game) status() render.Status {
	st := g.ctl.Sim.Stats()
	return render.Status{
		Generation: st.Generation,
		Population: st.Population,
		Peak:       st.Peak,
		Interval:   g.ctl.Interval,
		Paused:     g.ctl.Paused,
		Messages:   g.messages,
	}
}

func (g *Game) draw() {
	g.renderer.DrawFrame(g.ctl.Sim.World())
	g.renderer.DrawHUD(g.status())
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// finish records the run. A failed write is logged, never fatal.
func (g *Game) finish() error {
	st := g.ctl.Sim.Stats()
	g.runLog.Duration = time.Since(g.runLog.Started).Round(time.Millisecond).String()
	g.runLog.Generations = st.Generation
	g.runLog.PeakPopulation = st.Peak
	g.runLog.FinalPopulation = st.Population
	g.runLog.Theme = g.renderer.Theme().Name
	if err := saveRunLog(g.runLog); err != nil {
		g.logger.Warn().Err(err).Msg("could not save run log")
	}
	return nil
}
