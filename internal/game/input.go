package game

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Action represents a viewer-requested action.
type Action uint8

const (
	ActionNone Action = iota
	ActionPause
	ActionStep
	ActionFaster
	ActionSlower
	ActionReseed
	ActionDrop
	ActionClear
	ActionTheme
	ActionPanN
	ActionPanS
	ActionPanE
	ActionPanW
	ActionRecenter
	ActionQuit
)

// KeyToAction maps a tcell key event to an action.
func KeyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionPanN
	case tcell.KeyDown:
		return ActionPanS
	case tcell.KeyRight:
		return ActionPanE
	case tcell.KeyLeft:
		return ActionPanW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	switch ev.Rune() {
	case ' ', 'p', 'P':
		return ActionPause
	case 'n', 'N', '.':
		return ActionStep
	case '+', '=':
		return ActionFaster
	case '-', '_':
		return ActionSlower
	case 'r', 'R':
		return ActionReseed
	case 'g', 'G':
		return ActionDrop
	case 'c', 'C':
		return ActionClear
	case 't', 'T':
		return ActionTheme
	case 'z', 'Z':
		return ActionRecenter
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// ActionDelta converts a pan action to (dx, dy).
func ActionDelta(a Action) (int, int) {
	switch a {
	case ActionPanN:
		return 0, -1
	case ActionPanS:
		return 0, 1
	case ActionPanE:
		return 1, 0
	case ActionPanW:
		return -1, 0
	}
	return 0, 0
}

// Interval bounds for the speed controls.
const (
	MinInterval = 20 * time.Millisecond
	MaxInterval = 2 * time.Second
)

// Controller applies shared simulation actions: pausing, stepping, speed and
// board edits. View actions (theme, panning) belong to each viewer.
type Controller struct {
	Sim      *Sim
	Paused   bool
	Interval time.Duration
}

// Apply performs a and returns a message for the log, if any.
func (c *Controller) Apply(a Action) string {
	switch a {
	case ActionPause:
		c.Paused = !c.Paused
		if c.Paused {
			return "paused"
		}
		return "resumed"
	case ActionStep:
		c.Sim.Step()
		return ""
	case ActionFaster:
		c.setInterval(max(c.Interval/2, MinInterval))
		return fmt.Sprintf("tick %s", c.Interval)
	case ActionSlower:
		c.setInterval(min(c.Interval*2, MaxInterval))
		return fmt.Sprintf("tick %s", c.Interval)
	case ActionReseed:
		c.Sim.Reseed()
		return fmt.Sprintf("reseeded with %s", c.Sim.PatternName())
	case ActionDrop:
		n := c.Sim.Drop()
		return fmt.Sprintf("dropped %s (%d new cells)", c.Sim.spawn.Name, n)
	case ActionClear:
		c.Sim.Clear()
		return "cleared"
	}
	return ""
}

func (c *Controller) setInterval(d time.Duration) {
	c.Interval = d
	c.Sim.SetInterval(d)
}
