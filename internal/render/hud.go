package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is what the HUD shows under the board.
type Status struct {
	Generation int
	Population int
	Peak       int
	Interval   time.Duration
	Paused     bool
	Viewers    int
	Messages   []string
}

// StatusLine formats the first HUD row.
func (s Status) StatusLine(theme string) string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	line := fmt.Sprintf("Gen %d  Pop %d  Peak %d  %s/tick  [%s]  theme:%s",
		s.Generation, s.Population, s.Peak, s.Interval, state, theme)
	if s.Viewers > 0 {
		line += fmt.Sprintf("  viewers:%d", s.Viewers)
	}
	return line
}

// HelpLine lists the key bindings.
const HelpLine = "space pause  n step  +/- speed  r reseed  g glider  c clear  t theme  arrows pan  q quit"

// DrawHUD renders the status bar and message log at the bottom of the
// screen, then shows the frame.
func (r *Renderer) DrawHUD(s Status) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDHeight

	r.drawHLine(hudY, tcell.ColorGray)
	r.drawText(0, hudY+1, s.StatusLine(r.theme.Name), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.drawText(0, hudY+2, HelpLine, tcell.StyleDefault.Foreground(tcell.ColorGray))

	start := max(len(s.Messages)-2, 0)
	for i, msg := range s.Messages[start:] {
		r.drawText(0, hudY+3+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
