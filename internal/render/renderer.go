package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"emoji-life/internal/ecs"
	"emoji-life/internal/factory"
	"emoji-life/internal/grid"
)

// HUDHeight is the number of rows reserved below the board.
const HUDHeight = 5

// Renderer draws the board onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(grid.Point{}, w, max(h-HUDHeight, 0)),
		theme:  theme,
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return r.theme }

// SetTheme switches the glyph set.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Camera exposes the view for panning.
func (r *Renderer) Camera() *Camera { return r.camera }

// CenterOn recenters the camera on board cell (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(grid.Point{X: x, Y: y}) }

// Resize adapts the view after the terminal changed size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(h-HUDHeight, 0))
}

// DrawFrame clears the screen and draws every visible cell.
func (r *Renderer) DrawFrame(w *ecs.World) {
	r.screen.Clear()
	b := ecs.Resource[factory.Board](w)
	if b == nil {
		return
	}
	style := tcell.StyleDefault.Foreground(r.theme.Color).Background(tcell.ColorBlack)
	g := b.Grid
	for y := range g.Height {
		for x := range g.Width {
			sx, sy, onScreen := r.camera.ToScreen(grid.Point{X: x, Y: y})
			if !onScreen {
				continue
			}
			e, _ := b.At(x, y)
			r.putGlyph(sx, sy, cellGlyph(w, r.theme, e), style)
		}
	}
}

// putGlyph draws one glyph (ASCII or multi-rune emoji) in the two-column
// slot starting at (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) < 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
