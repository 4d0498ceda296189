package render

import (
	"bufio"
	"io"

	"github.com/rotisserie/eris"

	"emoji-life/internal/component"
	"emoji-life/internal/ecs"
	"emoji-life/internal/factory"
	"emoji-life/internal/grid"
	"emoji-life/internal/pattern"
)

// cellGlyph picks the glyph for cell e.
func cellGlyph(w *ecs.World, theme Theme, e ecs.Entity) string {
	if st, ok := ecs.GetComponent[component.CellState](w, e); ok && st.Alive {
		return theme.Alive
	}
	if f, ok := ecs.GetComponent[component.Fade](w, e); ok {
		return theme.FadeGlyph(f.Steps)
	}
	return theme.Dead
}

// TextRenderer writes frames as plain text, one line per board row.
type TextRenderer struct {
	Theme Theme
}

// Render writes the board held by w to out.
func (t TextRenderer) Render(out io.Writer, w *ecs.World) error {
	b := ecs.Resource[factory.Board](w)
	if b == nil {
		return eris.New("world has no board")
	}
	bw := bufio.NewWriter(out)
	g := b.Grid
	for y := range g.Height {
		for x := range g.Width {
			e, _ := b.At(x, y)
			bw.WriteString(cellGlyph(w, t.Theme, e))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return eris.Wrap(err, "write frame")
	}
	return nil
}

// Preview renders p on a board one cell larger than its bounding box on
// every side.
func Preview(out io.Writer, p pattern.Pattern, theme Theme) error {
	pw, ph := p.Size()
	g := grid.New(pw+2, ph+2, false)
	w := ecs.NewWorld()
	factory.SetupGrid(w, g, p.At(g, grid.Point{X: 1, Y: 1}))
	return TextRenderer{Theme: theme}.Render(out, w)
}
