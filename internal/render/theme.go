package render

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the glyphs used to draw cells. Emoji carry their own colors;
// Color only tints the narrow text glyphs of the mono and ascii themes.
type Theme struct {
	Name  string
	Alive string
	Dead  string
	Fade  []string // faintest first
	Color tcell.Color
}

// FadeGlyph picks the afterglow glyph for a cell with steps remaining.
func (t Theme) FadeGlyph(steps int) string {
	if len(t.Fade) == 0 || steps <= 0 {
		return t.Dead
	}
	return t.Fade[min(steps, len(t.Fade))-1]
}

// Themes lists the built-in themes; the first is the default.
var Themes = []Theme{
	{Name: "classic", Alive: "🟩", Dead: "⬛", Fade: []string{"🟫", "🟨"}, Color: tcell.ColorDefault},
	{Name: "garden", Alive: "🌼", Dead: "🟫", Fade: []string{"🍂", "🥀"}, Color: tcell.ColorDefault},
	{Name: "space", Alive: "⭐", Dead: "⬛", Fade: []string{"✨", "💫"}, Color: tcell.ColorDefault},
	{Name: "mono", Alive: "■", Dead: "□", Fade: []string{"▫", "▪"}, Color: tcell.ColorWhite},
	{Name: "ascii", Alive: "O", Dead: ".", Fade: []string{"-", "+"}, Color: tcell.ColorGreen},
}

// ThemeByName looks a theme up case-insensitively.
func ThemeByName(name string) (Theme, bool) {
	i := slices.IndexFunc(Themes, func(t Theme) bool { return strings.EqualFold(t.Name, name) })
	if i < 0 {
		return Theme{}, false
	}
	return Themes[i], true
}

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	out := make([]string, len(Themes))
	for i, t := range Themes {
		out[i] = t.Name
	}
	return out
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	i := slices.IndexFunc(Themes, func(o Theme) bool { return o.Name == t.Name })
	return Themes[(i+1)%len(Themes)]
}
