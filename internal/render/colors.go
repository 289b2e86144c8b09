package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the colors used to draw a dungeon, both on the terminal and
// in exported images.
type Theme struct {
	Wall       tcell.Color
	Floor      tcell.Color
	Background tcell.Color
	Marker     tcell.Color
}

// Themes maps theme names to color sets. "stone" is the default.
var Themes = map[string]Theme{
	"stone": {
		Wall:       tcell.ColorSilver,
		Floor:      tcell.NewRGBColor(217, 209, 184),
		Background: tcell.NewRGBColor(20, 20, 26),
		Marker:     tcell.ColorGold,
	},
	// Ice caves: pale walls over deep blue.
	"frost": {
		Wall:       tcell.ColorLightCyan,
		Floor:      tcell.NewRGBColor(170, 210, 235),
		Background: tcell.NewRGBColor(10, 24, 48),
		Marker:     tcell.ColorWhite,
	},
	"ember": {
		Wall:       tcell.ColorOrangeRed,
		Floor:      tcell.NewRGBColor(96, 56, 40),
		Background: tcell.ColorBlack,
		Marker:     tcell.ColorYellow,
	},
	// High contrast white on black.
	"chalk": {
		Wall:       tcell.ColorWhite,
		Floor:      tcell.ColorWhite,
		Background: tcell.ColorBlack,
		Marker:     tcell.ColorWhite,
	},
}

// DefaultTheme is used when no theme is named.
const DefaultTheme = "stone"

// ThemeNames lists the known themes in order.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTheme returns the named theme; an empty name gives the default.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	t, ok := Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (have %v)", name, ThemeNames())
	}
	return t, nil
}

func (t Theme) wallStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Wall).Background(t.Background)
}

func (t Theme) floorStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Floor).Background(t.Background)
}

func (t Theme) markerStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Marker).Background(t.Background).Bold(true)
}

func (t Theme) statusStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Background).Background(t.Wall)
}

// rgba converts a terminal color for image drawing.
func rgba(c tcell.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
