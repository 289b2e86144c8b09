package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"bsp-dungeon/internal/gamemap"
	"bsp-dungeon/internal/generate"
)

// Marker glyphs drawn over the grid.
const (
	StartGlyph    = '<'
	ExitGlyph     = '>'
	TreasureGlyph = '$'
)

// Viewer draws a finished grid on a terminal and lets the user scroll
// around it. It never modifies the grid.
type Viewer struct {
	screen tcell.Screen
	grid   *gamemap.Grid
	camera *Camera
	marks  map[generate.Point]rune
	Theme  Theme
	Status string // shown on the bottom line
}

// NewViewer creates a Viewer for grid on an initialized screen.
func NewViewer(screen tcell.Screen, grid *gamemap.Grid) *Viewer {
	v := &Viewer{screen: screen, grid: grid, Theme: Themes[DefaultTheme]}
	v.resize()
	v.camera.Center(grid.Width/2, grid.Height/2)
	v.camera.Clamp(grid.Width, grid.Height)
	return v
}

// cellWidth returns the widest column count of any glyph the grid may hold,
// so box glyphs rendered double-width in East Asian locales stay aligned.
func cellWidth() int {
	w := 1
	for _, c := range gamemap.Glyphs() {
		w = max(w, runewidth.RuneWidth(c))
	}
	return w
}

func (v *Viewer) resize() {
	w, h := v.screen.Size()
	// Reserve the bottom row for the status line.
	viewH := max(h-1, 1)
	if v.camera == nil {
		v.camera = NewCamera(0, 0, w, viewH, cellWidth())
		return
	}
	v.camera.ViewWidth = w
	v.camera.ViewHeight = viewH
	v.camera.Clamp(v.grid.Width, v.grid.Height)
}

// SetMarkers overlays m on the view and centers it on the start.
func (v *Viewer) SetMarkers(m generate.Markers) {
	v.marks = map[generate.Point]rune{
		m.Start: StartGlyph,
		m.Exit:  ExitGlyph,
	}
	for _, p := range m.Treasure {
		v.marks[p] = TreasureGlyph
	}
	v.camera.Center(m.Start.X, m.Start.Y)
	v.camera.Clamp(v.grid.Width, v.grid.Height)
}

// Scroll moves the view by dRows grid lines and dCols cells.
func (v *Viewer) Scroll(dRows, dCols int) {
	v.camera.OffsetRow += dRows
	v.camera.OffsetCol += dCols
	v.camera.Clamp(v.grid.Width, v.grid.Height)
}

// Draw renders the visible part of the grid and the status line.
func (v *Viewer) Draw() {
	v.screen.Fill(' ', v.Theme.wallStyle())
	for sy := 0; sy < v.camera.Rows(); sy++ {
		for col := 0; col < v.camera.Cols(); col++ {
			x, y := v.camera.ScreenToGrid(col*v.camera.CellWidth, sy)
			if !v.grid.InBounds(x, y) {
				continue
			}
			sx, _, ok := v.camera.GridToScreen(x, y)
			if !ok {
				continue
			}
			c := v.grid.At(x, y)
			style := v.Theme.wallStyle()
			if gamemap.IsFloor(c) {
				style = v.Theme.floorStyle()
			}
			if m, ok := v.marks[generate.Point{X: x, Y: y}]; ok {
				c, style = m, v.Theme.markerStyle()
			}
			v.screen.SetContent(sx, sy, c, nil, style)
		}
	}
	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawStatus() {
	w, h := v.screen.Size()
	style := v.Theme.statusStyle()
	line := fmt.Sprintf(" %dx%d  view %d,%d  %s  arrows/hjkl scroll, q quit ",
		v.grid.Width, v.grid.Height, v.camera.OffsetRow, v.camera.OffsetCol, v.Status)
	line = runewidth.Truncate(line, w, "…")
	x := 0
	for _, r := range line {
		v.screen.SetContent(x, h-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

// HandleEvent applies one terminal event and reports whether the viewer
// should close.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			v.Scroll(-1, 0)
		case tcell.KeyDown:
			v.Scroll(1, 0)
		case tcell.KeyLeft:
			v.Scroll(0, -1)
		case tcell.KeyRight:
			v.Scroll(0, 1)
		case tcell.KeyPgUp:
			v.Scroll(-v.camera.Rows(), 0)
		case tcell.KeyPgDn:
			v.Scroll(v.camera.Rows(), 0)
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'k':
			v.Scroll(-1, 0)
		case 'j':
			v.Scroll(1, 0)
		case 'h':
			v.Scroll(0, -1)
		case 'l':
			v.Scroll(0, 1)
		case 'K':
			v.Scroll(-10, 0)
		case 'J':
			v.Scroll(10, 0)
		case 'H':
			v.Scroll(0, -10)
		case 'L':
			v.Scroll(0, 10)
		}
	}
	return false
}

// Run draws and handles events until the user quits or the screen closes.
func (v *Viewer) Run() {
	for {
		v.Draw()
		ev := v.screen.PollEvent()
		if ev == nil || v.HandleEvent(ev) {
			return
		}
	}
}
