package gamemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Rect is an axis-aligned rectangle: origin (X, Y) and extent (W, H).
// It covers X <= x < X+W and Y <= y < Y+H.
type Rect struct {
	X, Y, W, H int
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Area returns the number of cells covered by r.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersects reports whether r and other share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// ClipTo truncates r so it does not leave bounds. An origin before the
// bounds origin shrinks the extent by the overflow and moves the origin onto
// the boundary; an extent past the far edge is cut back. The result may be
// empty but never has a negative extent.
func (r Rect) ClipTo(bounds Rect) Rect {
	if r.X < bounds.X {
		r.W -= bounds.X - r.X
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.H -= bounds.Y - r.Y
		r.Y = bounds.Y
	}
	if r.X+r.W > bounds.X+bounds.W {
		r.W = bounds.X + bounds.W - r.X
	}
	if r.Y+r.H > bounds.Y+bounds.H {
		r.H = bounds.Y + bounds.H - r.Y
	}
	r.W = max(r.W, 0)
	r.H = max(r.H, 0)
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Grid is the rasterized dungeon. Cells are indexed Cells[x][y].
type Grid struct {
	Width, Height int
	Cells         [][]rune
}

// New creates a Grid filled with walls.
func New(width, height int) *Grid {
	cells := make([][]rune, width)
	for x := range cells {
		cells[x] = make([]rune, height)
		for y := range cells[x] {
			cells[x][y] = Wall
		}
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// Bounds returns the rectangle covered by the grid.
func (g *Grid) Bounds() Rect { return Rect{W: g.Width, H: g.Height} }

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the code at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) rune {
	return g.Cells[x][y]
}

// Set replaces the code at (x, y).
func (g *Grid) Set(x, y int, c rune) {
	g.Cells[x][y] = c
}

// IsFloor returns true when (x, y) is in bounds and walkable.
func (g *Grid) IsFloor(x, y int) bool {
	return g.InBounds(x, y) && IsFloor(g.Cells[x][y])
}

// IsWall returns true when (x, y) is in bounds and blocking.
func (g *Grid) IsWall(x, y int) bool {
	return g.InBounds(x, y) && IsWall(g.Cells[x][y])
}

// FillRect writes c into every cell of r that lies inside the grid.
func (g *Grid) FillRect(r Rect, c rune) {
	r = r.ClipTo(g.Bounds())
	for x := r.X; x < r.X+r.W; x++ {
		col := g.Cells[x]
		for y := r.Y; y < r.Y+r.H; y++ {
			col[y] = c
		}
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([][]rune, g.Width)
	for x := range cells {
		cells[x] = make([]rune, g.Height)
		copy(cells[x], g.Cells[x])
	}
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// FloorCount returns the number of walkable cells.
func (g *Grid) FloorCount() int {
	n := 0
	for _, col := range g.Cells {
		for _, c := range col {
			if IsFloor(c) {
				n++
			}
		}
	}
	return n
}

// WriteText dumps the grid one Cells[x] line at a time, one character per
// cell, each line terminated by '\n'.
func (g *Grid) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, col := range g.Cells {
		for _, c := range col {
			if _, err := bw.WriteRune(c); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.WriteText(&sb)
	return sb.String()
}

// Parse reads a text dump produced by WriteText back into a Grid. Every line
// must have the same number of runes.
func Parse(text string) (*Grid, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return &Grid{}, nil
	}
	g := &Grid{Width: len(lines), Cells: make([][]rune, len(lines))}
	for x, line := range lines {
		col := []rune(line)
		if x == 0 {
			g.Height = len(col)
		} else if len(col) != g.Height {
			return nil, fmt.Errorf("line %d has %d cells, want %d", x, len(col), g.Height)
		}
		g.Cells[x] = col
	}
	return g, nil
}

// WriteFile writes the text dump of g to path, creating parent directories.
func WriteFile(path string, g *Grid) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dump dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	if err := g.WriteText(f); err != nil {
		f.Close()
		return fmt.Errorf("write dump: %w", err)
	}
	return f.Close()
}
