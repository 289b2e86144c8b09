package generate

import (
	"testing"

	"bsp-dungeon/internal/gamemap"
)

// neighbourhood builds a 3x3 floor grid with a wall at (1,1) and walls on the
// requested sides of it.
func neighbourhood(xm, xp, ym, yp bool) *gamemap.Grid {
	g := gamemap.New(3, 3)
	g.FillRect(g.Bounds(), gamemap.Floor)
	g.Set(1, 1, gamemap.Wall)
	if xm {
		g.Set(0, 1, gamemap.Wall)
	}
	if xp {
		g.Set(2, 1, gamemap.Wall)
	}
	if ym {
		g.Set(1, 0, gamemap.Wall)
	}
	if yp {
		g.Set(1, 2, gamemap.Wall)
	}
	return g
}

func TestFormatMapInteriorCases(t *testing.T) {
	// xm/xp: wall at x-1/x+1 (drawn above/below in the dump).
	// ym/yp: wall at y-1/y+1 (drawn left/right in the dump).
	cases := []struct {
		name           string
		xm, xp, ym, yp bool
		want           rune
	}{
		{"isolated", false, false, false, false, '■'},
		{"x-1 only", true, false, false, false, '│'},
		{"y+1 only", false, false, false, true, '─'},
		{"x-1 and y+1", true, false, false, true, '└'},
		{"x+1 only", false, true, false, false, '│'},
		{"x-1 and x+1", true, true, false, false, '│'},
		{"x+1 and y+1", false, true, false, true, '┌'},
		{"all but y-1", true, true, false, true, '├'},
		{"y-1 only", false, false, true, false, '─'},
		{"x-1 and y-1", true, false, true, false, '┘'},
		{"floor at x-1 and x+1", false, false, true, true, '─'},
		{"all but x+1", true, false, true, true, '┴'},
		{"x+1 and y-1", false, true, true, false, '┐'},
		{"all but y+1", true, true, true, false, '┤'},
		{"all but x-1", false, true, true, true, '┬'},
		{"all four", true, true, true, true, '█'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := neighbourhood(tc.xm, tc.xp, tc.ym, tc.yp)
			if got := FormatMap(g).At(1, 1); got != tc.want {
				t.Errorf("glyph = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestFormatMapFloorBelowAndRight(t *testing.T) {
	// Floor at y+1 and x+1 only: the corner closes toward x-1 and y-1.
	g := neighbourhood(true, false, true, false)
	if got := FormatMap(g).At(1, 1); got != gamemap.GlyphBottomRight {
		t.Errorf("glyph = %q; want %q", got, gamemap.GlyphBottomRight)
	}
}

func TestFormatMapCorners(t *testing.T) {
	cases := []struct {
		name string
		x, y int
		want rune
	}{
		{"first line, first cell", 0, 0, '┌'},
		{"first line, last cell", 0, 2, '┐'},
		{"last line, first cell", 2, 0, '└'},
		{"last line, last cell", 2, 2, '┘'},
	}
	g := gamemap.New(3, 3)
	g.Set(1, 1, gamemap.Floor)
	out := FormatMap(g)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := out.At(tc.x, tc.y); got != tc.want {
				t.Errorf("corner (%d,%d) = %q; want %q", tc.x, tc.y, got, tc.want)
			}
		})
	}
	if got, want := out.String(), "┌─┐\n│.│\n└─┘\n"; got != want {
		t.Errorf("framed cell dump = %q; want %q", got, want)
	}
}

func TestFormatMapCornerNeighbours(t *testing.T) {
	// Top-left corner with each combination of its two in-grid neighbours.
	cases := []struct {
		name         string
		below, right bool
		want         rune
	}{
		{"both walls", true, true, '┌'},
		{"wall below only", true, false, '│'},
		{"wall right only", false, true, '─'},
		{"no walls", false, false, '■'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := gamemap.New(2, 2)
			g.FillRect(g.Bounds(), gamemap.Floor)
			g.Set(0, 0, gamemap.Wall)
			if tc.below {
				g.Set(1, 0, gamemap.Wall)
			}
			if tc.right {
				g.Set(0, 1, gamemap.Wall)
			}
			if got := FormatMap(g).At(0, 0); got != tc.want {
				t.Errorf("glyph = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestFormatMapDoesNotMutateInput(t *testing.T) {
	g := gamemap.New(4, 4)
	g.Set(1, 1, gamemap.Floor)
	before := g.String()
	_ = FormatMap(g)
	if g.String() != before {
		t.Error("FormatMap modified its input")
	}
}

func TestFormatMapIdempotent(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		cfg := defaultTestConfig(seed)
		root := Build(cfg)
		CreateRooms(root, cfg)
		once := FormatMap(Rasterize(root, cfg.Width, cfg.Height))
		twice := FormatMap(once)
		if once.String() != twice.String() {
			t.Errorf("seed=%d: second FormatMap changed the grid", seed)
		}
	}
}

func TestFormatMapKeepsFloor(t *testing.T) {
	cfg := defaultTestConfig(11)
	root := Build(cfg)
	CreateRooms(root, cfg)
	raw := Rasterize(root, cfg.Width, cfg.Height)
	out := FormatMap(raw)
	for x := 0; x < raw.Width; x++ {
		for y := 0; y < raw.Height; y++ {
			if raw.IsFloor(x, y) != out.IsFloor(x, y) {
				t.Fatalf("cell (%d,%d) changed walkability", x, y)
			}
		}
	}
}
