package generate

import "bsp-dungeon/internal/gamemap"

// Neighbour bits, named for how the text dump draws the grid: Cells[x] is one
// line, so x-1 is the cell above and y-1 the cell to the left.
const (
	wallUp    = 1 // x-1
	wallRight = 2 // y+1
	wallDown  = 4 // x+1
	wallLeft  = 8 // y-1
)

// wallGlyphs maps the set of walled neighbours to the glyph whose arms point
// at them.
var wallGlyphs = [16]rune{
	0:                                        gamemap.GlyphPillar,
	wallUp:                                   gamemap.GlyphVertical,
	wallRight:                                gamemap.GlyphHorizontal,
	wallUp | wallRight:                       gamemap.GlyphBottomLeft,
	wallDown:                                 gamemap.GlyphVertical,
	wallUp | wallDown:                        gamemap.GlyphVertical,
	wallRight | wallDown:                     gamemap.GlyphTopLeft,
	wallUp | wallRight | wallDown:            gamemap.GlyphTeeRight,
	wallLeft:                                 gamemap.GlyphHorizontal,
	wallUp | wallLeft:                        gamemap.GlyphBottomRight,
	wallRight | wallLeft:                     gamemap.GlyphHorizontal,
	wallUp | wallRight | wallLeft:            gamemap.GlyphTeeUp,
	wallDown | wallLeft:                      gamemap.GlyphTopRight,
	wallUp | wallDown | wallLeft:             gamemap.GlyphTeeLeft,
	wallRight | wallDown | wallLeft:          gamemap.GlyphTeeDown,
	wallUp | wallRight | wallDown | wallLeft: gamemap.GlyphSolid,
}

// FormatMap returns a copy of g with every wall cell replaced by the box glyph
// matching its walled neighbours. Floor cells are copied unchanged and g is
// not modified.
//
// Cells on the outer border only test their in-grid neighbours, so the four
// corners are decided by two neighbours and the edges by three.
func FormatMap(g *gamemap.Grid) *gamemap.Grid {
	out := g.Clone()
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if gamemap.IsFloor(g.At(x, y)) {
				continue
			}
			out.Set(x, y, wallGlyph(g, x, y))
		}
	}
	return out
}

func wallGlyph(g *gamemap.Grid, x, y int) rune {
	mask := 0
	if g.IsWall(x-1, y) {
		mask |= wallUp
	}
	if g.IsWall(x, y+1) {
		mask |= wallRight
	}
	if g.IsWall(x+1, y) {
		mask |= wallDown
	}
	if g.IsWall(x, y-1) {
		mask |= wallLeft
	}
	return wallGlyphs[mask]
}
