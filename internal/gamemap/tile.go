package gamemap

// Raw cell codes written by the rasterizer.
const (
	Wall  rune = '#' // impassable; the only wall code before formatting
	Floor rune = '.'
)

// Box-drawing wall glyphs assigned by the glyph resolver. They are cosmetic
// variants of Wall and classify as wall everywhere.
const (
	GlyphSolid       rune = '█' // wall on all four sides
	GlyphPillar      rune = '■' // no adjoining wall
	GlyphHorizontal  rune = '─'
	GlyphVertical    rune = '│'
	GlyphTopLeft     rune = '┌'
	GlyphTopRight    rune = '┐'
	GlyphBottomLeft  rune = '└'
	GlyphBottomRight rune = '┘'
	GlyphTeeRight    rune = '├'
	GlyphTeeLeft     rune = '┤'
	GlyphTeeDown     rune = '┬'
	GlyphTeeUp       rune = '┴'
)

var glyphs = []rune{
	Wall, Floor,
	GlyphSolid, GlyphPillar,
	GlyphHorizontal, GlyphVertical,
	GlyphTopLeft, GlyphTopRight, GlyphBottomLeft, GlyphBottomRight,
	GlyphTeeRight, GlyphTeeLeft, GlyphTeeDown, GlyphTeeUp,
}

// Glyphs returns every code a generated grid may contain.
func Glyphs() []rune {
	out := make([]rune, len(glyphs))
	copy(out, glyphs)
	return out
}

// IsFloor reports whether c is walkable.
func IsFloor(c rune) bool { return c == Floor }

// IsWall reports whether c blocks movement. Any code that is not Floor,
// including every box glyph, is a wall.
func IsWall(c rune) bool { return c != Floor }
