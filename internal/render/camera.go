package render

// Camera translates between grid coordinates and screen coordinates.
// A grid line Cells[x] is drawn as screen row x, and cell y of that line at
// column y*CellWidth, matching the text dump.
type Camera struct {
	OffsetRow  int // first grid x on screen
	OffsetCol  int // first grid y on screen
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	CellWidth  int // terminal columns per cell
}

// NewCamera creates a camera centered on grid cell (x, y).
func NewCamera(x, y, viewW, viewH, cellWidth int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH, CellWidth: max(cellWidth, 1)}
	c.Center(x, y)
	return c
}

// Center repositions the camera so that grid cell (x, y) is in the middle.
func (c *Camera) Center(x, y int) {
	c.OffsetRow = x - c.ViewHeight/2
	c.OffsetCol = y - (c.ViewWidth/c.CellWidth)/2
}

// Rows returns how many grid lines fit on screen.
func (c *Camera) Rows() int { return c.ViewHeight }

// Cols returns how many cells of a grid line fit on screen.
func (c *Camera) Cols() int { return c.ViewWidth / c.CellWidth }

// Clamp keeps the view inside a width x height grid where possible.
func (c *Camera) Clamp(width, height int) {
	c.OffsetRow = max(min(c.OffsetRow, width-c.Rows()), 0)
	c.OffsetCol = max(min(c.OffsetCol, height-c.Cols()), 0)
}

// GridToScreen converts grid (x, y) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) GridToScreen(x, y int) (sx, sy int, visible bool) {
	sx = (y - c.OffsetCol) * c.CellWidth
	sy = x - c.OffsetRow
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToGrid converts screen (sx, sy) to grid coordinates.
func (c *Camera) ScreenToGrid(sx, sy int) (int, int) {
	return sy + c.OffsetRow, sx/c.CellWidth + c.OffsetCol
}
