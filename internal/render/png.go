package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"bsp-dungeon/internal/gamemap"
)

// Image draws grid as solid blocks, cellPx pixels per cell, in the same
// orientation as the text dump: grid line x is pixel row band x. Walls take
// the theme background and floors the floor color.
func Image(grid *gamemap.Grid, theme Theme, cellPx int) image.Image {
	cellPx = max(cellPx, 1)
	dc := gg.NewContext(grid.Height*cellPx, grid.Width*cellPx)
	dc.SetColor(rgba(theme.Background))
	dc.Clear()
	dc.SetColor(rgba(theme.Floor))
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			if grid.IsFloor(x, y) {
				dc.DrawRectangle(float64(y*cellPx), float64(x*cellPx), float64(cellPx), float64(cellPx))
			}
		}
	}
	dc.Fill()
	return dc.Image()
}

// Thumbnail scales img to width pixels, keeping the aspect ratio. Nearest
// neighbour keeps walls sharp.
func Thumbnail(img image.Image, width int) image.Image {
	return resize.Resize(uint(width), 0, img, resize.NearestNeighbor)
}

// WritePNG saves grid as a PNG at path in the default theme. A positive
// thumbWidth scales the picture down to that many pixels wide.
func WritePNG(path string, grid *gamemap.Grid, cellPx, thumbWidth int) error {
	return WriteThemedPNG(path, grid, Themes[DefaultTheme], cellPx, thumbWidth)
}

// WriteThemedPNG is WritePNG with an explicit theme.
func WriteThemedPNG(path string, grid *gamemap.Grid, theme Theme, cellPx, thumbWidth int) error {
	if grid.Width == 0 || grid.Height == 0 {
		return fmt.Errorf("write png: empty grid")
	}
	img := Image(grid, theme, cellPx)
	if thumbWidth > 0 {
		img = Thumbnail(img, thumbWidth)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write png: %w", err)
	}
	return f.Close()
}
