package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// upperHalf is drawn with fg = top pixel and bg = bottom pixel, so each
// terminal cell shows two framebuffer rows.
const upperHalf = "▀"

// CellSize returns the framebuffer size that fills a terminal of the given
// columns and rows with half-block cells.
func CellSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to half-block cells inside area.
// The framebuffer height should be twice the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: upperHalf,
				Width:   1,
				Style: uv.Style{
					Fg: Unpack(fb.GetPixel(x, topY)),
					Bg: Unpack(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}
