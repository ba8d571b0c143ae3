// Package render implements the software rasterization pipeline: camera
// transform, triangle rasterization with depth testing, and the frame driver
// that feeds finished images to a presentation sink.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Framebuffer holds a packed color buffer and a depth buffer of the same
// size. Colors are 0x00RRGGBB. Depth is linear view-space distance, +Inf
// where nothing has been drawn.
type Framebuffer struct {
	Width      int
	Height     int
	Color      []uint32  // Row-major packed color
	Depth      []float64 // Row-major view-space depth
	Background uint32    // Color written by Clear
}

// NewFramebuffer creates a cleared framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both buffers if the dimensions changed and clears them.
// Negative dimensions are treated as zero.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != fb.Width || height != fb.Height || fb.Color == nil {
		fb.Width = width
		fb.Height = height
		fb.Color = make([]uint32, width*height)
		fb.Depth = make([]float64, width*height)
	}
	fb.Clear()
}

// Clear resets every pixel to the background color and every depth to +Inf.
func (fb *Framebuffer) Clear() {
	fb.ClearColor()
	fb.ClearDepth()
}

// ClearColor fills the color buffer with the background color.
func (fb *Framebuffer) ClearColor() {
	n := len(fb.Color)
	if n == 0 {
		return
	}
	fb.Color[0] = fb.Background
	for i := 1; i < n; i *= 2 {
		copy(fb.Color[i:], fb.Color[:i])
	}
}

// ClearDepth resets the depth buffer to +Inf.
func (fb *Framebuffer) ClearDepth() {
	n := len(fb.Depth)
	if n == 0 {
		return
	}
	fb.Depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets the color at (x, y). Out of bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c uint32) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Color[y*fb.Width+x] = c
}

// GetPixel returns the packed color at (x, y), or the background color when
// out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) uint32 {
	if !fb.InBounds(x, y) {
		return fb.Background
	}
	return fb.Color[y*fb.Width+x]
}

// DepthAt returns the depth at (x, y), +Inf when out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.InBounds(x, y) {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// Coverage counts pixels whose color differs from the background.
func (fb *Framebuffer) Coverage() int {
	n := 0
	for _, c := range fb.Color {
		if c != fb.Background {
			n++
		}
	}
	return n
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// It writes color only and leaves depth untouched.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c uint32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Pack converts a linear [0,1] color to 0x00RRGGBB. Channels are clamped and
// NaN maps to 0.
func Pack(c mgl32.Vec3) uint32 {
	col := colorful.Color{R: finite(c[0]), G: finite(c[1]), B: finite(c[2])}
	r, g, b := col.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func finite(v float32) float64 {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// Unpack splits a packed color into an opaque color.RGBA.
func Unpack(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 255}
}

// ParseColor parses a hex color such as "#1e1e28" into packed form.
func ParseColor(s string) (uint32, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := col.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}

// ToImage converts the color buffer to an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the color buffer into pix as 8-bit RGBA, four bytes per
// pixel. pix must hold at least Width*Height*4 bytes.
func (fb *Framebuffer) CopyRGBA(pix []byte) {
	for i, c := range fb.Color {
		o := i * 4
		pix[o] = uint8(c >> 16)
		pix[o+1] = uint8(c >> 8)
		pix[o+2] = uint8(c)
		pix[o+3] = 0xff
	}
}

// SavePNG saves the color buffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
