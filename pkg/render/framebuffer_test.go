package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPack(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name string
		c    mgl32.Vec3
		want uint32
	}{
		{"black", mgl32.Vec3{0, 0, 0}, 0x000000},
		{"white", mgl32.Vec3{1, 1, 1}, 0xffffff},
		{"orange", mgl32.Vec3{1, 0.5, 0}, 0xff8000},
		{"clamped", mgl32.Vec3{2, -1, 0.25}, 0xff0040},
		{"nan", mgl32.Vec3{nan, 1, nan}, 0x00ff00},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Pack(tc.c); got != tc.want {
				t.Errorf("Pack(%v) = %06x, want %06x", tc.c, got, tc.want)
			}
		})
	}
}

func TestUnpack(t *testing.T) {
	c := Unpack(0x123456)
	if c.R != 0x12 || c.G != 0x34 || c.B != 0x56 || c.A != 0xff {
		t.Errorf("Unpack = %v", c)
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("#1e1e28")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x1e1e28 {
		t.Errorf("ParseColor = %06x, want 1e1e28", got)
	}
	if _, err := ParseColor("chartreuse"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	fb.Background = 0x101010
	fb.SetPixel(3, 2, 0xffffff)
	fb.Depth[10] = 1

	fb.Clear()
	for i, c := range fb.Color {
		if c != 0x101010 {
			t.Fatalf("Color[%d] = %06x after Clear", i, c)
		}
	}
	for i, d := range fb.Depth {
		if !math.IsInf(d, 1) {
			t.Fatalf("Depth[%d] = %v after Clear", i, d)
		}
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(-1, 0, 0xff)
	fb.SetPixel(4, 0, 0xff)
	fb.SetPixel(0, 4, 0xff)
	if fb.Coverage() != 0 {
		t.Error("out of bounds SetPixel wrote a pixel")
	}
	if got := fb.GetPixel(10, 10); got != fb.Background {
		t.Errorf("GetPixel out of bounds = %06x", got)
	}
	if !math.IsInf(fb.DepthAt(-1, -1), 1) {
		t.Error("DepthAt out of bounds should be +Inf")
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Resize(6, 3)
	if fb.Width != 6 || fb.Height != 3 || len(fb.Color) != 18 || len(fb.Depth) != 18 {
		t.Errorf("after Resize: %dx%d, %d colors, %d depths", fb.Width, fb.Height, len(fb.Color), len(fb.Depth))
	}
	fb.Resize(-2, 3)
	if fb.Width != 0 || len(fb.Color) != 0 {
		t.Errorf("negative width should clamp to zero, got %d", fb.Width)
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 2, 1, 2, 8, 8},
		{"diagonal", 0, 0, 9, 9, 10},
		{"reversed", 9, 9, 0, 0, 10},
		{"point", 4, 4, 4, 4, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, 0xffffff)
			if got := fb.Coverage(); got != tc.want {
				t.Errorf("line covers %d pixels, want %d", got, tc.want)
			}
		})
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(1, 1, 0xff8000)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 0xff || g>>8 != 0x80 || b>>8 != 0 || a>>8 != 0xff {
		t.Errorf("pixel = %x %x %x %x", r>>8, g>>8, b>>8, a>>8)
	}
}

func BenchmarkClear(b *testing.B) {
	fb := NewFramebuffer(320, 200)
	for b.Loop() {
		fb.Clear()
	}
}
