package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/taigrr/celestial/pkg/math3d"
	"github.com/taigrr/celestial/pkg/shade"
)

// degenerateArea is the smallest screen-space doubled area rasterized.
const degenerateArea = 1e-5

// maxLineCoord bounds wireframe endpoints so a vertex pinned near the camera
// plane cannot turn one edge into a very long Bresenham walk.
const maxLineCoord = 1 << 14

// FrameStats counts rasterizer work for one frame.
type FrameStats struct {
	Triangles  int // Triangles submitted
	Degenerate int // Triangles skipped for near-zero area
	Pixels     int // Pixels that passed the depth test and were shaded
}

// Rasterizer fills projected triangles into a Framebuffer.
type Rasterizer struct {
	fb    *Framebuffer
	View  mgl32.Vec3 // Direction toward the camera, passed to the shader
	Stats FrameStats
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{fb: fb, View: shade.ViewDir}
}

// Framebuffer returns the target buffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// ResetStats zeroes the frame statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = FrameStats{}
}

// edge is the signed doubled area of (a, b, p). Its sign tells which side
// of the line a->b the point lies on.
func edge(a, b ProjectedVertex, x, y float64) float64 {
	return (x-a.X)*(b.Y-a.Y) - (y-a.Y)*(b.X-a.X)
}

// DrawTriangle rasterizes one projected triangle, shading every pixel that
// is covered and closer than the current depth. Both windings are filled.
func (r *Rasterizer) DrawTriangle(p [3]ProjectedVertex, mode shade.Mode, time float64) {
	r.Stats.Triangles++

	v0, v1, v2 := p[0], p[1], p[2]
	area := edge(v0, v1, v2.X, v2.Y)
	if math.Abs(area) < degenerateArea || !isFinite(area) {
		r.Stats.Degenerate++
		return
	}

	fb := r.fb
	minX := max(int(math.Floor(min(v0.X, v1.X, v2.X))), 0)
	minY := max(int(math.Floor(min(v0.Y, v1.Y, v2.Y))), 0)
	maxX := min(int(math.Ceil(max(v0.X, v1.X, v2.X))), fb.Width-1)
	maxY := min(int(math.Ceil(max(v0.Y, v1.Y, v2.Y))), fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1 / area
	t := float32(time)

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		row := y * fb.Width
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := edge(v1, v2, px, py)
			w1 := edge(v2, v0, px, py)
			w2 := edge(v0, v1, px, py)
			inside := (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0)
			if !inside {
				continue
			}

			b0, b1, b2 := w0*invArea, w1*invArea, w2*invArea
			z := b0*v0.Z + b1*v1.Z + b2*v2.Z

			idx := row + x
			if z >= fb.Depth[idx] {
				continue
			}
			fb.Depth[idx] = z

			n := math3d.Weighted(v0.Normal, v1.Normal, v2.Normal, b0, b1, b2).Normalize()
			c := shade.Shade(mode, toVec3f(n), r.View, t)
			fb.Color[idx] = Pack(c)
			r.Stats.Pixels++
		}
	}
}

// DrawEdges draws the outline of a projected triangle. Depth is ignored so
// hidden edges show through.
func (r *Rasterizer) DrawEdges(p [3]ProjectedVertex, c uint32) {
	for _, v := range p {
		if !isFinite(v.X) || !isFinite(v.Y) || math.Abs(v.X) > maxLineCoord || math.Abs(v.Y) > maxLineCoord {
			return
		}
	}
	for i := range 3 {
		a, b := p[i], p[(i+1)%3]
		r.fb.DrawLine(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)), c)
	}
}

// DrawMesh projects and rasterizes every triangle.
func (r *Rasterizer) DrawMesh(tris []Triangle, proj Projector, mode shade.Mode, time float64) {
	for _, tri := range tris {
		r.DrawTriangle(proj.ProjectTriangle(tri), mode, time)
	}
}

// DrawMeshEdges overlays the wireframe of every triangle.
func (r *Rasterizer) DrawMeshEdges(tris []Triangle, proj Projector, c uint32) {
	for _, tri := range tris {
		p := proj.ProjectTriangle(tri)
		if p[0].Z <= DepthEpsilon && p[1].Z <= DepthEpsilon && p[2].Z <= DepthEpsilon {
			continue
		}
		r.DrawEdges(p, c)
	}
}

func toVec3f(v math3d.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
