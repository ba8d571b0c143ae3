package render

import (
	"math"

	"github.com/taigrr/celestial/pkg/math3d"
)

// ProjectedVertex is a vertex in screen space. X and Y are pixel
// coordinates, Z is the linear view-space depth and Normal is the rotated,
// not yet renormalized, vertex normal.
type ProjectedVertex struct {
	X, Y   float64
	Z      float64
	Normal math3d.Vec3
}

// Projector maps model-space vertices to screen space for one frame.
type Projector struct {
	rotation math3d.Mat4
	distance float64
	scaleX   float64 // FOV * Zoom * Aspect
	scaleY   float64 // FOV * Zoom
	width    float64
	height   float64
}

// NewProjector builds the transform for a camera and viewport. fov is the
// projection scale (see DefaultFOV); zero selects the default.
func NewProjector(cam CameraState, width, height int, fov float64) Projector {
	if fov <= 0 {
		fov = DefaultFOV
	}
	aspect := 1.0
	if width > 0 {
		aspect = float64(height) / float64(width)
	}
	return Projector{
		rotation: cam.Rotation(),
		distance: cam.Distance,
		scaleX:   fov * cam.Zoom * aspect,
		scaleY:   fov * cam.Zoom,
		width:    float64(width),
		height:   float64(height),
	}
}

// Project transforms one vertex. The camera sits at (0, 0, -distance)
// looking down +Z, so depth is the rotated z plus the distance.
func (p Projector) Project(v Vertex) ProjectedVertex {
	rotated := p.rotation.MulVec3(v.Position)
	z := rotated.Z + p.distance
	w := math.Max(z, DepthEpsilon)

	ndcX := rotated.X / w * p.scaleX
	ndcY := rotated.Y / w * p.scaleY

	return ProjectedVertex{
		X:      (ndcX*0.5 + 0.5) * p.width,
		Y:      (-ndcY*0.5 + 0.5) * p.height,
		Z:      z,
		Normal: p.rotation.MulVec3Dir(v.Normal),
	}
}

// ProjectTriangle projects all three vertices of t.
func (p Projector) ProjectTriangle(t Triangle) [3]ProjectedVertex {
	return [3]ProjectedVertex{
		p.Project(t.V[0]),
		p.Project(t.V[1]),
		p.Project(t.V[2]),
	}
}
