package render

import (
	"math"

	"github.com/taigrr/celestial/pkg/math3d"
)

// Camera defaults and limits.
const (
	DefaultDistance = 3.0
	DefaultZoom     = 1.0

	MinDistance = 1.1
	MaxDistance = 100.0
	MinZoom     = 0.1
	MaxZoom     = 20.0

	// DepthEpsilon is the smallest depth used in the perspective divide.
	// Vertices at or behind the camera plane are pinned to it instead of
	// being clipped.
	DepthEpsilon = 0.1
)

// DefaultFOV is the projection scale for a 1.2 radian vertical field of view.
var DefaultFOV = 1 / math.Tan(1.2/2)

// FOVScale converts a vertical field of view in radians to the projection
// scale 1/tan(fov/2). Angles outside (0, pi) return 0, which NewProjector
// treats as DefaultFOV.
func FOVScale(fov float64) float64 {
	if !(fov > 0 && fov < math.Pi) {
		return 0
	}
	return 1 / math.Tan(fov/2)
}

// CameraState is the orbit camera: two rotation angles applied to the
// model, the camera's distance along the view axis and a zoom factor.
type CameraState struct {
	AngleX   float64 // Pitch in radians, applied second
	AngleY   float64 // Yaw in radians, applied first
	Distance float64 // Camera sits at (0, 0, -Distance)
	Zoom     float64 // Multiplies the projection scale
}

// DefaultCamera returns the camera used on startup and after a reset.
func DefaultCamera() CameraState {
	return CameraState{Distance: DefaultDistance, Zoom: DefaultZoom}
}

// Rotation returns R = RotateX(AngleX) * RotateY(AngleY): yaw is applied
// to a vertex first, then pitch.
func (c CameraState) Rotation() math3d.Mat4 {
	return math3d.RotateX(c.AngleX).Mul(math3d.RotateY(c.AngleY))
}

// Rotate adds pitch and yaw deltas.
func (c *CameraState) Rotate(dx, dy float64) {
	c.AngleX += dx
	c.AngleY += dy
}

// Dolly moves the camera along the view axis, clamped to the distance limits.
func (c *CameraState) Dolly(delta float64) {
	c.Distance = clamp(c.Distance+delta, MinDistance, MaxDistance)
}

// ZoomBy adds delta to the zoom factor, clamped to the zoom limits.
func (c *CameraState) ZoomBy(delta float64) {
	c.Zoom = clamp(c.Zoom+delta, MinZoom, MaxZoom)
}

// Sanitized returns c with distance and zoom clamped to their limits and
// non-finite fields replaced by defaults.
func (c CameraState) Sanitized() CameraState {
	d := DefaultCamera()
	if !isFinite(c.AngleX) {
		c.AngleX = d.AngleX
	}
	if !isFinite(c.AngleY) {
		c.AngleY = d.AngleY
	}
	if !isFinite(c.Distance) {
		c.Distance = d.Distance
	}
	if !isFinite(c.Zoom) {
		c.Zoom = d.Zoom
	}
	c.Distance = clamp(c.Distance, MinDistance, MaxDistance)
	c.Zoom = clamp(c.Zoom, MinZoom, MaxZoom)
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
