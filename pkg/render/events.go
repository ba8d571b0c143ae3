package render

import (
	"github.com/taigrr/celestial/pkg/shade"
)

// Event is an input change applied by the Driver at the start of a frame.
type Event interface {
	apply(d *Driver)
}

// RotateEvent adds pitch (DX) and yaw (DY) deltas in radians.
type RotateEvent struct {
	DX, DY float64
}

// DistanceEvent moves the camera along the view axis.
type DistanceEvent struct {
	Delta float64
}

// ZoomEvent changes the projection zoom.
type ZoomEvent struct {
	Delta float64
}

// ModeEvent selects a shading mode.
type ModeEvent struct {
	Mode shade.Mode
}

// ResetEvent restores the initial camera.
type ResetEvent struct{}

// ResizeEvent changes the framebuffer size.
type ResizeEvent struct {
	Width, Height int
}

// WireframeEvent toggles the wireframe overlay.
type WireframeEvent struct{}

func (e RotateEvent) apply(d *Driver) {
	d.target.Rotate(e.DX, e.DY)
}

func (e DistanceEvent) apply(d *Driver) {
	d.target.Dolly(e.Delta)
}

func (e ZoomEvent) apply(d *Driver) {
	d.target.ZoomBy(e.Delta)
}

func (e ModeEvent) apply(d *Driver) {
	if !e.Mode.Valid() {
		Logger().Warn("ignoring invalid shading mode", "mode", int(e.Mode))
		return
	}
	d.State.Mode = e.Mode
}

func (ResetEvent) apply(d *Driver) {
	d.target = d.opts.Camera
	d.State.Camera = d.opts.Camera
	if d.orbit != nil {
		d.orbit.Stop()
	}
}

func (e ResizeEvent) apply(d *Driver) {
	if e.Width <= 0 || e.Height <= 0 {
		Logger().Warn("ignoring resize", "width", e.Width, "height", e.Height)
		return
	}
	d.fb.Resize(e.Width, e.Height)
	Logger().Debug("viewport resized", "width", e.Width, "height", e.Height)
}

func (WireframeEvent) apply(d *Driver) {
	d.State.Wireframe = !d.State.Wireframe
}
