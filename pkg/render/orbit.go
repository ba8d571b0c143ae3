package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settle is the distance and speed below which a spring snaps to its target.
const settle = 1e-4

// springAxis eases one camera field toward its target.
type springAxis struct {
	spring   harmonica.Spring
	velocity float64
}

// step advances the axis one frame and returns the new position.
func (a *springAxis) step(pos, target float64) float64 {
	pos, a.velocity = a.spring.Update(pos, a.velocity, target)
	if math.Abs(pos-target) < settle && math.Abs(a.velocity) < settle {
		a.velocity = 0
		return target
	}
	return pos
}

// Orbit smooths camera motion with critically damped springs so discrete
// key presses glide instead of jump.
type Orbit struct {
	pitch, yaw, distance, zoom springAxis
}

// NewOrbit creates springs tuned for the given frame rate.
func NewOrbit(fps int) *Orbit {
	if fps <= 0 {
		fps = 60
	}
	// Frequency 6 settles in a few hundred milliseconds; damping 1 avoids
	// overshoot.
	s := harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)
	return &Orbit{
		pitch:    springAxis{spring: s},
		yaw:      springAxis{spring: s},
		distance: springAxis{spring: s},
		zoom:     springAxis{spring: s},
	}
}

// Step moves cur one frame toward target.
func (o *Orbit) Step(cur *CameraState, target CameraState) {
	cur.AngleX = o.pitch.step(cur.AngleX, target.AngleX)
	cur.AngleY = o.yaw.step(cur.AngleY, target.AngleY)
	cur.Distance = o.distance.step(cur.Distance, target.Distance)
	cur.Zoom = o.zoom.step(cur.Zoom, target.Zoom)
}

// Stop discards any remaining velocity.
func (o *Orbit) Stop() {
	o.pitch.velocity = 0
	o.yaw.velocity = 0
	o.distance.velocity = 0
	o.zoom.velocity = 0
}

// Settled reports whether every axis is at rest.
func (o *Orbit) Settled() bool {
	return o.pitch.velocity == 0 && o.yaw.velocity == 0 &&
		o.distance.velocity == 0 && o.zoom.velocity == 0
}
