package render

import (
	"context"
	"fmt"
	"time"

	"github.com/taigrr/celestial/pkg/shade"
)

// Sink receives each finished frame. The framebuffer is reused by the next
// frame, so a sink must copy anything it keeps.
type Sink interface {
	Present(fb *Framebuffer) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(fb *Framebuffer) error

// Present calls f(fb).
func (f SinkFunc) Present(fb *Framebuffer) error { return f(fb) }

// Options configures a Driver.
type Options struct {
	Width, Height int

	FPS        int         // Target frame rate for Run; default 60
	TimeStep   float64     // Seconds per frame; <= 0 uses wall-clock time
	FOV        float64     // Projection scale; 0 selects DefaultFOV
	Camera     CameraState // Initial camera; zero value selects DefaultCamera
	Mode       shade.Mode
	Wireframe  bool
	Smooth     bool   // Ease camera changes with springs
	MaxFrames  int    // Run stops after this many frames; 0 runs until canceled
	Background uint32 // Packed clear color
	WireColor  uint32 // Packed wireframe color
}

// State is what the viewer currently shows.
type State struct {
	Camera    CameraState
	Mode      shade.Mode
	Wireframe bool
}

// Driver owns the framebuffer and advances the animation one frame at a
// time. It is not safe for concurrent use; input reaches it through events.
type Driver struct {
	State State
	Time  float64 // Animation time in seconds

	opts   Options
	tris   []Triangle
	target CameraState
	orbit  *Orbit
	fb     *Framebuffer
	raster *Rasterizer
	frames int
	last   time.Time
	now    func() time.Time
}

// NewDriver validates mesh and prepares a driver for it.
func NewDriver(mesh MeshSource, opts Options) (*Driver, error) {
	tris, err := CollectTriangles(mesh)
	if err != nil {
		return nil, fmt.Errorf("prepare mesh: %w", err)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", opts.Width, opts.Height)
	}
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("invalid shading mode %d", int(opts.Mode))
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Camera == (CameraState{}) {
		opts.Camera = DefaultCamera()
	}
	opts.Camera = opts.Camera.Sanitized()

	fb := &Framebuffer{Background: opts.Background}
	fb.Resize(opts.Width, opts.Height)

	d := &Driver{
		State: State{
			Camera:    opts.Camera,
			Mode:      opts.Mode,
			Wireframe: opts.Wireframe,
		},
		opts:   opts,
		tris:   tris,
		target: opts.Camera,
		fb:     fb,
		raster: NewRasterizer(fb),
		now:    time.Now,
	}
	if opts.Smooth {
		d.orbit = NewOrbit(opts.FPS)
	}

	Logger().Debug("driver ready",
		"triangles", len(tris),
		"width", opts.Width,
		"height", opts.Height,
		"mode", opts.Mode.String())
	return d, nil
}

// Apply applies one input event.
func (d *Driver) Apply(ev Event) {
	if ev == nil {
		return
	}
	ev.apply(d)
}

// Target returns the camera the driver is moving toward. Without smoothing
// it equals State.Camera after the next frame.
func (d *Driver) Target() CameraState {
	return d.target
}

// Framebuffer returns the buffer of the last frame.
func (d *Driver) Framebuffer() *Framebuffer {
	return d.fb
}

// Stats returns the rasterizer counters of the last frame.
func (d *Driver) Stats() FrameStats {
	return d.raster.Stats
}

// Frames returns the number of frames rendered.
func (d *Driver) Frames() int {
	return d.frames
}

// TriangleCount returns the number of triangles drawn per frame.
func (d *Driver) TriangleCount() int {
	return len(d.tris)
}

// Frame clears the buffers, draws the mesh with the current state and
// advances the animation clock.
func (d *Driver) Frame() *Framebuffer {
	if d.orbit != nil {
		d.orbit.Step(&d.State.Camera, d.target)
	} else {
		d.State.Camera = d.target
	}

	d.fb.Clear()
	d.raster.ResetStats()

	proj := NewProjector(d.State.Camera, d.fb.Width, d.fb.Height, d.opts.FOV)
	d.raster.DrawMesh(d.tris, proj, d.State.Mode, d.Time)
	if d.State.Wireframe {
		d.raster.DrawMeshEdges(d.tris, proj, d.opts.WireColor)
	}

	d.advance()
	d.frames++
	return d.fb
}

// advance moves the animation clock by the fixed step or by the wall-clock
// time since the previous frame, capped at 100ms.
func (d *Driver) advance() {
	if d.opts.TimeStep > 0 {
		d.Time += d.opts.TimeStep
		return
	}
	now := d.now()
	if !d.last.IsZero() {
		d.Time += min(now.Sub(d.last).Seconds(), 0.1)
	}
	d.last = now
}

// drain applies every pending event without blocking. A closed channel is
// replaced by nil so later drains are no-ops.
func (d *Driver) drain(events *<-chan Event) {
	for *events != nil {
		select {
		case ev, ok := <-*events:
			if !ok {
				*events = nil
				return
			}
			d.Apply(ev)
		default:
			return
		}
	}
}

// Run renders frames at the configured rate until ctx is canceled or
// MaxFrames is reached. Events are applied at the start of each frame. A
// sink error drops that frame and is logged; the loop keeps going.
// Run returns ctx.Err() on cancellation and nil when the frame limit ends it.
func (d *Driver) Run(ctx context.Context, events <-chan Event, sink Sink) error {
	interval := time.Second / time.Duration(d.opts.FPS)
	t := time.NewTicker(interval)
	defer t.Stop()

	Logger().Info("driver started", "fps", d.opts.FPS, "max_frames", d.opts.MaxFrames)
	defer func() {
		Logger().Info("driver stopped", "frames", d.frames)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.drain(&events)
		fb := d.Frame()
		if err := sink.Present(fb); err != nil {
			Logger().Warn("frame dropped", "frame", d.frames, "err", err)
		}

		if d.opts.MaxFrames > 0 && d.frames >= d.opts.MaxFrames {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
