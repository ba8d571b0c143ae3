// Package config holds the viewer settings: built-in defaults, an optional
// TOML file and validation. Command-line flags are applied on top by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/celestial/pkg/models"
	"github.com/taigrr/celestial/pkg/render"
	"github.com/taigrr/celestial/pkg/shade"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of viewer settings.
type Config struct {
	Mode      shade.Mode `toml:"mode"`
	FPS       int        `toml:"fps"`
	TimeStep  float64    `toml:"time_step" comment:"seconds per frame; 0 follows the wall clock"`
	Smooth    bool       `toml:"smooth" comment:"ease camera moves with springs"`
	Wireframe bool       `toml:"wireframe"`

	Background string `toml:"background" comment:"hex clear color"`
	WireColor  string `toml:"wire_color"`

	Camera Camera `toml:"camera"`
	Sphere Sphere `toml:"sphere"`
	Output Output `toml:"output"`
	Window Window `toml:"window"`
	Log    Log    `toml:"log"`
}

// Camera holds the initial camera.
type Camera struct {
	Distance float64 `toml:"distance"`
	Zoom     float64 `toml:"zoom"`
	FOV      float64 `toml:"fov" comment:"vertical field of view in radians"`
	Pitch    float64 `toml:"pitch"`
	Yaw      float64 `toml:"yaw"`
}

// Sphere configures the generated mesh used when no model file is given.
type Sphere struct {
	Lat int `toml:"lat"`
	Lon int `toml:"lon"`

	// Normals replaces loaded normals with normalized positions.
	Normals bool `toml:"normals"`
}

// Output configures headless rendering.
type Output struct {
	Dir     string `toml:"dir"`
	Pattern string `toml:"pattern"`
	Frames  int    `toml:"frames"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
}

// Window configures the desktop window.
type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Scale  int `toml:"scale"`
}

// Log configures the log file. An empty file discards logs in the
// terminal viewer and writes to stderr elsewhere.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Mode:       shade.Moon,
		FPS:        60,
		TimeStep:   0.02,
		Background: "#000000",
		WireColor:  "#00ff80",
		Camera: Camera{
			Distance: render.DefaultDistance,
			Zoom:     render.DefaultZoom,
			FOV:      1.2,
		},
		Sphere: Sphere{Lat: 64, Lon: 64},
		Output: Output{
			Dir:     "frames",
			Pattern: "frame-%05d.png",
			Frames:  60,
			Width:   320,
			Height:  240,
		},
		Window: Window{Width: 640, Height: 480, Scale: 1},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return nil
}

// Encode writes the settings as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks every field and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Mode.Valid(), "mode %d", int(c.Mode))
	check(c.FPS > 0 && c.FPS <= 1000, "fps %d not in 1..1000", c.FPS)
	check(c.TimeStep >= 0, "time_step %v is negative", c.TimeStep)
	check(c.Camera.Distance >= render.MinDistance && c.Camera.Distance <= render.MaxDistance,
		"camera.distance %v not in %v..%v", c.Camera.Distance, render.MinDistance, render.MaxDistance)
	check(c.Camera.Zoom >= render.MinZoom && c.Camera.Zoom <= render.MaxZoom,
		"camera.zoom %v not in %v..%v", c.Camera.Zoom, render.MinZoom, render.MaxZoom)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 3.1, "camera.fov %v not in (0, 3.1)", c.Camera.FOV)
	check(c.Sphere.Lat >= models.MinSphereSegments && c.Sphere.Lon >= models.MinSphereSegments,
		"sphere %dx%d below %d segments", c.Sphere.Lat, c.Sphere.Lon, models.MinSphereSegments)
	check(c.Output.Frames >= 0, "output.frames %d is negative", c.Output.Frames)
	check(c.Output.Width > 0 && c.Output.Height > 0, "output size %dx%d", c.Output.Width, c.Output.Height)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Scale > 0, "window.scale %d", c.Window.Scale)

	if _, err := render.ParseColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("%w: background: %w", ErrInvalid, err))
	}
	if _, err := render.ParseColor(c.WireColor); err != nil {
		errs = append(errs, fmt.Errorf("%w: wire_color: %w", ErrInvalid, err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.Log.Level))
	return l, err
}

// RenderOptions converts the settings to driver options for a viewport.
func (c Config) RenderOptions(width, height int) (render.Options, error) {
	bg, err := render.ParseColor(c.Background)
	if err != nil {
		return render.Options{}, fmt.Errorf("background: %w", err)
	}
	wire, err := render.ParseColor(c.WireColor)
	if err != nil {
		return render.Options{}, fmt.Errorf("wire_color: %w", err)
	}
	return render.Options{
		Width:    width,
		Height:   height,
		FPS:      c.FPS,
		TimeStep: c.TimeStep,
		FOV:      render.FOVScale(c.Camera.FOV),
		Camera: render.CameraState{
			AngleX:   c.Camera.Pitch,
			AngleY:   c.Camera.Yaw,
			Distance: c.Camera.Distance,
			Zoom:     c.Camera.Zoom,
		},
		Mode:       c.Mode,
		Wireframe:  c.Wireframe,
		Smooth:     c.Smooth,
		Background: bg,
		WireColor:  wire,
	}, nil
}
