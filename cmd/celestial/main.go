// celestial - procedural planet viewer
// Renders a sphere (or any OBJ/GLB model) with animated star, rock, gas,
// earth and moon surface shaders, in the terminal, a window or to PNG files.
//
// Controls:
//
//	1-5         - Star, rock, gas, earth, moon
//	A/D         - Yaw left/right
//	W/S         - Pitch up/down
//	Q/E         - Move camera closer/farther
//	+/-, scroll - Zoom in/out
//	Mouse drag  - Rotate
//	R           - Reset camera
//	X           - Toggle wireframe
//	?           - Toggle HUD overlay (terminal only)
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/celestial/internal/config"
	"github.com/taigrr/celestial/pkg/present"
	"github.com/taigrr/celestial/pkg/render"
)

var version = "dev"

const controls = `Controls:
  1-5         Star, rock, gas, earth, moon
  A/D         Yaw left/right
  W/S         Pitch up/down
  Q/E         Camera closer/farther
  +/-, scroll Zoom
  Mouse drag  Rotate
  R           Reset camera
  X           Toggle wireframe
  ?           Toggle HUD (terminal)
  Esc         Quit`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// options are the command-line flags. Flags that were set override the
// config file.
type options struct {
	configPath string
	watch      bool
	mode       string
	fps        int
	timeStep   float64
	distance   float64
	zoom       float64
	fov        float64
	lat, lon   int
	normals    bool
	smooth     bool
	wireframe  bool
	background string
	logFile    string
	logLevel   string

	frames  int
	out     string
	pattern string
	width   int
	height  int
	scale   int
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "celestial [model.obj|model.glb]",
		Short: "Procedural planet viewer for the terminal",
		Long: "celestial renders a sphere, or any OBJ/GLB model, with animated procedural\n" +
			"surface shaders using a software rasterizer.\n\n" + controls,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			watchPath := ""
			if o.watch {
				watchPath = o.configPath
			}
			return runTerminal(cmd.Context(), cfg, modelArg(args), watchPath)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	pf.BoolVar(&o.watch, "watch", false, "apply config file edits while running (terminal viewer)")
	pf.StringVarP(&o.mode, "mode", "m", "", "shading mode: star, rock, gas, earth, moon or 1-5")
	pf.IntVar(&o.fps, "fps", 0, "target frames per second")
	pf.Float64Var(&o.timeStep, "time-step", 0, "animation seconds per frame (0 follows the wall clock)")
	pf.Float64Var(&o.distance, "distance", 0, "initial camera distance")
	pf.Float64Var(&o.zoom, "zoom", 0, "initial zoom")
	pf.Float64Var(&o.fov, "fov", 0, "vertical field of view in radians")
	pf.IntVar(&o.lat, "lat", 0, "sphere latitude segments")
	pf.IntVar(&o.lon, "lon", 0, "sphere longitude segments")
	pf.BoolVar(&o.normals, "sphere-normals", false, "use normalized positions as normals")
	pf.BoolVar(&o.smooth, "smooth", false, "ease camera moves with springs")
	pf.BoolVar(&o.wireframe, "wireframe", false, "start with the wireframe overlay")
	pf.StringVar(&o.background, "bg", "", "background color (hex)")
	pf.StringVar(&o.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newRenderCmd(o), newWindowCmd(o), newConfigCmd(o))
	return root
}

func newRenderCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render frames to numbered PNG files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			return runHeadless(cmd.Context(), cmd.OutOrStdout(), cfg, modelArg(args))
		},
	}
	f := cmd.Flags()
	f.IntVarP(&o.frames, "frames", "n", 0, "number of frames (0 renders until interrupted)")
	f.StringVarP(&o.out, "out", "o", "", "output directory")
	f.StringVar(&o.pattern, "pattern", "", "file name pattern taking the frame number")
	f.IntVar(&o.width, "width", 0, "frame width in pixels")
	f.IntVar(&o.height, "height", 0, "frame height in pixels")
	return cmd
}

func newWindowCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window [model]",
		Short: "Open a desktop window",
		Long:  "Open a desktop window showing the rasterized frames.\n\n" + controls,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			return runWindow(cmd.Context(), cfg, modelArg(args))
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.width, "width", 0, "framebuffer width in pixels")
	f.IntVar(&o.height, "height", 0, "framebuffer height in pixels")
	f.IntVar(&o.scale, "scale", 0, "window pixels per framebuffer pixel")
	return cmd
}

func newConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func modelArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// load reads the config file, applies the flags that were set and
// validates the result.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if err := o.apply(cmd, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (o *options) apply(cmd *cobra.Command, cfg *config.Config) error {
	set := cmd.Flags().Changed

	if set("mode") {
		if err := cfg.Mode.UnmarshalText([]byte(o.mode)); err != nil {
			return err
		}
	}
	if set("fps") {
		cfg.FPS = o.fps
	}
	if set("time-step") {
		cfg.TimeStep = o.timeStep
	}
	if set("distance") {
		cfg.Camera.Distance = o.distance
	}
	if set("zoom") {
		cfg.Camera.Zoom = o.zoom
	}
	if set("fov") {
		cfg.Camera.FOV = o.fov
	}
	if set("lat") {
		cfg.Sphere.Lat = o.lat
	}
	if set("lon") {
		cfg.Sphere.Lon = o.lon
	}
	if set("sphere-normals") {
		cfg.Sphere.Normals = o.normals
	}
	if set("smooth") {
		cfg.Smooth = o.smooth
	}
	if set("wireframe") {
		cfg.Wireframe = o.wireframe
	}
	if set("bg") {
		cfg.Background = o.background
	}
	if set("log-file") {
		cfg.Log.File = o.logFile
	}
	if set("log-level") {
		cfg.Log.Level = o.logLevel
	}

	switch cmd.Name() {
	case "render":
		if set("frames") {
			cfg.Output.Frames = o.frames
		}
		if set("out") {
			cfg.Output.Dir = o.out
		}
		if set("pattern") {
			cfg.Output.Pattern = o.pattern
		}
		if set("width") {
			cfg.Output.Width = o.width
		}
		if set("height") {
			cfg.Output.Height = o.height
		}
	case "window":
		if set("width") {
			cfg.Window.Width = o.width
		}
		if set("height") {
			cfg.Window.Height = o.height
		}
		if set("scale") {
			cfg.Window.Scale = o.scale
		}
	}
	return nil
}

// setupLogger installs the render logger. Without a log file the terminal
// viewer stays silent, since stderr shares the screen.
func setupLogger(cfg config.Config, quiet bool) (io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	case quiet:
		render.SetLogger(nil)
		return closer, nil
	}

	render.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

// runTerminal runs the interactive viewer. A non-empty watchPath is
// reloaded on change and its edits are applied as events.
func runTerminal(ctx context.Context, cfg config.Config, path, watchPath string) error {
	logs, err := setupLogger(cfg, true)
	if err != nil {
		return err
	}
	defer logs.Close()

	mesh, err := loadMesh(path, cfg)
	if err != nil {
		return err
	}

	term, err := present.OpenTerminal()
	if err != nil {
		return err
	}
	defer term.Close()

	width, height := term.FramebufferSize()
	opts, err := cfg.RenderOptions(width, height)
	if err != nil {
		return err
	}
	d, err := render.NewDriver(mesh, opts)
	if err != nil {
		return err
	}

	hud := present.NewHUD(mesh.Name)
	term.HUD = func(width int) string { return hud.Render(d, width) }

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan render.Event, 64)
	go term.Listen(ctx, events, cancel)
	if watchPath != "" {
		go watchConfig(ctx, cfg, watchPath, events)
	}

	sink := render.SinkFunc(func(fb *render.Framebuffer) error {
		hud.Tick()
		return term.Present(fb)
	})
	return ignoreCanceled(d.Run(ctx, events, sink))
}

// watchConfig forwards config file edits to the driver. Reloaded values
// replace flag overrides for the keys that changed.
func watchConfig(ctx context.Context, cur config.Config, path string, events chan<- render.Event) {
	err := config.Watch(ctx, path, func(next config.Config) {
		for _, ev := range cur.Changes(next) {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
		cur = next
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		render.Logger().Warn("config watch stopped", "err", err)
	}
}

func runHeadless(ctx context.Context, stdout io.Writer, cfg config.Config, path string) error {
	logs, err := setupLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logs.Close()

	mesh, err := loadMesh(path, cfg)
	if err != nil {
		return err
	}

	opts, err := cfg.RenderOptions(cfg.Output.Width, cfg.Output.Height)
	if err != nil {
		return err
	}
	if opts.TimeStep <= 0 {
		// Files have no wall clock.
		opts.TimeStep = 1 / float64(opts.FPS)
	}
	opts.FPS = 1000
	opts.MaxFrames = cfg.Output.Frames

	d, err := render.NewDriver(mesh, opts)
	if err != nil {
		return err
	}
	seq, err := present.NewPNGSequence(cfg.Output.Dir, cfg.Output.Pattern)
	if err != nil {
		return err
	}

	err = ignoreCanceled(d.Run(ctx, nil, seq))
	fmt.Fprintf(stdout, "wrote %d frames to %s\n", seq.Written(), seq.Dir)
	return err
}

func runWindow(ctx context.Context, cfg config.Config, path string) error {
	logs, err := setupLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logs.Close()

	mesh, err := loadMesh(path, cfg)
	if err != nil {
		return err
	}

	opts, err := cfg.RenderOptions(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return err
	}
	d, err := render.NewDriver(mesh, opts)
	if err != nil {
		return err
	}

	return present.RunWindow(ctx, d, present.WindowOptions{
		Title: "celestial - " + mesh.Name,
		Scale: cfg.Window.Scale,
		FPS:   cfg.FPS,
	})
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
