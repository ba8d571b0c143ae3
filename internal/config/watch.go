package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/taigrr/celestial/pkg/render"
)

// Watch reloads path each time it is written and calls fn with every
// config that loads and validates. Broken files are logged and skipped.
// The parent directory is watched so editors that replace the file on save
// are followed. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(abs)
			if err != nil {
				render.Logger().Warn("config reload failed", "path", abs, "err", err)
				continue
			}
			render.Logger().Info("config reloaded", "path", abs)
			fn(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			render.Logger().Warn("config watcher error", "err", err)
		}
	}
}

// Changes returns the driver events that move a viewer started with c to
// the settings in next. Wireframe is a toggle, so a change emits one
// WireframeEvent.
func (c Config) Changes(next Config) []render.Event {
	var events []render.Event
	if next.Mode != c.Mode {
		events = append(events, render.ModeEvent{Mode: next.Mode})
	}
	if next.Wireframe != c.Wireframe {
		events = append(events, render.WireframeEvent{})
	}
	if dx, dy := next.Camera.Pitch-c.Camera.Pitch, next.Camera.Yaw-c.Camera.Yaw; dx != 0 || dy != 0 {
		events = append(events, render.RotateEvent{DX: dx, DY: dy})
	}
	if d := next.Camera.Distance - c.Camera.Distance; d != 0 {
		events = append(events, render.DistanceEvent{Delta: d})
	}
	if z := next.Camera.Zoom - c.Camera.Zoom; z != 0 {
		events = append(events, render.ZoomEvent{Delta: z})
	}
	return events
}
