package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigrr/celestial/pkg/render"
	"github.com/taigrr/celestial/pkg/shade"
)

func TestChanges(t *testing.T) {
	base := Default()

	tests := []struct {
		name   string
		modify func(*Config)
		want   []render.Event
	}{
		{"none", func(*Config) {}, nil},
		{"mode", func(c *Config) { c.Mode = shade.Star }, []render.Event{render.ModeEvent{Mode: shade.Star}}},
		{"wireframe", func(c *Config) { c.Wireframe = true }, []render.Event{render.WireframeEvent{}}},
		{"yaw", func(c *Config) { c.Camera.Yaw = 0.5 }, []render.Event{render.RotateEvent{DY: 0.5}}},
		{"distance and zoom", func(c *Config) {
			c.Camera.Distance = 4
			c.Camera.Zoom = 1.5
		}, []render.Event{render.DistanceEvent{Delta: 1}, render.ZoomEvent{Delta: 0.5}}},
		{"fps only", func(c *Config) { c.FPS = 30 }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := base
			tc.modify(&next)
			got := base.Changes(next)
			if len(got) != len(tc.want) {
				t.Fatalf("Changes = %#v, want %#v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("event %d = %#v, want %#v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestWatch(t *testing.T) {
	path := writeConfig(t, "mode = \"moon\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) { reloads <- c })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("mode = \"gas\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloads:
			if cfg.Mode != shade.Gas {
				continue
			}
			cancel()
			if err := <-done; err != context.Canceled {
				t.Errorf("Watch returned %v, want context.Canceled", err)
			}
			return
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "c.toml"), func(Config) {})
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
