package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/celestial/internal/config"
	"github.com/taigrr/celestial/pkg/shade"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, err := execute(t, "render",
		"--frames", "3", "--out", dir,
		"--width", "16", "--height", "12",
		"--lat", "6", "--lon", "6",
		"--mode", "earth", "--log-level", "error")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "wrote 3 frames") {
		t.Errorf("output = %q", out)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("%d files written, want 3", len(entries))
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--mode", "3", "--distance", "7")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"gas", "distance = 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("mode = \"rock\"\nfps = 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	cmd, _, err := root.Find([]string{"config"})
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.ParseFlags([]string{"--config", path, "--fps", "90"}); err != nil {
		t.Fatal(err)
	}

	o := &options{configPath: path, fps: 90}
	cfg, err := o.load(cmd)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != shade.Rock {
		t.Errorf("Mode = %v, want rock from file", cfg.Mode)
	}
	if cfg.FPS != 90 {
		t.Errorf("FPS = %d, want 90 from flag", cfg.FPS)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad mode", []string{"config", "--mode", "comet"}},
		{"bad distance", []string{"config", "--distance", "0.2"}},
		{"bad color", []string{"config", "--bg", "nope"}},
		{"too many args", []string{"render", "a.obj", "b.obj"}},
		{"unknown format", []string{"render", "--frames", "1", "--out", "unused", "model.stl"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := execute(t, tc.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMesh(t *testing.T) {
	cfg := config.Default()
	cfg.Sphere.Lat, cfg.Sphere.Lon = 8, 12

	sphere, err := loadMesh("", cfg)
	if err != nil {
		t.Fatalf("sphere: %v", err)
	}
	if sphere.TriangleCount() != 8*12*2 {
		t.Errorf("sphere TriangleCount = %d", sphere.TriangleCount())
	}

	path := filepath.Join(t.TempDir(), "tri.OBJ")
	obj := "v 10 10 0\nv 14 10 0\nv 10 14 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}
	mesh, err := loadMesh(path, cfg)
	if err != nil {
		t.Fatalf("obj: %v", err)
	}
	if c := mesh.Center(); c.Len() > 1e-9 {
		t.Errorf("model not centered: %v", c)
	}
	if r := mesh.Radius(mesh.Center()); math.Abs(r-1) > 1e-9 {
		t.Errorf("model radius = %v, want 1", r)
	}

	if _, err := loadMesh(filepath.Join(t.TempDir(), "missing.glb"), cfg); err == nil {
		t.Error("expected error for missing glb")
	}
}
