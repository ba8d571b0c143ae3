package present

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/taigrr/celestial/pkg/render"
)

func TestHUDTick(t *testing.T) {
	start := time.Unix(100, 0)
	now := start
	h := &HUD{Name: "sphere", now: func() time.Time { return now }, since: start}

	for range 30 {
		now = now.Add(20 * time.Millisecond)
		h.Tick()
	}
	if h.FPS() != 0 {
		t.Errorf("FPS = %v before a full second", h.FPS())
	}

	for range 20 {
		now = now.Add(20 * time.Millisecond)
		h.Tick()
	}
	if got := h.FPS(); got < 49.9 || got > 50.1 {
		t.Errorf("FPS = %v, want 50", got)
	}
}

func TestHUDRender(t *testing.T) {
	d := newTestDriver(t)
	d.Frame()
	h := NewHUD("sphere.obj")

	plain := ansi.Strip(h.Render(d, 0))
	for _, want := range []string{"FPS", "sphere.obj", "moon", "128 tris", "t=0.0s", "[ ] wire"} {
		if !strings.Contains(plain, want) {
			t.Errorf("HUD %q missing %q", plain, want)
		}
	}

	d.Apply(render.WireframeEvent{})
	d.Frame()
	if plain := ansi.Strip(h.Render(d, 0)); !strings.Contains(plain, "[x] wire") {
		t.Errorf("HUD %q does not show wireframe", plain)
	}
}

func TestHUDRenderWidth(t *testing.T) {
	d := newTestDriver(t)
	out := NewHUD("m").Render(d, 120)
	if w := lipgloss.Width(out); w != 120 {
		t.Errorf("width = %d, want 120", w)
	}
}
