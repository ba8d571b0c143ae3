package present

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/taigrr/celestial/pkg/render"
	"github.com/taigrr/celestial/pkg/shade"
)

var (
	hudBar   = lipgloss.NewStyle().Background(lipgloss.Color("#1c1c24"))
	hudFPS   = hudBar.Foreground(lipgloss.Color("#5fff87")).Padding(0, 1)
	hudName  = hudBar.Foreground(lipgloss.Color("#ffffff")).Bold(true).Padding(0, 1)
	hudStat  = hudBar.Foreground(lipgloss.Color("#5fd7ff")).Padding(0, 1)
	hudFaint = hudBar.Foreground(lipgloss.Color("#8a8a8a")).Padding(0, 1)

	modeColors = map[shade.Mode]string{
		shade.Star:  "#ffaf00",
		shade.Rock:  "#d7875f",
		shade.Gas:   "#ffd787",
		shade.Earth: "#5f87ff",
		shade.Moon:  "#bcbcbc",
	}
)

// HUD renders a one-line status bar with the frame rate, model name,
// shading mode, triangle count and animation time.
type HUD struct {
	Name string

	fps    float64
	frames int
	since  time.Time
	now    func() time.Time
}

// NewHUD creates a HUD for the named model.
func NewHUD(name string) *HUD {
	h := &HUD{Name: name, now: time.Now}
	h.since = h.now()
	return h
}

// Tick counts one presented frame. The rate is recomputed once per second.
func (h *HUD) Tick() {
	h.frames++
	now := h.now()
	if elapsed := now.Sub(h.since); elapsed >= time.Second {
		h.fps = float64(h.frames) / elapsed.Seconds()
		h.frames = 0
		h.since = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Render formats the bar for d, padded or truncated to width cells.
func (h *HUD) Render(d *render.Driver, width int) string {
	mode := d.State.Mode
	modeStyle := hudBar.Foreground(lipgloss.Color(modeColors[mode])).Bold(true).Padding(0, 1)

	wire := "[ ] wire"
	if d.State.Wireframe {
		wire = "[x] wire"
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		hudFPS.Render(fmt.Sprintf("%.0f FPS", h.fps)),
		hudName.Render(h.Name),
		modeStyle.Render(mode.String()),
		hudStat.Render(fmt.Sprintf("%d tris", d.TriangleCount())),
		hudStat.Render(fmt.Sprintf("t=%.1fs", d.Time)),
		hudFaint.Render(wire),
	)
	if width <= 0 {
		return bar
	}
	return hudBar.Width(width).MaxWidth(width).Render(bar)
}
