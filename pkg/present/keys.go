// Package present delivers finished frames to a display: the terminal, a
// desktop window or a sequence of PNG files. It also translates each
// display's input into render events.
package present

import (
	"strings"

	"github.com/taigrr/celestial/pkg/render"
	"github.com/taigrr/celestial/pkg/shade"
)

// Input step sizes per key press.
const (
	RotateStep   = 0.05 // radians
	DistanceStep = 0.5
	ZoomStep     = 0.1
	DragScale    = 0.01 // radians per cell (or pixel) of mouse drag
)

// Action is a viewer command that the driver does not handle.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleHUD
)

type binding struct {
	keys   []string
	event  render.Event
	action Action
}

// bindings is the shared key map. Key names follow ultraviolet's
// MatchString notation.
var bindings = []binding{
	{keys: []string{"1"}, event: render.ModeEvent{Mode: shade.Star}},
	{keys: []string{"2"}, event: render.ModeEvent{Mode: shade.Rock}},
	{keys: []string{"3"}, event: render.ModeEvent{Mode: shade.Gas}},
	{keys: []string{"4"}, event: render.ModeEvent{Mode: shade.Earth}},
	{keys: []string{"5"}, event: render.ModeEvent{Mode: shade.Moon}},
	{keys: []string{"a", "left"}, event: render.RotateEvent{DY: -RotateStep}},
	{keys: []string{"d", "right"}, event: render.RotateEvent{DY: RotateStep}},
	{keys: []string{"w", "up"}, event: render.RotateEvent{DX: -RotateStep}},
	{keys: []string{"s", "down"}, event: render.RotateEvent{DX: RotateStep}},
	{keys: []string{"q"}, event: render.DistanceEvent{Delta: -DistanceStep}},
	{keys: []string{"e"}, event: render.DistanceEvent{Delta: DistanceStep}},
	{keys: []string{"+", "="}, event: render.ZoomEvent{Delta: ZoomStep}},
	{keys: []string{"-", "_"}, event: render.ZoomEvent{Delta: -ZoomStep}},
	{keys: []string{"r"}, event: render.ResetEvent{}},
	{keys: []string{"x"}, event: render.WireframeEvent{}},
	{keys: []string{"?", "shift+/"}, action: ActionToggleHUD},
	{keys: []string{"esc", "escape", "ctrl+c"}, action: ActionQuit},
}

// Lookup resolves a key name to a driver event or a viewer action. Letters
// match in either case. Unknown keys return (nil, ActionNone).
func Lookup(key string) (render.Event, Action) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, b := range bindings {
		for _, k := range b.keys {
			if k == key {
				return b.event, b.action
			}
		}
	}
	return nil, ActionNone
}

// match returns the first binding accepted by matches.
func match(matches func(keys ...string) bool) (render.Event, Action) {
	for _, b := range bindings {
		if matches(b.keys...) {
			return b.event, b.action
		}
	}
	return nil, ActionNone
}

// WheelEvent returns the zoom event for one scroll notch.
func WheelEvent(up bool) render.Event {
	if up {
		return render.ZoomEvent{Delta: ZoomStep}
	}
	return render.ZoomEvent{Delta: -ZoomStep}
}

// DragEvent converts a pointer movement into a rotation. Horizontal motion
// yaws and vertical motion pitches.
func DragEvent(dx, dy int) render.Event {
	return render.RotateEvent{DX: float64(dy) * DragScale, DY: float64(dx) * DragScale}
}
