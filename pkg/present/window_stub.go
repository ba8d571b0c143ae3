//go:build !cgo

package present

import (
	"context"
	"errors"

	"github.com/taigrr/celestial/pkg/render"
)

// WindowOptions configures RunWindow.
type WindowOptions struct {
	Title string
	Scale int
	FPS   int
}

// RunWindow is unavailable without cgo.
func RunWindow(_ context.Context, _ *render.Driver, _ WindowOptions) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
