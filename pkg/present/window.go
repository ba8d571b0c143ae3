//go:build cgo

package present

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/celestial/pkg/render"
)

// WindowOptions configures RunWindow.
type WindowOptions struct {
	Title string
	Scale int // window pixels per framebuffer pixel; default 1
	FPS   int // ticks per second; default 60
}

// keyNames maps the non-character keys the viewer binds.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyEscape:     "esc",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
}

// RunWindow shows the driver's frames in a desktop window and forwards
// keyboard and mouse input to it. It blocks until the window closes, the
// quit key is pressed or ctx is canceled.
func RunWindow(ctx context.Context, d *render.Driver, opts WindowOptions) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "celestial"
	}

	fb := d.Framebuffer()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(fb.Width*opts.Scale, fb.Height*opts.Scale)
	ebiten.SetTPS(opts.FPS)

	g := &windowGame{ctx: ctx, d: d}
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type windowGame struct {
	ctx      context.Context
	d        *render.Driver
	img      *ebiten.Image
	pix      []byte
	lastX    int
	lastY    int
	dragging bool
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	for key, name := range keyNames {
		if inpututil.IsKeyJustPressed(key) {
			if g.key(name) {
				return ebiten.Termination
			}
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if g.key(string(r)) {
			return ebiten.Termination
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.d.Apply(WheelEvent(wy > 0))
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			g.d.Apply(DragEvent(x-g.lastX, y-g.lastY))
		}
		g.dragging = true
	} else {
		g.dragging = false
	}
	g.lastX, g.lastY = x, y

	g.d.Frame()
	return nil
}

// key applies the binding for name and reports whether it asks to quit.
// The HUD binding has no window counterpart.
func (g *windowGame) key(name string) bool {
	ev, action := Lookup(name)
	if action == ActionQuit {
		return true
	}
	g.d.Apply(ev)
	return false
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.d.Framebuffer()
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
		g.pix = make([]byte, fb.Width*fb.Height*4)
	}

	fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.d.Framebuffer()
	return fb.Width, fb.Height
}
