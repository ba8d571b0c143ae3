package present

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/celestial/pkg/render"
)

const (
	mouseOn  = "\x1b[?1003h\x1b[?1006h" // any-event tracking, SGR encoding
	mouseOff = "\x1b[?1003l\x1b[?1006l"
)

// Terminal is a sink that draws frames as half-block cells on the
// terminal's alternate screen.
type Terminal struct {
	// HUD, when set, renders the status bar for the given width. It is
	// called from Present, so it runs on the render goroutine.
	HUD func(width int) string

	mu         sync.Mutex
	term       *uv.Terminal
	cols, rows int
	showHUD    atomic.Bool
}

// OpenTerminal switches the controlling terminal to the alternate screen
// with mouse reporting enabled. Close restores it.
func OpenTerminal() (*Terminal, error) {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	fmt.Fprint(os.Stdout, mouseOn)

	render.Logger().Debug("terminal opened", "cols", cols, "rows", rows)
	return &Terminal{term: term, cols: cols, rows: rows}, nil
}

// FramebufferSize returns the framebuffer size that fills the terminal.
func (t *Terminal) FramebufferSize() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return render.CellSize(t.cols, t.rows)
}

// ShowHUD sets whether the status bar is drawn.
func (t *Terminal) ShowHUD(on bool) {
	t.showHUD.Store(on)
}

// Present draws fb and flushes the changed cells.
func (t *Terminal) Present(fb *render.Framebuffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cols := min(t.cols, fb.Width)
	rows := min(t.rows, (fb.Height+1)/2)
	fb.Draw(t.term, uv.Rect(0, 0, cols, rows))

	if t.HUD != nil && t.showHUD.Load() {
		uv.NewStyledString(t.HUD(t.cols)).Draw(t.term, uv.Rect(0, 0, t.cols, 1))
	}
	if err := t.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Listen translates terminal input into driver events until ctx is done or
// the input stream ends. quit is called for the quit binding.
func (t *Terminal) Listen(ctx context.Context, events chan<- render.Event, quit func()) {
	send := func(ev render.Event) {
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	var (
		dragging bool
		lastX    int
		lastY    int
	)

	input := t.term.Events()
	for {
		var ev uv.Event
		select {
		case <-ctx.Done():
			return
		case e, ok := <-input:
			if !ok {
				return
			}
			ev = e
		}

		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			t.mu.Lock()
			t.cols, t.rows = ev.Width, ev.Height
			t.term.Erase()
			t.term.Resize(ev.Width, ev.Height)
			t.mu.Unlock()
			w, h := render.CellSize(ev.Width, ev.Height)
			send(render.ResizeEvent{Width: w, Height: h})

		case uv.KeyPressEvent:
			event, action := match(ev.MatchString)
			switch action {
			case ActionQuit:
				quit()
				return
			case ActionToggleHUD:
				t.showHUD.Store(!t.showHUD.Load())
			}
			send(event)

		case uv.MouseClickEvent:
			dragging = true
			lastX, lastY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			dragging = false

		case uv.MouseMotionEvent:
			if dragging {
				send(DragEvent(ev.X-lastX, ev.Y-lastY))
				lastX, lastY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				send(WheelEvent(true))
			case uv.MouseWheelDown:
				send(WheelEvent(false))
			}
		}
	}
}

// Close leaves the alternate screen and restores the cursor.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprint(os.Stdout, mouseOff)
	t.term.ExitAltScreen()
	t.term.ShowCursor()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return t.term.Shutdown(ctx)
}
