package present

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/taigrr/celestial/pkg/render"
)

// DefaultPNGPattern names frames frame-00000.png, frame-00001.png, ...
const DefaultPNGPattern = "frame-%05d.png"

// PNGSequence is a sink that writes every frame to a numbered PNG file.
type PNGSequence struct {
	Dir     string
	Pattern string // fmt pattern taking the frame index

	written int
}

// NewPNGSequence creates dir if needed. An empty pattern selects
// DefaultPNGPattern.
func NewPNGSequence(dir, pattern string) (*PNGSequence, error) {
	if pattern == "" {
		pattern = DefaultPNGPattern
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &PNGSequence{Dir: dir, Pattern: pattern}, nil
}

// Path returns the file name of frame n.
func (p *PNGSequence) Path(n int) string {
	return filepath.Join(p.Dir, fmt.Sprintf(p.Pattern, n))
}

// Present writes fb to the next file in the sequence.
func (p *PNGSequence) Present(fb *render.Framebuffer) error {
	path := p.Path(p.written)
	if err := fb.SavePNG(path); err != nil {
		return fmt.Errorf("write frame %d: %w", p.written, err)
	}
	p.written++
	render.Logger().Debug("frame written", "path", path)
	return nil
}

// Written returns the number of frames saved so far.
func (p *PNGSequence) Written() int {
	return p.written
}
