package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/opd-ai/canvasplayer/limits"
)

// Canvas is an in-memory RGBA drawing surface.
type Canvas struct {
	id      string
	overlay bool

	mu    sync.RWMutex
	img   *image.RGBA
	draws uint64
}

// NewCanvas creates a transparent canvas.
func NewCanvas(id string, width, height int) (*Canvas, error) {
	if err := limits.ValidateDimensions(width, height); err != nil {
		return nil, fmt.Errorf("canvas %q: %w", id, err)
	}
	return &Canvas{
		id:  id,
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// ID returns the canvas reference.
func (c *Canvas) ID() string {
	return c.id
}

// Overlay reports whether the canvas was created as a playback overlay.
func (c *Canvas) Overlay() bool {
	return c.overlay
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Snapshot returns a copy of the canvas pixels.
func (c *Canvas) Snapshot() image.Image {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cp := image.NewRGBA(c.img.Bounds())
	copy(cp.Pix, c.img.Pix)
	return cp
}

// Draw clears the canvas and draws img scaled to the canvas bounds.
func (c *Canvas) Draw(img image.Image) error {
	if img == nil {
		return ErrNilSurface
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bounds := c.img.Bounds()
	draw.Draw(c.img, bounds, image.Transparent, image.Point{}, draw.Src)
	if img.Bounds().Size() == bounds.Size() {
		xdraw.Copy(c.img, bounds.Min, img, img.Bounds(), xdraw.Src, nil)
	} else {
		xdraw.ApproxBiLinear.Scale(c.img, bounds, img, img.Bounds(), xdraw.Src, nil)
	}
	c.draws++
	return nil
}

// Paint runs fn with exclusive access to the canvas pixels. Producers use it
// to render the content that gets recorded.
func (c *Canvas) Paint(fn func(dst draw.Image)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.img)
}

// Fill paints the whole canvas with col.
func (c *Canvas) Fill(col color.Color) {
	c.Paint(func(dst draw.Image) {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	})
}

// At returns the color of one pixel.
func (c *Canvas) At(x, y int) color.Color {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img.RGBAAt(x, y)
}

// Draws returns how many frames have been drawn onto the canvas.
func (c *Canvas) Draws() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.draws
}
