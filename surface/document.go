package surface

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// OverlayID is the reference of the overlay canvas created for playback.
const OverlayID = "playCanvas"

// Document is a registry of attached canvases.
type Document struct {
	mu       sync.RWMutex
	surfaces map[string]*Canvas
	order    []string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		surfaces: make(map[string]*Canvas),
	}
}

// Attach adds a canvas under its id.
func (d *Document) Attach(c *Canvas) error {
	if c == nil {
		return ErrNilSurface
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.surfaces[c.id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSurface, c.id)
	}
	d.surfaces[c.id] = c
	d.order = append(d.order, c.id)

	logrus.WithFields(logrus.Fields{
		"function": "Document.Attach",
		"id":       c.id,
		"bounds":   c.Bounds().String(),
		"overlay":  c.overlay,
	}).Debug("Surface attached")
	return nil
}

// Lookup returns the canvas attached under id.
func (d *Document) Lookup(id string) (*Canvas, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.surfaces[id]
	return c, ok
}

// First returns the earliest attached canvas.
func (d *Document) First() (*Canvas, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.order) == 0 {
		return nil, false
	}
	return d.surfaces[d.order[0]], true
}

// Len returns the number of attached canvases.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// Source implements Resolver.
func (d *Document) Source(ref string) (Surface, error) {
	if ref == "" {
		if c, ok := d.First(); ok {
			return c, nil
		}
		return nil, fmt.Errorf("%w: document has no surfaces", ErrSurfaceNotFound)
	}
	if c, ok := d.Lookup(ref); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, ref)
}

// Target implements Resolver.
func (d *Document) Target(ref string) (Target, bool) {
	if ref == "" {
		return nil, false
	}
	c, ok := d.Lookup(ref)
	if !ok {
		return nil, false
	}
	return c, true
}

// CreateOverlay implements Resolver. An overlay that is already attached is
// reused.
func (d *Document) CreateOverlay(width, height int) (Target, error) {
	if c, ok := d.Lookup(OverlayID); ok {
		return c, nil
	}

	c, err := NewCanvas(OverlayID, width, height)
	if err != nil {
		return nil, err
	}
	c.overlay = true

	if err := d.Attach(c); err != nil {
		return nil, err
	}
	return c, nil
}
