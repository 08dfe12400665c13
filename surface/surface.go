package surface

import (
	"errors"
	"image"
)

var (
	// ErrSurfaceNotFound indicates a reference that names no attached surface.
	ErrSurfaceNotFound = errors.New("surface not found")

	// ErrDuplicateSurface indicates Attach was called with an id already in use.
	ErrDuplicateSurface = errors.New("surface id already attached")

	// ErrNilSurface indicates a nil surface was passed.
	ErrNilSurface = errors.New("surface is nil")
)

// Surface is a drawing surface whose current content can be captured.
type Surface interface {
	// Bounds returns the surface rectangle.
	Bounds() image.Rectangle
	// Snapshot returns a copy of the current content.
	Snapshot() image.Image
}

// Target is a drawing surface frames can be drawn onto.
type Target interface {
	// Bounds returns the surface rectangle.
	Bounds() image.Rectangle
	// Draw clears the surface and draws img scaled to the full bounds.
	Draw(img image.Image) error
}

// Resolver locates surfaces by reference and creates playback overlays.
type Resolver interface {
	// Source resolves a capture source. An empty reference selects the first
	// attached surface.
	Source(ref string) (Surface, error)
	// Target resolves a playback target by reference.
	Target(ref string) (Target, bool)
	// CreateOverlay builds and attaches a playback surface of the given size.
	CreateOverlay(width, height int) (Target, error)
}
