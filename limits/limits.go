package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxSurfaceDimension is the largest width or height of a drawing surface.
	MaxSurfaceDimension = 16384

	// MaxEncodedFrame is the largest encoded still image accepted (64 MiB).
	MaxEncodedFrame = 64 * 1024 * 1024

	// MaxBufferedFrames is the absolute ceiling on frames held by one buffer.
	MaxBufferedFrames = 1 << 20
)

var (
	// ErrFrameEmpty indicates an encoder produced no bytes.
	ErrFrameEmpty = errors.New("empty frame")

	// ErrFrameTooLarge indicates an encoded frame exceeds MaxEncodedFrame.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrInvalidDimensions indicates a surface size outside (0, MaxSurfaceDimension].
	ErrInvalidDimensions = errors.New("invalid surface dimensions")

	// ErrInvalidCapacity indicates a buffer capacity outside [0, MaxBufferedFrames].
	ErrInvalidCapacity = errors.New("invalid buffer capacity")
)

// ValidateEncodedFrame checks an encoded frame against MaxEncodedFrame.
func ValidateEncodedFrame(data []byte) error {
	if len(data) == 0 {
		return ErrFrameEmpty
	}
	if len(data) > MaxEncodedFrame {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrFrameTooLarge, len(data), MaxEncodedFrame)
	}
	return nil
}

// ValidateDimensions checks a surface width and height.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxSurfaceDimension || height > MaxSurfaceDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, MaxSurfaceDimension)
	}
	return nil
}

// ValidateCapacity checks a buffer capacity. Zero means "up to MaxBufferedFrames".
func ValidateCapacity(capacity int) error {
	if capacity < 0 || capacity > MaxBufferedFrames {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return nil
}

// EffectiveCapacity resolves a configured capacity to the enforced ceiling.
func EffectiveCapacity(capacity int) int {
	if capacity <= 0 || capacity > MaxBufferedFrames {
		return MaxBufferedFrames
	}
	return capacity
}
