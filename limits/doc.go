// Package limits provides centralized size constants and validation functions
// for captured frames. Every component that produces or stores encoded frames
// checks against the same limits.
//
// # Size Hierarchy
//
//   - MaxSurfaceDimension (16384 px): the largest width or height accepted
//     for a drawing surface. Larger surfaces are rejected before any pixel
//     memory is allocated.
//
//   - MaxEncodedFrame (64 MiB): the largest single encoded still image kept
//     in a buffer.
//
//   - MaxBufferedFrames: the hard ceiling on frames held by one buffer,
//     regardless of the configured capacity.
//
// # Validation Functions
//
//	if err := limits.ValidateEncodedFrame(data); err != nil {
//	    // ErrFrameEmpty or ErrFrameTooLarge
//	}
//
//	if err := limits.ValidateDimensions(w, h); err != nil {
//	    // ErrInvalidDimensions
//	}
//
// All errors wrap the package sentinels and can be classified with errors.Is.
package limits
