// Package surface models the drawing surfaces frames are captured from and
// replayed onto, and the codec that turns surface pixels into encoded frames.
//
// # Surfaces
//
// A Canvas is an in-memory RGBA drawing surface. It satisfies both Surface
// (something that can be snapshotted) and Target (something frames can be
// drawn onto). Drawing a frame clears the target and scales the image to the
// target's full bounds.
//
// # Document
//
// A Document is a registry of named canvases, the equivalent of a page that
// surfaces are attached to:
//
//	doc := surface.NewDocument()
//	scene, _ := surface.NewCanvas("scene", 800, 400)
//	doc.Attach(scene)
//
//	src, err := doc.Source("scene") // "" selects the first attached canvas
//
// When playback has no target, CreateOverlay attaches a new canvas with the
// fixed id OverlayID.
//
// # Codec
//
// ImageCodec encodes snapshots with image/jpeg or image/png and decodes
// asynchronously: Decode returns immediately and reports the decoded image
// through a callback from another goroutine.
package surface
