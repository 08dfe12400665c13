// Package frame holds captured still images and the structures that store
// and replay them.
//
// A Frame is one independently encoded still image. Frames are appended to a
// Buffer in capture order while recording. When recording stops the Buffer is
// frozen into a Sequence, an immutable view that later appends never touch,
// and an Iterator walks that Sequence during playback:
//
//	seq := buf.Freeze()
//	it := frame.NewIterator(seq)
//	for r := it.Next(false); !r.Done; r = it.Next(false) {
//	    draw(r.Frame)
//	}
//	first := it.Next(true) // rewinds and returns the first frame again
//
// Frame data is treated as immutable once captured. Buffer and Sequence hand
// out Frame values that share their Data slices.
package frame
