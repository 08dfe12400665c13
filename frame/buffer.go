package frame

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/canvasplayer/limits"
)

// ErrBufferFull indicates the buffer reached its capacity.
var ErrBufferFull = errors.New("frame buffer full")

// Buffer is the ordered, append-only collection of captured frames.
// Insertion order is capture order and playback order.
type Buffer struct {
	mu       sync.RWMutex
	frames   []Frame
	capacity int
	nextSeq  uint64
}

// NewBuffer creates an empty buffer holding at most capacity frames. A zero
// capacity means limits.MaxBufferedFrames.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		capacity: limits.EffectiveCapacity(capacity),
	}
}

// Append validates f, stamps its sequence number and stores it.
func (b *Buffer) Append(f Frame) (Frame, error) {
	if err := limits.ValidateEncodedFrame(f.Data); err != nil {
		return Frame{}, err
	}
	if !f.Format.Valid() {
		return Frame{}, fmt.Errorf("%w: %d", ErrUnknownFormat, uint8(f.Format))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.frames) >= b.capacity {
		return Frame{}, fmt.Errorf("%w: %d frames", ErrBufferFull, b.capacity)
	}

	b.nextSeq++
	f.Seq = b.nextSeq
	b.frames = append(b.frames, f)

	logrus.WithFields(logrus.Fields{
		"function": "Buffer.Append",
		"seq":      f.Seq,
		"bytes":    len(f.Data),
		"digest":   f.ShortDigest(),
	}).Trace("Frame buffered")

	return f, nil
}

// Len returns the number of buffered frames.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.frames)
}

// Capacity returns the maximum number of frames.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Snapshot returns a deep copy of the buffered frames. Changing the returned
// slice or any frame's Data does not affect the buffer.
func (b *Buffer) Snapshot() []Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Frame, len(b.frames))
	for i, f := range b.frames {
		f.Data = bytes.Clone(f.Data)
		out[i] = f
	}
	return out
}

// Freeze returns an immutable view of the current contents. Later appends and
// Clear do not change the returned Sequence.
//
// The view shares the backing array: it relies on the capped slice forcing
// appends to reallocate and on Clear dropping the array rather than reslicing
// it to zero length.
func (b *Buffer) Freeze() Sequence {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.frames)
	return Sequence{frames: b.frames[:n:n]}
}

// Clear discards every frame and restarts sequence numbering.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	dropped := len(b.frames)
	b.frames = nil
	b.nextSeq = 0

	logrus.WithFields(logrus.Fields{
		"function": "Buffer.Clear",
		"dropped":  dropped,
	}).Debug("Frame buffer cleared")
}

// Sequence is a frozen, read-only view over buffered frames.
type Sequence struct {
	frames []Frame
}

// NewSequence builds a Sequence over a private copy of frames.
func NewSequence(frames []Frame) Sequence {
	cp := make([]Frame, len(frames))
	copy(cp, frames)
	return Sequence{frames: cp}
}

// Len returns the number of frames.
func (s Sequence) Len() int {
	return len(s.frames)
}

// At returns the frame at index i.
func (s Sequence) At(i int) (Frame, bool) {
	if i < 0 || i >= len(s.frames) {
		return Frame{}, false
	}
	return s.frames[i], true
}
