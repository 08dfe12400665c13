package frame

// Result is the outcome of one Iterator pull. When Done is true Frame is the
// zero value.
type Result struct {
	Frame Frame
	Done  bool
}

// Iterator is a restartable cursor over a Sequence. It is not safe for
// concurrent use.
type Iterator struct {
	seq    Sequence
	cursor int
}

// NewIterator creates an iterator positioned at the first frame.
func NewIterator(seq Sequence) *Iterator {
	return &Iterator{seq: seq}
}

// Next returns the frame under the cursor and advances it, or Done once the
// sequence is exhausted. With reset the cursor rewinds to the first frame
// before the pull.
func (it *Iterator) Next(reset bool) Result {
	if reset {
		it.cursor = 0
	}
	f, ok := it.seq.At(it.cursor)
	if !ok {
		return Result{Done: true}
	}
	it.cursor++
	return Result{Frame: f}
}

// Cursor returns the index of the next frame to be returned.
func (it *Iterator) Cursor() int {
	return it.cursor
}

// Len returns the length of the underlying sequence.
func (it *Iterator) Len() int {
	return it.seq.Len()
}
