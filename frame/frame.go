package frame

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Frame is one encoded still image captured from a source surface.
type Frame struct {
	// Seq is the capture sequence number within its buffer, starting at 1.
	Seq uint64
	// Format is the encoding of Data.
	Format Format
	// Data holds the encoded image bytes.
	Data []byte
	// Width and Height are the source surface size at capture time.
	Width  int
	Height int
	// CapturedAt is the host clock time of the capture tick.
	CapturedAt time.Time
}

// DataURL renders the frame as a base64 data URL.
func (f Frame) DataURL() string {
	prefix := "data:" + f.Format.MIMEType() + ";base64,"
	buf := make([]byte, len(prefix)+base64.StdEncoding.EncodedLen(len(f.Data)))
	copy(buf, prefix)
	base64.StdEncoding.Encode(buf[len(prefix):], f.Data)
	return string(buf)
}

// Digest returns the BLAKE2b-256 hash of the encoded data.
func (f Frame) Digest() [32]byte {
	return blake2b.Sum256(f.Data)
}

// ShortDigest returns the first 8 bytes of Digest in hex, for logs.
func (f Frame) ShortDigest() string {
	sum := f.Digest()
	return hex.EncodeToString(sum[:8])
}

// SameImage reports whether two frames carry identical encoded bytes in the
// same format.
func (f Frame) SameImage(other Frame) bool {
	return f.Format == other.Format && bytes.Equal(f.Data, other.Data)
}
