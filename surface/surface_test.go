package surface

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/canvasplayer/frame"
	"github.com/opd-ai/canvasplayer/limits"
)

var red = color.RGBA{R: 255, A: 255}

func newTestCanvas(t *testing.T, id string, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(id, w, h)
	require.NoError(t, err)
	return c
}

func TestNewCanvas_Dimensions(t *testing.T) {
	_, err := NewCanvas("bad", 0, 10)
	assert.ErrorIs(t, err, limits.ErrInvalidDimensions)

	c := newTestCanvas(t, "ok", 8, 4)
	assert.Equal(t, image.Rect(0, 0, 8, 4), c.Bounds())
	assert.Equal(t, "ok", c.ID())
	assert.False(t, c.Overlay())
}

func TestCanvas_SnapshotIsCopy(t *testing.T) {
	c := newTestCanvas(t, "scene", 4, 4)
	c.Fill(red)

	snap := c.Snapshot()
	c.Fill(color.RGBA{B: 255, A: 255})

	assert.Equal(t, red, snap.(*image.RGBA).RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, c.At(1, 1))
}

func TestCanvas_DrawScalesToBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, red)
		}
	}

	target := newTestCanvas(t, "target", 8, 8)
	require.NoError(t, target.Draw(src))

	assert.Equal(t, red, target.At(0, 0))
	assert.Equal(t, red, target.At(7, 7))
	assert.Equal(t, uint64(1), target.Draws())

	assert.ErrorIs(t, target.Draw(nil), ErrNilSurface)
	assert.Equal(t, uint64(1), target.Draws())
}

func TestCanvas_DrawClearsPrevious(t *testing.T) {
	target := newTestCanvas(t, "target", 2, 2)
	target.Fill(red)

	require.NoError(t, target.Draw(image.NewRGBA(image.Rect(0, 0, 2, 2))))
	assert.Equal(t, color.RGBA{}, target.At(0, 0))
}

func TestDocument_AttachAndLookup(t *testing.T) {
	doc := NewDocument()
	a := newTestCanvas(t, "a", 4, 4)
	b := newTestCanvas(t, "b", 4, 4)

	require.NoError(t, doc.Attach(a))
	require.NoError(t, doc.Attach(b))
	assert.ErrorIs(t, doc.Attach(newTestCanvas(t, "a", 1, 1)), ErrDuplicateSurface)
	assert.ErrorIs(t, doc.Attach(nil), ErrNilSurface)
	assert.Equal(t, 2, doc.Len())

	got, ok := doc.Lookup("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	first, ok := doc.First()
	require.True(t, ok)
	assert.Same(t, a, first)
}

func TestDocument_Source(t *testing.T) {
	doc := NewDocument()

	_, err := doc.Source("")
	assert.ErrorIs(t, err, ErrSurfaceNotFound)

	a := newTestCanvas(t, "a", 4, 4)
	require.NoError(t, doc.Attach(a))

	src, err := doc.Source("")
	require.NoError(t, err)
	assert.Same(t, a, src)

	src, err = doc.Source("a")
	require.NoError(t, err)
	assert.Same(t, a, src)

	_, err = doc.Source("#missing")
	assert.ErrorIs(t, err, ErrSurfaceNotFound)
}

func TestDocument_TargetAndOverlay(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Attach(newTestCanvas(t, "scene", 16, 8)))

	_, ok := doc.Target("")
	assert.False(t, ok)
	_, ok = doc.Target("nope")
	assert.False(t, ok)

	overlay, err := doc.CreateOverlay(16, 8)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), overlay.Bounds())

	c, ok := doc.Lookup(OverlayID)
	require.True(t, ok)
	assert.True(t, c.Overlay())

	again, err := doc.CreateOverlay(4, 4)
	require.NoError(t, err)
	assert.Same(t, overlay, again)

	target, ok := doc.Target(OverlayID)
	require.True(t, ok)
	assert.Same(t, overlay, target)
}

func TestJPEGQuality(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{0.5, 50},
		{0.926, 93},
		{1, 100},
		{2, 100},
		{-1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JPEGQuality(tt.in), "quality %v", tt.in)
	}
}

func TestImageCodec_PNGRoundTrip(t *testing.T) {
	src := newTestCanvas(t, "scene", 6, 3)
	src.Fill(red)

	codec := NewImageCodec()
	f, err := codec.Encode(src, frame.FormatPNG, 0.5)
	require.NoError(t, err)
	assert.Equal(t, frame.FormatPNG, f.Format)
	assert.Equal(t, 6, f.Width)
	assert.Equal(t, 3, f.Height)
	assert.NotEmpty(t, f.Data)

	img, err := DecodeFrame(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 3), img.Bounds())

	r, g, b, a := img.At(2, 1).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestImageCodec_JPEGEncode(t *testing.T) {
	src := newTestCanvas(t, "scene", 32, 32)
	src.Paint(func(dst draw.Image) {
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				dst.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: uint8((x * y) % 256), A: 255})
			}
		}
	})

	codec := NewImageCodec()
	low, err := codec.Encode(src, frame.FormatJPEG, 0.1)
	require.NoError(t, err)
	high, err := codec.Encode(src, frame.FormatJPEG, 1.0)
	require.NoError(t, err)

	assert.Equal(t, frame.FormatJPEG, low.Format)
	assert.Less(t, len(low.Data), len(high.Data))

	solid := newTestCanvas(t, "solid", 16, 16)
	solid.Fill(red)
	f, err := codec.Encode(solid, frame.FormatJPEG, 1.0)
	require.NoError(t, err)

	img, err := DecodeFrame(f)
	require.NoError(t, err)
	r, _, _, _ := img.At(8, 8).RGBA()
	assert.Greater(t, r, uint32(0xf000))
}

func TestImageCodec_EncodeErrors(t *testing.T) {
	codec := NewImageCodec()

	_, err := codec.Encode(nil, frame.FormatPNG, 1)
	assert.ErrorIs(t, err, ErrNilSurface)

	_, err = codec.Encode(newTestCanvas(t, "s", 2, 2), frame.Format(0), 1)
	assert.ErrorIs(t, err, frame.ErrUnknownFormat)
}

func TestImageCodec_DecodeAsync(t *testing.T) {
	src := newTestCanvas(t, "scene", 4, 4)
	codec := NewImageCodec()
	f, err := codec.Encode(src, frame.FormatPNG, 1)
	require.NoError(t, err)

	type result struct {
		img image.Image
		err error
	}
	results := make(chan result, 1)
	codec.Decode(f, func(img image.Image, err error) {
		results <- result{img, err}
	})

	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, image.Rect(0, 0, 4, 4), r.img.Bounds())
	case <-time.After(2 * time.Second):
		t.Fatal("decode never completed")
	}
}

func TestDecodeFrame_Errors(t *testing.T) {
	_, err := DecodeFrame(frame.Frame{Format: frame.FormatPNG})
	assert.ErrorIs(t, err, limits.ErrFrameEmpty)

	_, err = DecodeFrame(frame.Frame{Format: frame.Format(7), Data: []byte{1}})
	assert.ErrorIs(t, err, frame.ErrUnknownFormat)

	_, err = DecodeFrame(frame.Frame{Format: frame.FormatPNG, Data: []byte("not a png")})
	assert.Error(t, err)
}
