package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/canvasplayer/frame"
	"github.com/opd-ai/canvasplayer/limits"
)

// DecodeFunc receives the result of an asynchronous decode.
type DecodeFunc func(img image.Image, err error)

// Codec converts between surface pixels and encoded frames.
type Codec interface {
	// Encode snapshots src and encodes it. quality is in [0,1] and only
	// applies to lossy formats.
	Encode(src Surface, format frame.Format, quality float64) (frame.Frame, error)
	// Decode decodes f asynchronously and reports the result to done.
	Decode(f frame.Frame, done DecodeFunc)
}

// ImageCodec implements Codec with the standard image encoders.
type ImageCodec struct {
	pngEncoder png.Encoder
}

// NewImageCodec creates an ImageCodec with pooled PNG encoder buffers.
func NewImageCodec() *ImageCodec {
	return &ImageCodec{
		pngEncoder: png.Encoder{
			CompressionLevel: png.DefaultCompression,
			BufferPool:       &encoderBufferPool{},
		},
	}
}

// JPEGQuality maps a quality in [0,1] onto the JPEG 1-100 scale.
func JPEGQuality(quality float64) int {
	q := int(math.Round(quality * 100))
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// Encode implements Codec.
func (c *ImageCodec) Encode(src Surface, format frame.Format, quality float64) (frame.Frame, error) {
	if src == nil {
		return frame.Frame{}, ErrNilSurface
	}

	img := src.Snapshot()
	var buf bytes.Buffer

	switch format {
	case frame.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality(quality)}); err != nil {
			return frame.Frame{}, fmt.Errorf("jpeg encode: %w", err)
		}
	case frame.FormatPNG:
		if err := c.pngEncoder.Encode(&buf, img); err != nil {
			return frame.Frame{}, fmt.Errorf("png encode: %w", err)
		}
	default:
		return frame.Frame{}, fmt.Errorf("%w: %d", frame.ErrUnknownFormat, uint8(format))
	}

	data := buf.Bytes()
	if err := limits.ValidateEncodedFrame(data); err != nil {
		return frame.Frame{}, err
	}

	size := img.Bounds().Size()
	return frame.Frame{
		Format: format,
		Data:   data,
		Width:  size.X,
		Height: size.Y,
	}, nil
}

// Decode implements Codec. done runs on a new goroutine.
func (c *ImageCodec) Decode(f frame.Frame, done DecodeFunc) {
	go func() {
		img, err := DecodeFrame(f)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "ImageCodec.Decode",
				"seq":      f.Seq,
				"format":   f.Format.String(),
				"error":    err.Error(),
			}).Warn("Frame decode failed")
		}
		done(img, err)
	}()
}

// DecodeFrame decodes f synchronously.
func DecodeFrame(f frame.Frame) (image.Image, error) {
	if err := limits.ValidateEncodedFrame(f.Data); err != nil {
		return nil, err
	}

	r := bytes.NewReader(f.Data)
	switch f.Format {
	case frame.FormatJPEG:
		return jpeg.Decode(r)
	case frame.FormatPNG:
		return png.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %d", frame.ErrUnknownFormat, uint8(f.Format))
	}
}

// encoderBufferPool reuses PNG encoder scratch buffers across captures.
type encoderBufferPool struct {
	pool sync.Pool
}

func (p *encoderBufferPool) Get() *png.EncoderBuffer {
	if b, ok := p.pool.Get().(*png.EncoderBuffer); ok {
		return b
	}
	return nil
}

func (p *encoderBufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}
