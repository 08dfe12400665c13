package frame

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat indicates an encoding name outside jpeg, jpg and png.
var ErrUnknownFormat = errors.New("unknown image format")

// Format is a still-image encoding.
type Format uint8

const (
	// FormatJPEG encodes frames as JPEG. Quality applies.
	FormatJPEG Format = iota + 1
	// FormatPNG encodes frames as PNG. Quality is ignored.
	FormatPNG
)

var formatNames = map[string]Format{
	"jpeg": FormatJPEG,
	"jpg":  FormatJPEG,
	"png":  FormatPNG,
}

// ParseFormat maps jpeg, jpg and png (any case) to a Format.
func ParseFormat(name string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatJPEG || f == FormatPNG
}

// MIMEType returns the media type of the encoding.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// String returns the canonical short name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
