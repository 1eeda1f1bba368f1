// Package codec exposes WebP encode/decode over a fixed RGBA byte layout.
//
// The actual compression is done by whichever codec library the binary was
// built with. When none is compiled in, every call degrades to an
// ErrUnavailable result plus a warning on the diagnostic logger.
package codec

import (
	"log/slog"
	"sync"
)

// DefaultQuality is the encode quality used when callers have no preference.
const DefaultQuality = 80

// BytesPerPixel is the size of one R,G,B,A sample.
const BytesPerPixel = 4

// MaxDimension is the largest width or height a WebP bitstream can carry.
const MaxDimension = 16383

// Image is a non-premultiplied RGBA buffer, row-major, with no padding
// between rows. len(Pix) is always Width*Height*4.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Stride returns the number of bytes per row.
func (m *Image) Stride() int { return m.Width * BytesPerPixel }

// NewImage allocates a zeroed image of the given size.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Codec encodes RGBA buffers to WebP and back.
type Codec interface {
	// Name returns the backend name ("libwebp", "native", "none").
	Name() string

	// Available reports whether a codec library backs this Codec.
	Available() bool

	// Encode compresses pix (width*height*4 bytes) at the given quality.
	// Quality is forwarded to the library as-is; values outside 0-100 get
	// whatever treatment the library applies.
	Encode(pix []byte, width, height, quality int) ([]byte, error)

	// Decode decompresses data into a freshly allocated Image.
	Decode(data []byte) (*Image, error)
}

// validEncodeInput reports whether a buffer of the given size can hold a
// width x height RGBA image. Dimensions past MaxDimension are rejected
// first, so the product below cannot overflow.
func validEncodeInput(pix []byte, width, height int) bool {
	if len(pix) == 0 || width <= 0 || height <= 0 {
		return false
	}
	if width > MaxDimension || height > MaxDimension {
		return false
	}
	return width*height*BytesPerPixel == len(pix)
}

var (
	defaultOnce  sync.Once
	defaultCodec Codec
)

// Default returns the best backend compiled into this binary, logging to
// slog.Default().
func Default() Codec {
	defaultOnce.Do(func() {
		logger := slog.Default()
		c, err := NewRegistry(logger).Get(BackendAuto)
		if err != nil {
			c = NewUnavailable(BackendNone, logger)
		}
		defaultCodec = c
	})
	return defaultCodec
}

// Encode encodes with the default codec.
func Encode(pix []byte, width, height, quality int) ([]byte, error) {
	return Default().Encode(pix, width, height, quality)
}

// Decode decodes with the default codec.
func Decode(data []byte) (*Image, error) {
	return Default().Decode(data)
}
