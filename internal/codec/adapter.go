package codec

import (
	"errors"
	"fmt"
	"log/slog"
)

// library is the slice of a WebP implementation the adapter needs.
// Implementations must return Go-owned memory from encode.
type library interface {
	encode(pix []byte, width, height, stride int, quality float32) ([]byte, error)
	probe(data []byte) (width, height int, err error)
	decodeInto(data []byte, dst []byte, stride int) error
}

var errEmptyOutput = errors.New("library returned no data")

// adapter implements Codec on top of a library.
type adapter struct {
	name   string
	lib    library
	logger *slog.Logger
}

func newAdapter(name string, lib library, logger *slog.Logger) *adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &adapter{name: name, lib: lib, logger: logger}
}

func (a *adapter) Name() string    { return a.name }
func (a *adapter) Available() bool { return true }

func (a *adapter) Encode(pix []byte, width, height, quality int) ([]byte, error) {
	if !validEncodeInput(pix, width, height) {
		return nil, newError(KindInvalidInput, "encode", a.name,
			fmt.Errorf("%d bytes for %dx%d", len(pix), width, height))
	}

	out, err := a.lib.encode(pix, width, height, width*BytesPerPixel, float32(quality))
	if err == nil && len(out) == 0 {
		err = errEmptyOutput
	}
	if err != nil {
		a.logger.Error("webp encode failed",
			"codec", a.name, "width", width, "height", height, "quality", quality, "error", err)
		return nil, newError(KindEncode, "encode", a.name, err)
	}
	return out, nil
}

func (a *adapter) Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, newError(KindInvalidInput, "decode", a.name, errors.New("empty input"))
	}

	width, height, err := a.lib.probe(data)
	if err == nil && (width <= 0 || height <= 0) {
		err = fmt.Errorf("bad dimensions %dx%d", width, height)
	}
	if err != nil {
		a.logger.Error("webp probe failed", "codec", a.name, "size", len(data), "error", err)
		return nil, newError(KindProbe, "decode", a.name, err)
	}

	img := NewImage(width, height)
	if err := a.lib.decodeInto(data, img.Pix, img.Stride()); err != nil {
		a.logger.Error("webp decode failed",
			"codec", a.name, "width", width, "height", height, "error", err)
		return nil, newError(KindDecode, "decode", a.name, err)
	}
	return img, nil
}
