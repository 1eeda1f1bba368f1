package imageio

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
)

// Output formats accepted by Encode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatRaw  = "raw"
)

// Encode writes m to w as PNG, JPEG or raw RGBA. quality only applies to
// JPEG; out-of-range values fall back to 90.
func Encode(w io.Writer, m *codec.Image, format string, quality int) error {
	switch NormalizeFormat(format) {
	case FormatPNG, "":
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, ToNRGBA(m))
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, ToNRGBA(m), &jpeg.Options{Quality: quality})
	case FormatRaw:
		_, err := w.Write(m.Pix)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Save encodes m and writes it to path.
func Save(path string, m *codec.Image, format string, quality int) error {
	var buf bytes.Buffer
	buf.Grow(len(m.Pix) / 2)
	if err := Encode(&buf, m, format, quality); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
