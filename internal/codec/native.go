//go:build !nowebp

package codec

import (
	"bytes"
	"fmt"
	"image"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const nativeLinked = true

// native is the pure Go backend. nativewebp only writes lossless VP8L, so
// quality has no effect on its output.
type native struct{}

func newNative() library { return native{} }

func (native) encode(pix []byte, width, height, stride int, _ float32) ([]byte, error) {
	src := &image.NRGBA{
		Pix:    pix,
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}

	var buf bytes.Buffer
	buf.Grow(len(pix) / 4)
	if err := nativewebp.Encode(&buf, src, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (native) probe(data []byte) (int, int, error) {
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func (native) decodeInto(data []byte, dst []byte, stride int) error {
	src, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	b := src.Bounds()
	if b.Dx()*BytesPerPixel != stride || b.Dy()*stride != len(dst) {
		return fmt.Errorf("decoded %dx%d does not fit %d-byte buffer", b.Dx(), b.Dy(), len(dst))
	}
	out := &image.NRGBA{
		Pix:    dst,
		Stride: stride,
		Rect:   image.Rect(0, 0, b.Dx(), b.Dy()),
	}

	// Lossless streams decode to NRGBA already; copy rows straight across.
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst[y*stride:(y+1)*stride], n.Pix[off:off+stride])
		}
		return nil
	}
	draw.Draw(out, out.Rect, src, b.Min, draw.Src)
	return nil
}
