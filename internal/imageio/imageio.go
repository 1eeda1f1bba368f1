// Package imageio moves pixels between image files and codec.Image.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FromImage converts any image.Image into a tightly packed RGBA buffer.
func FromImage(img image.Image) *codec.Image {
	// imaging.Clone always yields NRGBA anchored at (0,0) with stride w*4.
	n := imaging.Clone(img)
	return &codec.Image{
		Width:  n.Rect.Dx(),
		Height: n.Rect.Dy(),
		Pix:    n.Pix,
	}
}

// ToNRGBA wraps m as an *image.NRGBA without copying.
func ToNRGBA(m *codec.Image) *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Stride(),
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// Fit downscales m so its width is at most maxWidth, keeping the aspect
// ratio. m is returned unchanged when maxWidth <= 0 or it already fits.
func Fit(m *codec.Image, maxWidth int) *codec.Image {
	if maxWidth <= 0 || m.Width <= maxWidth {
		return m
	}
	h := int(float64(m.Height) * float64(maxWidth) / float64(m.Width))
	if h < 1 {
		h = 1
	}
	return FromImage(imaging.Resize(ToNRGBA(m), maxWidth, h, imaging.Lanczos))
}

// Decode reads an image in any registered format.
func Decode(r io.Reader) (*codec.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return FromImage(img), format, nil
}

// Load decodes the image file at path.
func Load(path string) (*codec.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return m, format, nil
}

// LoadRaw reads a raw RGBA dump of the given dimensions.
func LoadRaw(path string, width, height int) (*codec.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if want := width * height * codec.BytesPerPixel; width <= 0 || height <= 0 || len(data) != want {
		return nil, fmt.Errorf("raw %s: %d bytes does not match %dx%d RGBA", path, len(data), width, height)
	}
	return &codec.Image{Width: width, Height: height, Pix: data}, nil
}

// NormalizeFormat maps file extensions and format names to the names
// Encode accepts.
func NormalizeFormat(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "."))
	switch s {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return s
}
