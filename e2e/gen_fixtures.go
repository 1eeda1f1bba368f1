//go:build ignore

// gen_fixtures writes small inputs for manual smoke runs: a few PNG/JPEG
// images for `webprgba build` and a raw RGBA dump for `webprgba encode --raw`.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "thumbs"), 0o755); err != nil {
		fail(err)
	}

	writeJPEG(filepath.Join(dir, "level-banner.jpg"), gradient(400, 225))
	for i := 1; i <= 3; i++ {
		writePNG(filepath.Join(dir, "thumbs", fmt.Sprintf("level-%d.png", i)), solid(160, 90, uint8(i*70)))
	}
	writePNG(filepath.Join(dir, "icon.png"), alphaRamp(32, 32))

	// 2x2 opaque white, the smallest round-trip case.
	white := make([]byte, 2*2*4)
	for i := range white {
		white[i] = 0xFF
	}
	if err := os.WriteFile(filepath.Join(dir, "white-2x2.rgba"), white, 0o644); err != nil {
		fail(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 160, A: 255})
		}
	}
	return img
}

func solid(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, 255-v, v/2, 255
	}
	return img
}

func alphaRamp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 240, G: 80, B: 40, A: uint8(x * 255 / (w - 1))})
		}
	}
	return img
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		fail(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fail(err)
	}
}

func writeJPEG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		fail(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "[gen_fixtures]", err)
	os.Exit(1)
}
