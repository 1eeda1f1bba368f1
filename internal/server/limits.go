package server

import (
	"bytes"
	"fmt"

	"golang.org/x/image/webp"
)

// limitError rejects a request whose image exceeds the pixel budget.
type limitError struct {
	width, height, max int
}

func (e *limitError) Error() string {
	return fmt.Sprintf("image %dx%d exceeds %d pixel limit", e.width, e.height, e.max)
}

func (s *Server) checkPixels(width, height int) error {
	if s.maxPixels <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	if width > s.maxPixels/height {
		return &limitError{width: width, height: height, max: s.maxPixels}
	}
	return nil
}

// peekDimensions reads width and height from a WebP header without
// decoding. Streams it cannot parse are left for the codec to reject.
func peekDimensions(data []byte) (int, int, bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
