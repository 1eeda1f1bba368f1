//go:build cgo && libwebp && !nowebp

package codec

/*
#cgo pkg-config: libwebp
#include <stdlib.h>
#include <webp/decode.h>
#include <webp/encode.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

const libwebpLinked = true

// libwebp binds the system libwebp simple API.
type libwebp struct{}

func newLibWebP() library { return libwebp{} }

// LibWebPVersion returns the linked libwebp decoder version as 0xMMmmpp.
func LibWebPVersion() int { return int(C.WebPGetDecoderVersion()) }

// webpBuffer owns memory allocated by libwebp. bytes copies it into Go
// memory; release frees it and is safe to call more than once.
type webpBuffer struct {
	ptr  *C.uint8_t
	size C.size_t
}

func (b *webpBuffer) bytes() []byte {
	if b.ptr == nil || b.size == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(b.ptr), C.int(b.size))
}

func (b *webpBuffer) release() {
	if b.ptr != nil {
		C.WebPFree(unsafe.Pointer(b.ptr))
		b.ptr = nil
		b.size = 0
	}
}

func (libwebp) encode(pix []byte, width, height, stride int, quality float32) ([]byte, error) {
	var out webpBuffer
	defer out.release()

	out.size = C.WebPEncodeRGBA(
		(*C.uint8_t)(unsafe.Pointer(&pix[0])),
		C.int(width), C.int(height), C.int(stride),
		C.float(quality),
		&out.ptr,
	)
	if out.size == 0 {
		return nil, errors.New("WebPEncodeRGBA: no output")
	}
	return out.bytes(), nil
}

func (libwebp) probe(data []byte) (int, int, error) {
	var w, h C.int
	if C.WebPGetInfo((*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)), &w, &h) == 0 {
		return 0, 0, errors.New("WebPGetInfo: not a WebP bitstream")
	}
	return int(w), int(h), nil
}

func (libwebp) decodeInto(data []byte, dst []byte, stride int) error {
	res := C.WebPDecodeRGBAInto(
		(*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)),
		(*C.uint8_t)(unsafe.Pointer(&dst[0])), C.size_t(len(dst)),
		C.int(stride),
	)
	if res == nil {
		return errors.New("WebPDecodeRGBAInto: failed")
	}
	return nil
}
