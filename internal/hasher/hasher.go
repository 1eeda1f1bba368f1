package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 of data as hex, truncated to hexLen
// characters when 0 < hexLen < 16. Content-addressed output names use 8.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// PixelDigest hashes an image's dimensions and pixels, so two images with
// the same bytes but different shapes never collide.
func PixelDigest(m *codec.Image) string {
	h := xxhash.New()
	var dims [8]byte
	binary.BigEndian.PutUint32(dims[0:4], uint32(m.Width))
	binary.BigEndian.PutUint32(dims[4:8], uint32(m.Height))
	h.Write(dims[:])
	h.Write(m.Pix)
	return format(h.Sum64(), 0)
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
