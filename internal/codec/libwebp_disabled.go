//go:build !cgo || !libwebp || nowebp

package codec

const libwebpLinked = false

func newLibWebP() library { return nil }

// LibWebPVersion returns 0 when libwebp is not linked.
func LibWebPVersion() int { return 0 }
