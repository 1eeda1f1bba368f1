//go:build nowebp

package codec

const nativeLinked = false

func newNative() library { return nil }
