package codec

import (
	"errors"
	"fmt"
)

// Kind classifies why an Encode or Decode produced no result.
type Kind int

const (
	KindNone Kind = iota
	// KindInvalidInput: empty buffer, bad dimensions or a size mismatch,
	// caught before the library is called.
	KindInvalidInput
	// KindUnavailable: no codec library compiled in.
	KindUnavailable
	// KindEncode: the library produced no output.
	KindEncode
	// KindProbe: the library could not read dimensions from the data.
	KindProbe
	// KindDecode: the library failed after a successful probe.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnavailable:
		return "unavailable"
	case KindEncode:
		return "encode_failed"
	case KindProbe:
		return "probe_failed"
	case KindDecode:
		return "decode_failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every failing Codec call.
type Error struct {
	Kind    Kind
	Op      string // "encode" or "decode"
	Backend string
	Err     error // underlying library error, may be nil
}

func (e *Error) Error() string {
	msg := "webp " + e.Op + ": " + e.Kind.String()
	if e.Backend != "" {
		msg = e.Backend + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind, so the sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrUnavailable  = &Error{Kind: KindUnavailable}
	ErrEncode       = &Error{Kind: KindEncode}
	ErrProbe        = &Error{Kind: KindProbe}
	ErrDecode       = &Error{Kind: KindDecode}
)

// KindOf returns the Kind carried by err, or KindNone.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

func newError(kind Kind, op, backend string, err error) *Error {
	return &Error{Kind: kind, Op: op, Backend: backend, Err: err}
}
