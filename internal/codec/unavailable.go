package codec

import "log/slog"

// unavailable is the Codec used when no library is compiled in. Every call
// logs one warning and fails with ErrUnavailable, whatever the input.
type unavailable struct {
	name   string
	logger *slog.Logger
}

// NewUnavailable returns a Codec that always fails with ErrUnavailable.
// name is the backend the caller asked for.
func NewUnavailable(name string, logger *slog.Logger) Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &unavailable{name: name, logger: logger}
}

func (u *unavailable) Name() string    { return u.name }
func (u *unavailable) Available() bool { return false }

func (u *unavailable) Encode(pix []byte, width, height, quality int) ([]byte, error) {
	u.logger.Warn("webp encode unavailable: codec not compiled in", "codec", u.name)
	return nil, newError(KindUnavailable, "encode", u.name, nil)
}

func (u *unavailable) Decode(data []byte) (*Image, error) {
	u.logger.Warn("webp decode unavailable: codec not compiled in", "codec", u.name)
	return nil, newError(KindUnavailable, "decode", u.name, nil)
}
