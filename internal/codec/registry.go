package codec

import (
	"fmt"
	"log/slog"
	"strings"
)

// Backend names accepted by Registry.Get.
const (
	BackendAuto    = "auto"
	BackendLibWebP = "libwebp"
	BackendNative  = "native"
	BackendNone    = "none"
)

// priority is the order auto picks from, best first.
var priority = []string{BackendLibWebP, BackendNative}

// Registry holds every backend compiled into the binary.
type Registry struct {
	codecs map[string]Codec
	logger *slog.Logger
}

// NewRegistry builds a registry from the backends this binary was built
// with. logger receives the codecs' diagnostics.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		codecs: make(map[string]Codec),
		logger: logger,
	}

	if libwebpLinked {
		r.codecs[BackendLibWebP] = newAdapter(BackendLibWebP, newLibWebP(), logger)
	}
	if nativeLinked {
		r.codecs[BackendNative] = newAdapter(BackendNative, newNative(), logger)
	}
	return r
}

// Get resolves a backend name. "auto" (or "") picks the best available
// backend, falling back to the unavailable codec. A known backend that was
// not compiled in also resolves to the unavailable codec; unknown names are
// an error.
func (r *Registry) Get(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", BackendAuto:
		for _, n := range priority {
			if c, ok := r.codecs[n]; ok {
				return c, nil
			}
		}
		return NewUnavailable(BackendNone, r.logger), nil
	case BackendNone:
		return NewUnavailable(BackendNone, r.logger), nil
	case BackendLibWebP, BackendNative:
		if c, ok := r.codecs[name]; ok {
			return c, nil
		}
		return NewUnavailable(name, r.logger), nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}

// Available returns the compiled backends in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, n := range priority {
		if _, ok := r.codecs[n]; ok {
			result = append(result, n)
		}
	}
	return result
}

// Names lists every name Get accepts.
func Names() []string {
	return []string{BackendAuto, BackendLibWebP, BackendNative, BackendNone}
}

// String returns a summary of available backends.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no webp codecs compiled in"
	}
	return fmt.Sprintf("webp codecs: %s", strings.Join(avail, ", "))
}
