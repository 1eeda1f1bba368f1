package profile

import (
	"sort"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
)

// Profile bundles the encode parameters used by a batch build.
type Profile struct {
	Name     string
	Quality  int // forwarded to the codec as-is
	MaxWidth int // downscale wider sources; 0 keeps the original size
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:    "default",
		Quality: codec.DefaultQuality,
	},
	"thumbnail": {
		Name:     "thumbnail",
		Quality:  75,
		MaxWidth: 480,
	},
	"preview": {
		Name:     "preview",
		Quality:  82,
		MaxWidth: 1280,
	},
	"archive": {
		Name:    "archive",
		Quality: 95,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TargetWidth returns the width a source of originalWidth is encoded at.
func (p Profile) TargetWidth(originalWidth int) int {
	if p.MaxWidth > 0 && originalWidth > p.MaxWidth {
		return p.MaxWidth
	}
	return originalWidth
}
