package pipeline

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/imageio"
)

// Source is one image file found under the input dir.
type Source struct {
	AbsPath string
	RelPath string // slash-separated, relative to the input dir
	Key     string // RelPath without its extension
	Format  string // normalised format name: png, jpeg, gif, bmp, tiff, webp
	Size    int64
}

// sourceFormats maps accepted extensions to the decoder that reads them.
var sourceFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// ScanImages lists the images under root, sorted by key. Dot directories
// are skipped.
func ScanImages(root string) ([]Source, error) {
	var sources []Source

	walk := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		format, ok := sourceFormats[strings.ToLower(filepath.Ext(p))]
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		sources = append(sources, Source{
			AbsPath: p,
			RelPath: rel,
			Key:     strings.TrimSuffix(rel, path.Ext(rel)),
			Format:  imageio.NormalizeFormat(format),
			Size:    info.Size(),
		})
		return nil
	}
	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Key < sources[j].Key })
	return sources, nil
}
