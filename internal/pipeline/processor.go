package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/hasher"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/imageio"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/manifest"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: load, fit, encode, write.
func processImage(src Source, cfg Config) processResult {
	result := processResult{key: src.Key}

	img, _, err := imageio.Load(src.AbsPath)
	if err != nil {
		result.err = err
		return result
	}
	origW, origH := img.Width, img.Height

	img = imageio.Fit(img, cfg.Profile.TargetWidth(img.Width))

	data, err := cfg.Codec.Encode(img.Pix, img.Width, img.Height, cfg.Profile.Quality)
	if err != nil {
		result.err = fmt.Errorf("encode %s: %w", src.RelPath, err)
		return result
	}

	// Content-addressed filename: key.hash8.webp
	contentHash := hasher.ContentHash(data, 16)
	keyDir := filepath.Dir(src.Key)
	fileName := fmt.Sprintf("%s.%s.webp", filepath.Base(src.Key), contentHash[:8])
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		result.err = fmt.Errorf("create dir for %s: %w", relPath, err)
		return result
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Source: manifest.SourceInfo{
			Path:   src.RelPath,
			Format: src.Format,
			Width:  origW,
			Height: origH,
			Size:   src.Size,
		},
		Output: manifest.OutputInfo{
			Path:        relPath,
			Width:       img.Width,
			Height:      img.Height,
			Size:        int64(len(data)),
			Hash:        contentHash,
			PixelDigest: hasher.PixelDigest(img),
		},
	}
	return result
}
