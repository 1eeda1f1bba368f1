package pipeline

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/manifest"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	Codec     codec.Codec
	Logger    *slog.Logger
}

// Pipeline converts a directory of images to WebP.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Codec == nil {
		cfg.Codec = codec.Default()
	}
	return &Pipeline{cfg: cfg}
}

// Run executes the full build and returns the manifest. Individual image
// failures are logged; Run only fails when every image fails.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	log := p.cfg.Logger
	log.Debug("build starting",
		"codec", p.cfg.Codec.Name(), "available", p.cfg.Codec.Available(),
		"profile", p.cfg.Profile.Name, "workers", p.cfg.Workers)

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	log.Debug("scan complete", "images", len(sources))

	// Step 2: Encode in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = processImage(s, p.cfg)
			if results[idx].err == nil {
				log.Debug("encoded", "key", s.Key, "bytes", results[idx].asset.Output.Size)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name, p.cfg.Codec.Name(), p.cfg.Profile.Quality)

	var failed int
	for _, r := range results {
		if r.err != nil {
			log.Error("image failed", "key", r.key, "error", r.err)
			failed++
			continue
		}
		m.Assets[r.key] = r.asset
	}
	if failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to process", failed)
	}
	if failed > 0 {
		log.Warn("build finished with errors", "failed", failed, "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:  p.cfg.Workers,
		MaxWidth: p.cfg.Profile.MaxWidth,
	}
	m.Stats.Failed = failed
	m.ComputeStats()
	return m, nil
}
