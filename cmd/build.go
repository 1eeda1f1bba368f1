package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/config"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/manifest"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/pipeline"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir   string
	buildProfile  string
	buildMaxWidth int
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Convert a directory of images to WebP and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, gif, bmp, tiff, webp),
encodes each one to WebP and writes a manifest file.

Output filenames are content-addressed: <key>.<hash>.webp`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringVarP(&buildOutDir, "out", "o", "./webprgba_out", "output directory")
	f.StringVarP(&buildProfile, "profile", "p", "default",
		"processing profile ("+strings.Join(profile.Names(), ", ")+")")
	f.IntP("workers", "w", 0, "parallel workers (0 = NumCPU)")
	f.IntP("quality", "q", 0, "quality override, also read from config or WEBPRGBA_QUALITY (default: profile quality)")
	f.IntVar(&buildMaxWidth, "max-width", 0, "max width override (0 = profile default)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := resolveProfile(buildProfile, appCfg, buildMaxWidth)

	logger.Debug("build",
		"input", absInput, "output", absOutput,
		"profile", prof.Name, "quality", prof.Quality, "max_width", prof.MaxWidth)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   appCfg.Workers,
		Codec:     active,
		Logger:    logger,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, time.Since(start))
	return nil
}

// resolveProfile applies overrides to a named profile. Any explicitly set
// quality, including 0, replaces the profile's.
func resolveProfile(name string, cfg *config.Config, maxWidth int) profile.Profile {
	prof := profile.Get(name)
	if cfg != nil && cfg.QualitySet {
		prof.Quality = cfg.Quality
	}
	if maxWidth > 0 {
		prof.MaxWidth = maxWidth
	}
	return prof
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	stats := m.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Println()
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", stats.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	fmt.Printf("  Codec:       %s (q=%d)\n", m.Codec, m.Quality)
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest outputs.
	if len(m.Assets) > 0 {
		keys := make([]string, 0, len(m.Assets))
		for k := range m.Assets {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return m.Assets[keys[i]].Output.Size > m.Assets[keys[j]].Output.Size
		})
		n := len(keys)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original → webp):\n", n)
		for _, k := range keys[:n] {
			a := m.Assets[k]
			fmt.Printf("    %-40s %8s → %8s\n",
				truncKey(k, 40), formatBytes(a.Source.Size), formatBytes(a.Output.Size))
		}
		fmt.Println()
	}

	fmt.Printf("  Manifest:    %s\n\n", manifest.FileName)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
