package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/hasher"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Check that every output in a manifest exists and decodes",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]
	if info, err := os.Stat(manifestPath); err == nil && info.IsDir() {
		manifestPath = filepath.Join(manifestPath, manifest.FileName)
	}

	m, err := manifest.ReadJSON(manifestPath)
	if err != nil {
		return err
	}

	errs := validateManifest(m, filepath.Dir(manifestPath), active)
	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, all files present and decodable\n", m.Stats.TotalAssets)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

// validateManifest checks the manifest against the files in baseDir. When
// c is available each output is also decoded and its size compared.
func validateManifest(m *manifest.Manifest, baseDir string, c codec.Codec) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]string{}
	for key, a := range m.Assets {
		out := a.Output
		if a.Source.Width <= 0 || a.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid source dimensions %dx%d",
				key, a.Source.Width, a.Source.Height))
		}
		if out.Width <= 0 || out.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid output dimensions %dx%d",
				key, out.Width, out.Height))
		}
		if out.Hash == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing hash", key))
		}
		if out.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing path", key))
			continue
		}
		if other, dup := seenPaths[out.Path]; dup {
			errs = append(errs, fmt.Sprintf("asset %q: path %q already used by %q", key, out.Path, other))
		}
		seenPaths[out.Path] = key

		data, err := os.ReadFile(filepath.Join(baseDir, out.Path))
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: file not found: %s", key, out.Path))
			continue
		}
		if out.Size > 0 && int64(len(data)) != out.Size {
			errs = append(errs, fmt.Sprintf("asset %q: size mismatch: manifest=%d, disk=%d",
				key, out.Size, len(data)))
		}
		if out.Hash != "" && hasher.ContentHash(data, len(out.Hash)) != out.Hash {
			errs = append(errs, fmt.Sprintf("asset %q: hash mismatch", key))
		}

		if c == nil || !c.Available() {
			continue
		}
		img, err := c.Decode(data)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
			continue
		}
		if img.Width != out.Width || img.Height != out.Height {
			errs = append(errs, fmt.Sprintf("asset %q: decoded %dx%d, manifest says %dx%d",
				key, img.Width, img.Height, out.Width, out.Height))
		}
	}

	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d",
			m.Stats.TotalAssets, len(m.Assets)))
	}
	return errs
}
