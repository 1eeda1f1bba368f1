package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/imageio"
	"github.com/spf13/cobra"
)

var (
	decodeOut         string
	decodeFormat      string
	decodeJPEGQuality int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <input.webp>",
	Short: "Decode a WebP file to PNG, JPEG or raw RGBA",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	f := decodeCmd.Flags()
	f.StringVarP(&decodeOut, "out", "o", "", "output path (default <input>.<format>)")
	f.StringVarP(&decodeFormat, "format", "f", imageio.FormatPNG, "output format: png, jpeg, raw")
	f.IntVar(&decodeJPEGQuality, "jpeg-quality", 90, "JPEG output quality 1-100")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(_ *cobra.Command, args []string) error {
	in := args[0]

	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}
	img, err := active.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}

	format := imageio.NormalizeFormat(decodeFormat)
	out := decodeOut
	if out == "" {
		ext := format
		if ext == imageio.FormatRaw {
			ext = "rgba"
		}
		out = strings.TrimSuffix(in, filepath.Ext(in)) + "." + ext
	}
	if err := imageio.Save(out, img, format, decodeJPEGQuality); err != nil {
		return err
	}

	fmt.Printf("  %s → %s  %dx%d  (%s)\n", in, out, img.Width, img.Height, active.Name())
	return nil
}
