package cmd

import (
	"fmt"
	"os"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/hasher"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <input.webp>",
	Short: "Decode a WebP file and print its dimensions and hashes",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	in := args[0]
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", in, err)
	}

	img, err := active.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}

	fmt.Printf("  File:         %s\n", in)
	fmt.Printf("  Size:         %s\n", formatBytes(int64(len(data))))
	fmt.Printf("  Dimensions:   %dx%d\n", img.Width, img.Height)
	fmt.Printf("  RGBA bytes:   %d\n", len(img.Pix))
	fmt.Printf("  Content hash: %s\n", hasher.ContentHash(data, 16))
	fmt.Printf("  Pixel digest: %s\n", hasher.PixelDigest(img))
	fmt.Printf("  Codec:        %s\n", active.Name())
	return nil
}
