package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/imageio"
	"github.com/spf13/cobra"
)

var (
	encodeOut      string
	encodeRaw      bool
	encodeWidth    int
	encodeHeight   int
	encodeMaxWidth int
)

var encodeCmd = &cobra.Command{
	Use:   "encode <input>",
	Short: "Encode an image or raw RGBA dump to WebP",
	Long: `Reads a PNG, JPEG, GIF, BMP, TIFF or WebP file (or, with --raw, a
width*height*4 byte RGBA dump) and writes it as WebP.

Quality is passed to the codec unmodified; how values outside 0-100 are
treated is up to the codec library.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	f := encodeCmd.Flags()
	f.StringVarP(&encodeOut, "out", "o", "", "output path (default <input>.webp)")
	f.IntP("quality", "q", codec.DefaultQuality, "encode quality, usually 0-100")
	f.BoolVar(&encodeRaw, "raw", false, "input is raw RGBA; needs --width and --height")
	f.IntVar(&encodeWidth, "width", 0, "raw input width")
	f.IntVar(&encodeHeight, "height", 0, "raw input height")
	f.IntVar(&encodeMaxWidth, "max-width", 0, "downscale wider images (0 = keep size)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(_ *cobra.Command, args []string) error {
	in := args[0]

	var img *codec.Image
	var err error
	if encodeRaw {
		img, err = imageio.LoadRaw(in, encodeWidth, encodeHeight)
	} else {
		img, _, err = imageio.Load(in)
	}
	if err != nil {
		return err
	}
	img = imageio.Fit(img, encodeMaxWidth)

	data, err := active.Encode(img.Pix, img.Width, img.Height, appCfg.Quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", in, err)
	}

	out := encodeOut
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".webp"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Printf("  %s → %s  %dx%d  %s  (q=%d, %s)\n",
		in, out, img.Width, img.Height, formatBytes(int64(len(data))), appCfg.Quality, active.Name())
	return nil
}
