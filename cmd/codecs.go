package cmd

import (
	"fmt"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
	"github.com/spf13/cobra"
)

var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List codec backends compiled into this binary",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		compiled := map[string]bool{}
		for _, n := range registry.Available() {
			compiled[n] = true
		}
		for _, n := range []string{codec.BackendLibWebP, codec.BackendNative} {
			mark := "✗"
			if compiled[n] {
				mark = "✓"
			}
			line := fmt.Sprintf("  %s %s", mark, n)
			if n == codec.BackendLibWebP && compiled[n] {
				v := codec.LibWebPVersion()
				line += fmt.Sprintf(" (%d.%d.%d)", v>>16, (v>>8)&0xFF, v&0xFF)
			}
			if n == active.Name() {
				line += "  [active]"
			}
			fmt.Println(line)
		}
		if !active.Available() {
			fmt.Printf("  active: %s (unavailable)\n", active.Name())
		}
	},
}

func init() {
	rootCmd.AddCommand(codecsCmd)
}
