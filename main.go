package main

import (
	"fmt"
	"os"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "webprgba:", err)
		os.Exit(1)
	}
}
