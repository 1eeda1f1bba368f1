package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/config"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	verbose    bool
	configFile string

	// Resolved in PersistentPreRunE.
	appCfg   *config.Config
	logger   *slog.Logger
	registry *codec.Registry
	active   codec.Codec
)

var rootCmd = &cobra.Command{
	Use:   "webprgba",
	Short: "WebP encode/decode over raw RGBA buffers",
	Long: `webprgba converts between tightly packed RGBA pixel buffers and WebP.

Encoding is delegated to whichever codec backend the binary was built with.
The pure Go backend is built in by default; build with -tags libwebp (cgo and the
libwebp development package required) to add the system libwebp. Builds
tagged "nowebp" carry no codec; every encode/decode then fails with a warning
instead of a result.`,
	Version:           version,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&configFile, "config", "", "config file (default ./webprgba.yaml)")
	pf.String("codec", codec.BackendAuto, "codec backend: auto, libwebp, native, none")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"webprgba %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup resolves config and picks the codec before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.Options{ConfigFile: configFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	appCfg = cfg
	logger = cfg.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	registry = codec.NewRegistry(logger)
	active, err = registry.Get(cfg.Codec)
	if err != nil {
		return err
	}
	if !active.Available() {
		logger.Warn("no webp codec available; encode and decode will fail", "requested", cfg.Codec)
	}
	logger.Debug("codec selected", "codec", active.Name(), "compiled", registry.String())
	return nil
}
