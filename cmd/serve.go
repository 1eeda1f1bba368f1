package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve encode/decode over HTTP",
	Long: `Starts an HTTP server:

  GET  /healthz
  GET  /v1/codecs
  POST /v1/encode?width=W&height=H&quality=Q   (raw RGBA body → image/webp)
  POST /v1/decode                              (WebP body → raw RGBA)

Requests whose image exceeds --max-pixels get 413; decode checks the
dimensions in the WebP header before allocating.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("listen", ":8080", "listen address")
	f.Int("max-body-mb", 32, "maximum request body in MiB")
	f.Int("max-pixels", 1<<25, "maximum width*height per request (0 = unlimited)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	srv := server.New(server.Config{
		Codec:        active,
		Registry:     registry,
		Logger:       logger,
		MaxBodyBytes: appCfg.MaxBodyMB << 20,
		MaxPixels:    appCfg.MaxPixels,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(appCfg.Listen) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	}

	if err := srv.Shutdown(10 * time.Second); err != nil {
		return err
	}
	return <-errCh
}
