// Package server exposes the codec over HTTP.
package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
)

// Response headers carrying decoded dimensions.
const (
	HeaderWidth  = "X-Image-Width"
	HeaderHeight = "X-Image-Height"
	HeaderCodec  = "X-Webp-Codec"
)

// Config holds the server's dependencies.
type Config struct {
	Codec    codec.Codec
	Registry *codec.Registry
	Logger   *slog.Logger
	// MaxBodyBytes caps request bodies; 0 uses fiber's default.
	MaxBodyBytes int
	// MaxPixels caps width*height of encode requests and of decode
	// requests as claimed by the WebP header; 0 disables the check.
	MaxPixels int
}

// Server wraps a fiber app serving encode/decode.
type Server struct {
	app       *fiber.App
	codec     codec.Codec
	reg       *codec.Registry
	logger    *slog.Logger
	maxPixels int
}

// New builds the app and registers routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = codec.NewRegistry(cfg.Logger)
	}
	if cfg.Codec == nil {
		cfg.Codec, _ = cfg.Registry.Get(codec.BackendAuto)
	}

	app := fiber.New(fiber.Config{
		AppName:               "webprgba",
		BodyLimit:             cfg.MaxBodyBytes,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s := &Server{
		app:       app,
		codec:     cfg.Codec,
		reg:       cfg.Registry,
		logger:    cfg.Logger,
		maxPixels: cfg.MaxPixels,
	}

	app.Use(requestid.New())
	app.Use(s.requestLogger)

	app.Get("/healthz", s.health)
	v1 := app.Group("/v1")
	v1.Get("/codecs", s.codecs)
	v1.Post("/encode", s.encode)
	v1.Post("/decode", s.decode)
	return s
}

// App returns the underlying fiber app, for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "addr", addr, "codec", s.codec.Name(), "available", s.codec.Available())
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting at most timeout for open requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// requestLogger renders handler errors itself so the logged status is the
// one the client sees.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		if herr := errorHandler(c, err); herr != nil {
			return herr
		}
	}

	fields := []any{
		slog.Int("status", c.Response().StatusCode()),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Duration("latency", time.Since(start)),
	}
	if rid := c.Locals("requestid"); rid != nil {
		fields = append(fields, slog.Any("request_id", rid))
	}
	if err != nil {
		fields = append(fields, slog.String("error", err.Error()))
		s.logger.Warn("request failed", fields...)
	} else {
		s.logger.Debug("request processed", fields...)
	}
	return nil
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"codec":     s.codec.Name(),
		"available": s.codec.Available(),
	})
}

type codecInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Active    bool   `json:"active"`
}

func (s *Server) codecs(c *fiber.Ctx) error {
	avail := map[string]bool{}
	for _, n := range s.reg.Available() {
		avail[n] = true
	}
	var out []codecInfo
	for _, n := range []string{codec.BackendLibWebP, codec.BackendNative} {
		out = append(out, codecInfo{Name: n, Available: avail[n], Active: n == s.codec.Name()})
	}
	return c.JSON(out)
}

func (s *Server) encode(c *fiber.Ctx) error {
	width, err := queryInt(c, "width", 0)
	if err != nil {
		return err
	}
	height, err := queryInt(c, "height", 0)
	if err != nil {
		return err
	}
	quality, err := queryInt(c, "quality", codec.DefaultQuality)
	if err != nil {
		return err
	}

	if err := s.checkPixels(width, height); err != nil {
		return err
	}

	// c.Body is only valid inside the handler; Encode does not retain it.
	data, err := s.codec.Encode(c.Body(), width, height, quality)
	if err != nil {
		return err
	}

	c.Set(HeaderCodec, s.codec.Name())
	c.Set(fiber.HeaderContentType, "image/webp")
	return c.Send(data)
}

func (s *Server) decode(c *fiber.Ctx) error {
	body := c.Body()
	if w, h, ok := peekDimensions(body); ok {
		if err := s.checkPixels(w, h); err != nil {
			return err
		}
	}

	img, err := s.codec.Decode(body)
	if err != nil {
		return err
	}

	c.Set(HeaderCodec, s.codec.Name())
	c.Set(HeaderWidth, strconv.Itoa(img.Width))
	c.Set(HeaderHeight, strconv.Itoa(img.Height))
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(img.Pix)
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+": "+raw)
	}
	return v, nil
}
