package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
)

// statusFor maps codec failure kinds to HTTP status codes.
func statusFor(kind codec.Kind) int {
	switch kind {
	case codec.KindInvalidInput:
		return fiber.StatusBadRequest
	case codec.KindUnavailable:
		return fiber.StatusServiceUnavailable
	case codec.KindProbe:
		return fiber.StatusUnsupportedMediaType
	case codec.KindEncode, codec.KindDecode:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	kind := "internal"

	var fe *fiber.Error
	var le *limitError
	if k := codec.KindOf(err); k != codec.KindNone {
		status = statusFor(k)
		kind = k.String()
	} else if errors.As(err, &le) {
		status = fiber.StatusRequestEntityTooLarge
		kind = "too_large"
	} else if errors.As(err, &fe) {
		status = fe.Code
		kind = "request"
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  kind,
	})
}
