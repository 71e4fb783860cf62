package serverutils

import (
	"errors"

	"shopping-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusMapping maps a sentinel error to the HTTP status it should produce.
type StatusMapping struct {
	Err    error
	Status int
}

// NewErrorHandler builds the fiber ErrorHandler. Errors wrapping one of the
// mapped sentinels keep their message; anything else becomes a generic 500.
func NewErrorHandler(log logger.ILogger, mappings ...StatusMapping) fiber.ErrorHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return func(ctx *fiber.Ctx, err error) error {
		code, message := resolve(err, mappings)

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": code,
			"error":  err.Error(),
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", details)
		} else {
			log.Warn("HTTP", "Request rejected", details)
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func resolve(err error, mappings []StatusMapping) (int, string) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			return m.Status, err.Error()
		}
	}

	return fiber.StatusInternalServerError, "internal error"
}

// ErrorHandlerMiddleware hands errors returned further down the chain to the
// app's ErrorHandler, so that middleware registered after it sees a written
// response instead of an error.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return ctx.App().ErrorHandler(ctx, err)
		}
		return nil
	}
}
