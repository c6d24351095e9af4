package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"go.uber.org/zap"
)

const MsgTooManyRequests = "Too many requests. Please wait a minute and try again."

// ErrorHandler renders errors that escaped the handlers. Fiber's own errors
// keep their status; anything else is logged and reported as a bare 500,
// with the cause attached only in development.
func ErrorHandler(logger *zap.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(models.ErrorResponse(fe.Message))
		}

		logger.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", FromCtx(c).RequestID),
			zap.Error(err),
		)
		resp := models.ErrorResponse("Internal Server Error")
		if development {
			resp.Errors = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}

// NotFound answers routes nothing else matched.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Page not found"))
}

// LimitReached is the limiter's response.
func LimitReached(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse(MsgTooManyRequests))
}
