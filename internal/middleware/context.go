package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
	"go.uber.org/zap"
)

const contextKey = "request_context"

// RequestContext is the per-request state the middleware chain fills in.
type RequestContext struct {
	RequestID string
	Account   *models.Account
	Uploads   []media.Upload
}

// FromCtx returns the request's context, creating an empty one when the
// chain did not install it (handlers under test).
func FromCtx(c *fiber.Ctx) *RequestContext {
	if rc, ok := c.Locals(contextKey).(*RequestContext); ok {
		return rc
	}
	rc := &RequestContext{}
	c.Locals(contextKey, rc)
	return rc
}

// AccountID is zero for anonymous requests.
func (rc *RequestContext) AccountID() uint {
	if rc.Account == nil {
		return 0
	}
	return rc.Account.ID
}

// Context installs the RequestContext. It must run after fiber's requestid
// middleware.
func Context() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc := FromCtx(c)
		if id, ok := c.Locals("requestid").(string); ok {
			rc.RequestID = id
		}
		return c.Next()
	}
}

// Logger logs one line per request.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", FromCtx(c).RequestID),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
		return err
	}
}
