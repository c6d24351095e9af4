// Package handler adapts HTTP requests to the services. Handlers parse and
// shape; every rule lives in the service layer.
package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/middleware"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
)

const msgInvalidBody = "Invalid request body"

// respond renders service failures. Errors it does not recognise are
// returned to fiber's ErrorHandler as 500s.
func respond(c *fiber.Ctx, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		return c.Status(se.Status).JSON(models.ErrorResponse(se.Message))
	}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationResponse(ve.Fields))
	}
	return err
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(msgInvalidBody))
}

// paramID parses a positive :name route parameter. On failure it has
// already written the 422 response with msg.
func paramID(c *fiber.Ctx, name, msg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		_ = c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse(msg))
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return n
}

func uploads(c *fiber.Ctx) []media.Upload {
	return middleware.FromCtx(c).Uploads
}

func account(c *fiber.Ctx) *models.Account {
	return middleware.FromCtx(c).Account
}

// withPage merges pagination fields into a list payload.
func withPage(payload fiber.Map, p models.Page) fiber.Map {
	payload["currentPage"] = p.CurrentPage
	payload["totalPages"] = p.TotalPages
	payload["totalItems"] = p.TotalItems
	return payload
}
