package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"go.uber.org/zap"
)

type TokenValidator interface {
	ValidateToken(token string) (uint, error)
}

type AccountFinder interface {
	Get(ctx context.Context, id uint, preloads ...string) (*models.Account, error)
}

func deny(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse(message))
}

// Auth requires a valid bearer token for an existing account and puts the
// account on the request context.
func Auth(tokens TokenValidator, accounts AccountFinder, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return deny(c, fiber.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			return deny(c, fiber.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		}

		id, err := tokens.ValidateToken(token)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		account, err := accounts.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return deny(c, fiber.StatusUnauthorized, "User not found. Token may be invalid.")
			}
			logger.Error("load authenticated account", zap.Uint("account_id", id), zap.Error(err))
			return err
		}

		FromCtx(c).Account = account
		return c.Next()
	}
}

// Admin must follow Auth.
func Admin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := FromCtx(c).Account
		if account == nil {
			return deny(c, fiber.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		}
		if !account.IsAdministrator() {
			return deny(c, fiber.StatusForbidden, "Access denied. Admin privileges required.")
		}
		return c.Next()
	}
}

// SelfOrAdmin lets an account act on its own :param id; administrators may
// act on any.
func SelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := FromCtx(c).Account
		if account == nil {
			return deny(c, fiber.StatusUnauthorized, "Authentication required")
		}
		if account.IsAdministrator() {
			return c.Next()
		}
		id, err := strconv.ParseUint(c.Params(param), 10, 64)
		if err != nil || uint(id) != account.ID {
			return deny(c, fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}
