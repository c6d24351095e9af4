package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	data, err := h.dashboard.Dashboard(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(data, "Dashboard data fetched successfully"))
}

func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	data, err := h.dashboard.Home(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(data, "Home data fetched successfully"))
}
