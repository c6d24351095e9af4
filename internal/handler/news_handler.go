package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

const msgInvalidNewsID = "Invalid news ID"

type NewsHandler struct {
	news *service.NewsService
}

func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

func (h *NewsHandler) All(c *fiber.Ctx) error {
	items, err := h.news.All(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(items, "News fetched successfully"))
}

func (h *NewsHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidNewsID)
	if !ok {
		return nil
	}
	n, err := h.news.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(n, "News fetched successfully"))
}

func (h *NewsHandler) Create(c *fiber.Ctx) error {
	var req models.NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	n, err := h.news.Create(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(n, "News created successfully"))
}

func (h *NewsHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidNewsID)
	if !ok {
		return nil
	}
	var req models.NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	n, err := h.news.Update(c.UserContext(), id, req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(n, "News updated successfully"))
}

func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidNewsID)
	if !ok {
		return nil
	}
	if err := h.news.Delete(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("News deleted successfully"))
}
