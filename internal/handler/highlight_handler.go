package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/controller"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

type HighlightRecords = controller.Content[models.HomepageHighlight, *models.HomepageHighlight]

const msgInvalidHighlightID = "Invalid highlight ID"

type HighlightHandler struct {
	content *service.ContentService
	records *HighlightRecords
}

func NewHighlightHandler(content *service.ContentService, records *HighlightRecords) *HighlightHandler {
	return &HighlightHandler{content: content, records: records}
}

func (h *HighlightHandler) List(c *fiber.Ctx) error {
	items, page, err := h.content.Highlights(c.UserContext(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{"status": true, "highlights": items}, page))
}

func (h *HighlightHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidHighlightID)
	if !ok {
		return nil
	}
	item, err := h.records.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "data": item})
}

func (h *HighlightHandler) Create(c *fiber.Ctx) error {
	var req models.HighlightRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	item, err := h.records.Create(c.UserContext(), service.HighlightFields(req), uploads(c))
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(item, "Homepage highlight created successfully"))
}

func (h *HighlightHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidHighlightID)
	if !ok {
		return nil
	}
	var req models.HighlightRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	item, err := h.records.Update(c.UserContext(), id, service.HighlightChanges(req), uploads(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(item, "Highlight updated successfully"))
}

func (h *HighlightHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidHighlightID)
	if !ok {
		return nil
	}
	if err := h.records.Delete(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Highlight deleted successfully"))
}

func (h *HighlightHandler) DeleteMany(c *fiber.Ctx) error {
	var req models.IDsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	n, err := h.content.DeleteHighlights(c.UserContext(), req.IDs)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse(fmt.Sprintf("%d highlights deleted successfully", n)))
}
