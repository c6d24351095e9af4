package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/controller"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

type EventRecords = controller.Content[models.Event, *models.Event]

const msgInvalidEventID = "Invalid event ID"

type EventHandler struct {
	content *service.ContentService
	records *EventRecords
}

func NewEventHandler(content *service.ContentService, records *EventRecords) *EventHandler {
	return &EventHandler{content: content, records: records}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	events, page, err := h.content.Events(c.UserContext(), repository.EventFilter{
		Page:   queryInt(c, "page"),
		Search: c.Query("search"),
		Type:   c.Query("type"),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{"status": true, "events": events}, page))
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidEventID)
	if !ok {
		return nil
	}
	event, err := h.records.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "event": event})
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	event, err := h.records.Create(c.UserContext(), service.EventFields(req), uploads(c))
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidEventID)
	if !ok {
		return nil
	}
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	files := uploads(c)
	event, err := h.records.Update(c.UserContext(), id, service.EventChanges(req), files)
	if err != nil {
		return respond(c, err)
	}
	msg := "Event updated successfully (no new file uploaded)"
	if len(files) > 0 {
		msg = "Event updated successfully with new file"
	}
	return c.JSON(models.SuccessResponse(event, msg))
}

func (h *EventHandler) DeleteImage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidEventID)
	if !ok {
		return nil
	}
	if err := h.records.DeleteMedia(c.UserContext(), id, c.Params("cloudfileId")); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Image removed from event successfully"))
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidEventID)
	if !ok {
		return nil
	}
	if err := h.records.Delete(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Event deleted successfully"))
}

func (h *EventHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.records.DeleteAll(c.UserContext()); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("All Events deleted successfully"))
}
