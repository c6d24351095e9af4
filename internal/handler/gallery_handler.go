package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/controller"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

type GalleryRecords = controller.Content[models.Gallery, *models.Gallery]

const msgInvalidGalleryID = "Invalid gallery ID"

type GalleryHandler struct {
	content *service.ContentService
	records *GalleryRecords
}

func NewGalleryHandler(content *service.ContentService, records *GalleryRecords) *GalleryHandler {
	return &GalleryHandler{content: content, records: records}
}

func (h *GalleryHandler) List(c *fiber.Ctx) error {
	listing, err := h.content.Galleries(c.UserContext(), repository.GalleryFilter{
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
		MediaType: c.Query("mediatype"),
		Year:      c.Query("year"),
		Title:     c.Query("title"),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{
		"status":    true,
		"gallery":   listing.Gallery,
		"allYears":  listing.Years,
		"allTitles": listing.Titles,
	}, listing.Page))
}

func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidGalleryID)
	if !ok {
		return nil
	}
	g, err := h.records.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "data": g})
}

func (h *GalleryHandler) Create(c *fiber.Ctx) error {
	var req models.GalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	g, err := h.records.Create(c.UserContext(), service.GalleryFields(req), uploads(c))
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(g, "Gallery created successfully"))
}

func (h *GalleryHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidGalleryID)
	if !ok {
		return nil
	}
	var req models.GalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	files := uploads(c)
	g, err := h.records.Update(c.UserContext(), id, service.GalleryChanges(req), files)
	if err != nil {
		return respond(c, err)
	}
	msg := "Gallery updated successfully (no new media)"
	if len(files) > 0 {
		msg = "Gallery updated successfully with new media"
	}
	return c.JSON(models.SuccessResponse(g, msg))
}

func (h *GalleryHandler) DeleteImage(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidGalleryID)
	if !ok {
		return nil
	}
	if err := h.records.DeleteMedia(c.UserContext(), id, c.Params("cloudfileId")); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Image deleted successfully from gallery"))
}

func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidGalleryID)
	if !ok {
		return nil
	}
	if err := h.records.Delete(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Gallery deleted successfully"))
}

// DeleteAll removes every gallery, or only those of ?mediatype.
func (h *GalleryHandler) DeleteAll(c *fiber.Ctx) error {
	msg, err := h.content.DeleteGalleries(c.UserContext(), c.Query("mediatype"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse(msg))
}
