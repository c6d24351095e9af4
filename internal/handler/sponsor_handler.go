package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/media"
)

const msgInvalidSponsorID = "Invalid sponsor ID"

type SponsorHandler struct {
	sponsors *service.SponsorService
	files    *service.FileCleaner
}

func NewSponsorHandler(sponsors *service.SponsorService, files *service.FileCleaner) *SponsorHandler {
	return &SponsorHandler{sponsors: sponsors, files: files}
}

// logo returns the URL of the first upload. A sponsor has one logo, so any
// further files are dropped.
func (h *SponsorHandler) logo(c *fiber.Ctx) string {
	files := uploads(c)
	if len(files) == 0 {
		return ""
	}
	h.files.Discard(media.UploadURLs(files[1:])...)
	return files[0].URL
}

func (h *SponsorHandler) Create(c *fiber.Ctx) error {
	var req models.SponsorRequest
	if err := c.BodyParser(&req); err != nil {
		h.files.Discard(media.UploadURLs(uploads(c))...)
		return badBody(c)
	}
	sponsor, err := h.sponsors.Create(c.UserContext(), req, h.logo(c))
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(sponsor, "Sponsor created successfully"))
}

func (h *SponsorHandler) All(c *fiber.Ctx) error {
	sponsors, page, err := h.sponsors.List(c.UserContext(), repository.SponsorFilter{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Status: c.Query("status"),
		PlanID: uint(max(queryInt(c, "sponsorshipPlanId"), 0)),
		Search: c.Query("search"),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{"status": true, "sponsors": sponsors}, page))
}

func (h *SponsorHandler) Active(c *fiber.Ctx) error {
	sponsors, err := h.sponsors.Active(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "sponsors": sponsors})
}

func (h *SponsorHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidSponsorID)
	if !ok {
		return nil
	}
	sponsor, err := h.sponsors.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "sponsor": sponsor})
}

func (h *SponsorHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidSponsorID)
	if !ok {
		h.files.Discard(media.UploadURLs(uploads(c))...)
		return nil
	}
	var req models.SponsorRequest
	if err := c.BodyParser(&req); err != nil {
		h.files.Discard(media.UploadURLs(uploads(c))...)
		return badBody(c)
	}
	sponsor, err := h.sponsors.Update(c.UserContext(), id, req, h.logo(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(sponsor, "Sponsor updated successfully"))
}

func (h *SponsorHandler) Toggle(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidSponsorID)
	if !ok {
		return nil
	}
	sponsor, err := h.sponsors.Toggle(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	msg := "Sponsor deactivated successfully"
	if sponsor.Status == models.SponsorActive {
		msg = "Sponsor activated successfully"
	}
	return c.JSON(models.SuccessResponse(sponsor, msg))
}

func (h *SponsorHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidSponsorID)
	if !ok {
		return nil
	}
	if err := h.sponsors.Delete(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Sponsor deleted successfully"))
}

func (h *SponsorHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.sponsors.DeleteAll(c.UserContext()); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("All sponsors deleted successfully"))
}
